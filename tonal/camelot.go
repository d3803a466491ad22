package tonal

// camelotWheel maps a key to its Camelot wheel position, the number+letter
// label DJs use for harmonic-mixing compatibility. Keys are
// "{pitchClass}" for major and "{pitchClass}m" for minor.
var camelotWheel = map[string]string{
	"C":  "8B",
	"C#": "3B",
	"D":  "10B",
	"D#": "5B",
	"E":  "12B",
	"F":  "7B",
	"F#": "2B",
	"G":  "9B",
	"G#": "4B",
	"A":  "11B",
	"A#": "6B",
	"B":  "1B",

	"Cm":  "5A",
	"C#m": "12A",
	"Dm":  "7A",
	"D#m": "2A",
	"Em":  "9A",
	"Fm":  "4A",
	"F#m": "11A",
	"Gm":  "6A",
	"G#m": "1A",
	"Am":  "8A",
	"A#m": "3A",
	"Bm":  "10A",
}

// CamelotAlias returns the wheel alias for a pitch class and scale.
// Unknown combinations default to the alias for C major.
func CamelotAlias(pitchClass, scale string) string {
	key := pitchClass
	if scale == ScaleMinor {
		key += "m"
	}
	if alias, ok := camelotWheel[key]; ok {
		return alias
	}
	return camelotWheel["C"]
}
