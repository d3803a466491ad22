package beat

import "math"

// Gridline is a single beat-grid line for the rendering layer.
type Gridline struct {
	Time     float64 `json:"time"`     // seconds into the buffer
	Downbeat bool    `json:"downbeat"` // every 4th beat counting from the downbeat
}

// Grid lays out beat gridlines every 60/BPM seconds radiating in both
// directions from the downbeat time, covering [0, duration]. Lines are
// returned in ascending time order.
func Grid(bpm int, downbeat, duration float64) []Gridline {
	if bpm <= 0 || duration <= 0 {
		return nil
	}

	interval := 60.0 / float64(bpm)

	first := int(math.Ceil((0 - downbeat) / interval))
	last := int(math.Floor((duration - downbeat) / interval))

	lines := make([]Gridline, 0, last-first+1)
	for k := first; k <= last; k++ {
		t := downbeat + float64(k)*interval
		if t < 0 || t > duration {
			continue
		}
		lines = append(lines, Gridline{
			Time:     t,
			Downbeat: ((k%4)+4)%4 == 0,
		})
	}

	return lines
}
