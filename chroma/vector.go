package chroma

import "gonum.org/v1/gonum/floats"

// Vector is a 12-bin pitch-class energy profile, octave-independent.
// Bin 0 is C, bin 1 is C#, up to bin 11 for B.
type Vector [12]float64

// Sum returns the total weight across all pitch classes.
func (v *Vector) Sum() float64 {
	return floats.Sum(v[:])
}

// Normalize scales the vector so its components sum to 1.
// A zero vector is left unchanged.
func (v *Vector) Normalize() {
	total := v.Sum()
	if total <= 0 {
		return
	}
	floats.Scale(1/total, v[:])
}
