package util

import (
	"github.com/fogleman/ease"
)

// GenerateLut returns a rise-and-fall curve of the given length that eases
// from 0 up to 1 and back down.
func GenerateLut(length int) []float64 {
	if length < 2 {
		return make([]float64, length)
	}
	increment := 1.0 / float64(length/2)
	lut := make([]float64, length)
	for i, j := 0, length-1; i < length/2; i, j = i+1, j-1 {
		value := float64(i) * increment
		lut[i] = ease.InOutQuad(value)
		lut[j] = ease.InOutQuad(value)
	}
	return lut
}

// FadeCurve returns steps opacity multipliers easing from just below 1 down
// to exactly 0.
func FadeCurve(steps int) []float64 {
	if steps < 1 {
		steps = 1
	}
	curve := make([]float64, steps)
	for i := range curve {
		curve[i] = 1 - ease.InOutQuad(float64(i+1)/float64(steps))
	}
	return curve
}
