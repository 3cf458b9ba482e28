package stream

import (
	"math"
)

// A GradientTrail is an Animation that cycles a gradient along an led strip.
type GradientTrail struct {
	numPixels   int
	gradient    GradientTable
	trailLength int
	pixelsPerMs float64
	saturation  float64
	luminance   float64
}

// NewGradientTrail creates an instance of a GradientTrail object that moves
// pixelsPerMs pixels every millisecond.
func NewGradientTrail(numPixels int, gradient GradientTable, trailLength int, pixelsPerMs float64) *GradientTrail {
	g := new(GradientTrail)
	g.numPixels = numPixels
	g.gradient = gradient
	g.trailLength = max(trailLength, 1)
	g.pixelsPerMs = pixelsPerMs
	g.saturation = 1.0
	g.luminance = 0.05

	return g
}

// CalculateFrame renders the trail as it stands at runtimeMs.
func (g *GradientTrail) CalculateFrame(runtimeMs int64) *Frame {
	f := NewFrame(g.numPixels)
	trail := float64(g.trailLength)
	current := math.Mod(float64(runtimeMs)*g.pixelsPerMs, trail)
	for i := 0; i < g.numPixels; i++ {
		t := math.Mod(float64(i+g.numPixels)-current+trail, trail) / trail
		f.pixels[i] = g.gradient.GetColor(t, g.saturation, g.luminance)
	}

	return f
}
