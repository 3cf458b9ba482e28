package stream

import (
	"math"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"
)

// pulsePeriodMs is the length of one expand-and-dim cycle.
const pulsePeriodMs = 500

// A Pulse is an Animation of light spreading out from the centre of a short
// strip and dimming as it goes.
type Pulse struct {
	numPixels int
	colour    colorful.Color
}

// NewPulse creates a Pulse of numPixels.
func NewPulse(numPixels int, colour colorful.Color) *Pulse {
	return &Pulse{numPixels: numPixels, colour: colour}
}

// CalculateFrame renders the pulse at runtimeMs.
func (p *Pulse) CalculateFrame(runtimeMs int64) *Frame {
	f := NewFrame(p.numPixels)
	t := float64(runtimeMs%pulsePeriodMs) / pulsePeriodMs
	radius := ease.OutCubic(t) * float64(p.numPixels) / 2
	gain := 1 - ease.InQuad(t)
	centre := float64(p.numPixels-1) / 2
	black := colorful.Color{}
	for i := 0; i < p.numPixels; i++ {
		d := math.Abs(float64(i) - centre)
		if d <= radius {
			f.pixels[i] = black.BlendRgb(p.colour, gain*(1-d/(radius+1)))
		}
	}

	return f
}
