package stream

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledseq/util"
)

const twinkleFrameMs = 33

type particle struct {
	pixel int
	phase int
	lut   []float64
}

// A Twinkle is an Animation that twinkles random particles.
type Twinkle struct {
	numPixels  int
	foreColour colorful.Color
	backColour colorful.Color
	particles  []particle
}

// NewTwinkle creates an instance of a Twinkle object.
func NewTwinkle(numPixels, numParticles int, foreColour, backColour colorful.Color) *Twinkle {
	t := new(Twinkle)
	t.numPixels = numPixels
	t.foreColour = foreColour
	t.backColour = backColour

	if numPixels > 0 {
		t.particles = make([]particle, numParticles)
		for i := range t.particles {
			lut := util.GenerateLut((rand.Intn(18) + 6) * 2)
			t.particles[i] = particle{
				pixel: rand.Intn(numPixels),
				phase: rand.Intn(len(lut)),
				lut:   lut,
			}
		}
	}

	return t
}

// CalculateFrame creates a new Frame instance.
func (t *Twinkle) CalculateFrame(runtimeMs int64) *Frame {
	f := NewFrameFill(t.numPixels, t.backColour)
	step := int(runtimeMs / twinkleFrameMs)
	for _, p := range t.particles {
		gain := p.lut[(step+p.phase)%len(p.lut)]
		f.pixels[p.pixel] = t.backColour.BlendHcl(t.foreColour, gain).Clamped()
	}

	return f
}
