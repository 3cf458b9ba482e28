package stream

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestFrame_MarshalBinary(t *testing.T) {
	f := NewFrame(3)
	f.SetPixel(0, colorful.Color{R: 1})
	f.SetPixel(1, colorful.Color{G: 2}) // clamped
	f.SetPixel(2, colorful.Color{B: -1})

	data, err := f.MarshalBinary()

	assert.NoError(t, err)
	assert.Equal(t, []byte{3, 0, 255, 0, 0, 0, 255, 0, 0, 0, 0}, data)
}

func TestFrame_CloneIsIndependent(t *testing.T) {
	f := NewFrameFill(2, colorful.Color{R: 1})
	c := f.Clone()
	c.SetPixel(0, colorful.Color{})

	assert.Equal(t, colorful.Color{R: 1}, f.Pixel(0))
	assert.Equal(t, 2, c.Len())
}

func TestFrame_InterpolateFrame(t *testing.T) {
	a := NewFrameFill(2, colorful.Color{R: 1, G: 1, B: 1})
	b := NewFrameFill(2, colorful.Color{})

	assert.True(t, a.InterpolateFrame(b, 0).Pixel(0).AlmostEqualRgb(a.Pixel(0)))
	assert.True(t, a.InterpolateFrame(b, 1).Pixel(1).AlmostEqualRgb(b.Pixel(1)))
}
