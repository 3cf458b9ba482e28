package stream

import (
	"strconv"
	"time"
)

// An Animation implements a way to render a specific animation.
type Animation interface {
	CalculateFrame(runtimeMs int64) *Frame
}

// Bake renders count frames of anim, step apart, into lib under the names
// baseName0 to baseName<count-1>.
func Bake(lib Library, baseName string, anim Animation, count int, step time.Duration) {
	for i := 0; i < count; i++ {
		runtimeMs := (time.Duration(i) * step).Milliseconds()
		lib[baseName+strconv.Itoa(i)] = anim.CalculateFrame(runtimeMs)
	}
}

// BuiltinLibrary bakes the built-in animations for a strip of numPixels.
// Each sequence has count frames:
//
//	gradient_   a rainbow trail sweeping along the strip
//	twinkle_    twinkling particles over a dim background
//	tab_burst_  a short pulse of light, sized for an overlay
func BuiltinLibrary(numPixels, count int) Library {
	lib := Library{}
	step := 33 * time.Millisecond

	Bake(lib, "gradient_", NewGradientTrail(numPixels, DefaultGradient(), 180, 0.06), count, step)

	back := mustHex("#000005")
	fore := mustHex("#808080")
	Bake(lib, "twinkle_", NewTwinkle(numPixels, numPixels/5, fore, back), count, step)

	Bake(lib, "tab_burst_", NewPulse(31, mustHex("#ffd080")), count, step)

	return lib
}
