package stream

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledseq/util"
)

// fadeStep is the target period between opacity updates during a fade.
const fadeStep = 20 * time.Millisecond

// Canvas is a Display that composites overlays on top of a background
// frame and forwards the result to another Display.
type Canvas struct {
	mu         sync.Mutex
	out        Display
	fill       colorful.Color
	background *Frame
	overlays   []*Overlay
	log        *slog.Logger
}

// NewCanvas creates a Canvas of numPixels filled with background.
func NewCanvas(out Display, numPixels int, background colorful.Color) *Canvas {
	c := new(Canvas)
	c.out = out
	c.fill = background
	c.background = NewFrameFill(numPixels, background)
	c.log = slog.Default()
	return c
}

// SetFrame replaces the background and redraws. Pixels past the end of a
// short frame show the canvas fill colour; a long frame is cut off.
func (c *Canvas) SetFrame(f *Frame) {
	if f == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	bg := NewFrameFill(len(c.background.pixels), c.fill)
	copy(bg.pixels, f.pixels)
	c.background = bg
	c.redrawLocked()
}

// NewOverlay creates a detached overlay centred on pixel at.
func (c *Canvas) NewOverlay(at int, alpha float64) *Overlay {
	return &Overlay{canvas: c, at: at, alpha: alpha}
}

// Attach adds o on top of the existing overlays.
func (c *Canvas) Attach(o *Overlay) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slices.Contains(c.overlays, o) {
		return
	}
	c.overlays = append(c.overlays, o)
	c.log.Debug("overlay attached", "at", o.at, "overlays", len(c.overlays))
	c.redrawLocked()
}

// Detach removes o. Detaching an overlay that is not attached does nothing.
func (c *Canvas) Detach(o *Overlay) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.Index(c.overlays, o)
	if i < 0 {
		return
	}
	c.overlays = slices.Delete(c.overlays, i, i+1)
	o.player = nil
	c.log.Debug("overlay detached", "at", o.at, "overlays", len(c.overlays))
	c.redrawLocked()
}

// Overlays returns the number of attached overlays.
func (c *Canvas) Overlays() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.overlays)
}

func (c *Canvas) redrawLocked() {
	if c.out == nil {
		return
	}
	out := c.background.Clone()
	for _, o := range c.overlays {
		if o.frame == nil || o.alpha <= 0 {
			continue
		}
		start := o.at - o.frame.Len()/2
		for i, px := range o.frame.pixels {
			idx := start + i
			if idx < 0 || idx >= len(out.pixels) {
				continue
			}
			out.pixels[idx] = out.pixels[idx].BlendRgb(px, o.alpha).Clamped()
		}
	}
	c.out.SetFrame(out)
}

// Overlay is a positioned, translucent Display layered on a Canvas.
type Overlay struct {
	canvas *Canvas
	at     int
	alpha  float64
	frame  *Frame

	// player keeps a fire-and-forget player alive while the overlay is
	// attached.
	player *Player
}

// SetFrame sets the overlay's frame and redraws the canvas if attached.
func (o *Overlay) SetFrame(f *Frame) {
	c := o.canvas
	c.mu.Lock()
	defer c.mu.Unlock()
	o.frame = f
	if slices.Contains(c.overlays, o) {
		c.redrawLocked()
	}
}

// SetAlpha sets the overlay's opacity in [0, 1].
func (o *Overlay) SetAlpha(alpha float64) {
	c := o.canvas
	c.mu.Lock()
	defer c.mu.Unlock()
	o.alpha = min(max(alpha, 0), 1)
	if slices.Contains(c.overlays, o) {
		c.redrawLocked()
	}
}

// Alpha returns the overlay's opacity.
func (o *Overlay) Alpha() float64 {
	o.canvas.mu.Lock()
	defer o.canvas.mu.Unlock()
	return o.alpha
}

// FadeOut eases the overlay's opacity to zero over d, then calls then.
func (o *Overlay) FadeOut(clock Clock, d time.Duration, then func()) {
	start := o.Alpha()
	if d <= 0 {
		o.SetAlpha(0)
		if then != nil {
			then()
		}
		return
	}

	steps := max(int(d/fadeStep), 1)
	curve := util.FadeCurve(steps)
	ticker := clock.NewTicker(d / time.Duration(steps))
	go func() {
		defer ticker.Stop()
		for _, v := range curve {
			<-ticker.C()
			o.SetAlpha(start * v)
		}
		if then != nil {
			then()
		}
	}()
}

// BurstOptions configures Burst.
type BurstOptions struct {
	BaseName string
	Count    int
	Duration time.Duration
	Fade     time.Duration
	Alpha    float64
	Clock    Clock
	Log      *slog.Logger
}

// DefaultBurstOptions returns the options of the standard tab burst.
func DefaultBurstOptions() BurstOptions {
	return BurstOptions{
		BaseName: "tab_burst_",
		Count:    15,
		Duration: 500 * time.Millisecond,
		Fade:     200 * time.Millisecond,
		Alpha:    0.9,
	}
}

// Burst plays the named sequence once in an overlay centred on pixel at,
// then fades the overlay out and removes it. Nothing is attached when none
// of the frames resolve.
func Burst(c *Canvas, r Resolver, at int, opts BurstOptions) *Player {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	o := c.NewOverlay(at, opts.Alpha)
	p := NewPlayerFromNames(r, opts.BaseName, opts.Count, o)
	if p.Len() == 0 {
		log.Debug("burst has no frames", "baseName", opts.BaseName)
		return p
	}

	p.SetClock(clock)
	p.SetLogger(log)
	p.SetOnComplete(func() {
		o.FadeOut(clock, opts.Fade, func() {
			c.Detach(o)
			p.Close()
		})
	})

	o.player = p
	c.Attach(o)
	p.Start(opts.Duration, 1)
	return p
}
