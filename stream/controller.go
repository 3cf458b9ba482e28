package stream

import (
	"log/slog"
	"sync"
	"time"
)

// Status describes what the Controller is doing.
type Status struct {
	Frames   int  `json:"frames"`
	Playing  bool `json:"playing"`
	Index    int  `json:"index"`
	Overlays int  `json:"overlays"`
}

// Controller that manages playback of the main sequence and bursts on a
// single strip.
type Controller struct {
	config   Config
	canvas   *Canvas
	resolver Resolver
	bursts   Resolver
	log      *slog.Logger

	mu    sync.Mutex
	clock Clock
	main  *Player
}

// NewController creates an instance of a Controller drawing onto out.
func NewController(config Config, out Display, resolver Resolver, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}

	c := new(Controller)
	c.config = config
	c.canvas = NewCanvas(out, config.Strip.Pixels, config.BackgroundColour())
	c.canvas.log = log
	c.resolver = resolver
	c.bursts = resolver
	c.log = log
	c.clock = SystemClock{}

	seq := config.Sequence
	c.main = NewPlayerFromNames(resolver, seq.BaseName, seq.Count, c.canvas)
	c.main.SetLogger(log)
	c.main.SetOnComplete(func() {
		c.log.Info("sequence complete", "baseName", seq.BaseName)
	})
	c.log.Info("sequence loaded", "baseName", seq.BaseName, "requested", seq.Count, "resolved", c.main.Len())

	return c
}

// SetBurstResolver sets the resolver for burst frames. By default bursts
// use the same resolver as the main sequence.
func (c *Controller) SetBurstResolver(r Resolver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bursts = r
}

// SetClock sets the clock used for the main sequence and later bursts.
func (c *Controller) SetClock(clock Clock) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock = clock
	c.main.SetClock(clock)
}

// Play starts the main sequence. A zero duration or repeat takes the
// configured value.
func (c *Controller) Play(duration time.Duration, repeat int) {
	if duration == 0 {
		duration = c.config.Sequence.Duration
	}
	if repeat == 0 {
		repeat = c.config.Sequence.Repeat
	}
	c.log.Info("play", "duration", duration, "repeat", repeat)
	c.main.Start(duration, repeat)
}

// Stop halts the main sequence.
func (c *Controller) Stop() {
	c.log.Info("stop")
	c.main.Stop()
}

// Burst plays a burst overlay centred on pixel at. An empty baseName or
// zero count takes the configured value. It returns the number of frames
// resolved for the burst.
func (c *Controller) Burst(at int, baseName string, count int) int {
	c.mu.Lock()
	clock := c.clock
	bursts := c.bursts
	c.mu.Unlock()

	opts := BurstOptions{
		BaseName: c.config.Burst.BaseName,
		Count:    c.config.Burst.Count,
		Duration: c.config.Burst.Duration,
		Fade:     c.config.Burst.Fade,
		Alpha:    c.config.Burst.Alpha,
		Clock:    clock,
		Log:      c.log,
	}
	if baseName != "" {
		opts.BaseName = baseName
	}
	if count > 0 {
		opts.Count = count
	}

	p := Burst(c.canvas, bursts, at, opts)
	c.log.Info("burst", "at", at, "baseName", opts.BaseName, "frames", p.Len())
	return p.Len()
}

// Status reports the state of the main sequence and the canvas.
func (c *Controller) Status() Status {
	return Status{
		Frames:   c.main.Len(),
		Playing:  c.main.Playing(),
		Index:    c.main.Index(),
		Overlays: c.canvas.Overlays(),
	}
}

// Close stops the main sequence for good.
func (c *Controller) Close() {
	c.main.Close()
}
