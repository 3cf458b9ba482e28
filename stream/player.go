package stream

import (
	"log/slog"
	"runtime"
	"strconv"
	"sync"
	"time"
	"weak"
)

const (
	// DefaultDuration is the time taken by one pass through the sequence.
	DefaultDuration = time.Second
	// DefaultRepeatCount is the number of passes made by Play.
	DefaultRepeatCount = 1
)

// A Display accepts the frame that should currently be shown.
type Display interface {
	SetFrame(f *Frame)
}

// Player plays an ordered sequence of frames onto a Display at a fixed
// cadence.
//
// The frame list is fixed at construction. Each call to Start begins a new
// session that replaces any session still running. A session ends when all
// of its frames have been shown (the completion handler is then called
// once), when Stop or Close is called, or when the Player is garbage
// collected.
type Player struct {
	frames  []*Frame
	display Display
	clock   Clock
	log     *slog.Logger

	mu         sync.Mutex
	index      int
	onComplete func()
	session    *session
	closed     bool
}

// session holds the state of one run started by Start. It must not
// reference the Player so that the Player stays collectable while ticks are
// pending.
type session struct {
	total    int
	shown    int
	interval time.Duration
	ticker   Ticker
	done     chan struct{}
	once     sync.Once
	cleanup  runtime.Cleanup
}

func (s *session) cancel() {
	s.once.Do(func() {
		close(s.done)
		s.ticker.Stop()
	})
}

// NewPlayer creates a Player for frames. The display, if any, is set to the
// first frame straight away.
func NewPlayer(frames []*Frame, display Display) *Player {
	p := new(Player)
	p.frames = append([]*Frame(nil), frames...)
	p.display = display
	p.clock = SystemClock{}
	p.log = slog.Default()

	if len(p.frames) > 0 && p.display != nil {
		p.display.SetFrame(p.frames[0])
	}

	return p
}

// NewPlayerFromNames creates a Player from the frames named baseName0 to
// baseName<count-1>. Names the resolver does not know are left out, so the
// sequence may be shorter than count or empty.
func NewPlayerFromNames(r Resolver, baseName string, count int, display Display) *Player {
	frames := make([]*Frame, 0, max(count, 0))
	for i := 0; r != nil && i < count; i++ {
		if f, ok := r.Resolve(baseName + strconv.Itoa(i)); ok {
			frames = append(frames, f)
		}
	}
	return NewPlayer(frames, display)
}

// SetClock replaces the clock used by later sessions.
func (p *Player) SetClock(c Clock) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clock = c
}

// SetLogger replaces the player's logger.
func (p *Player) SetLogger(l *slog.Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = l
}

// SetOnComplete sets the handler called when a session shows its last
// frame. It is not called for sessions ended by Stop or Close.
func (p *Player) SetOnComplete(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onComplete = fn
}

// Len returns the number of frames in the sequence.
func (p *Player) Len() int {
	return len(p.frames)
}

// Index returns the position of the next frame to be shown.
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Playing reports whether a session is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session != nil
}

// Play runs the sequence once over DefaultDuration.
func (p *Player) Play() {
	p.Start(DefaultDuration, DefaultRepeatCount)
}

// Start plays the sequence repeatCount times, taking duration for each pass.
// A non-positive duration means DefaultDuration. Start does nothing when the
// sequence is empty or the player is closed. A repeatCount below one ends
// the running session without starting another.
func (p *Player) Start(duration time.Duration, repeatCount int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.frames)
	if n == 0 || p.closed {
		return
	}

	p.endLocked()
	if repeatCount < 1 {
		return
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	interval := max(duration/time.Duration(n), time.Nanosecond)
	p.index = 0

	s := &session{
		total:    n * repeatCount,
		interval: interval,
		done:     make(chan struct{}),
	}
	s.ticker = p.clock.NewTicker(interval)
	s.cleanup = runtime.AddCleanup(p, func(s *session) { s.cancel() }, s)
	p.session = s

	p.log.Debug("playback started",
		"frames", n, "repeat", repeatCount, "interval", interval)

	go run(weak.Make(p), s)
}

// Stop halts the running session, if any. The current frame and index are
// left as they are.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session != nil {
		p.log.Debug("playback stopped", "shown", p.session.shown, "total", p.session.total)
	}
	p.endLocked()
}

// Close stops the player for good. Later calls to Start do nothing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.endLocked()
}

func (p *Player) endLocked() {
	s := p.session
	if s == nil {
		return
	}
	s.cancel()
	s.cleanup.Stop()
	p.session = nil
}

// run delivers ticks for s until the session ends. It only holds a weak
// reference to the player.
func run(wp weak.Pointer[Player], s *session) {
	defer s.ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C():
			p := wp.Value()
			if p == nil || !p.advance(s) {
				return
			}
		}
	}
}

// advance shows the next frame of s and reports whether s is still running.
func (p *Player) advance(s *session) bool {
	p.mu.Lock()
	if p.session != s {
		p.mu.Unlock()
		return false
	}

	if p.display != nil {
		p.display.SetFrame(p.frames[p.index])
	}
	p.index = (p.index + 1) % len(p.frames)
	s.shown++

	if s.shown < s.total {
		p.mu.Unlock()
		return true
	}

	p.endLocked()
	fn := p.onComplete
	p.log.Debug("playback complete", "shown", s.shown)
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
	return false
}
