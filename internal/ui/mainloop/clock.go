package mainloop

import (
	"sync"
	"time"

	"github.com/bnema/stagedock/internal/application/port"
)

// DefaultFrameInterval approximates a 60 Hz display refresh.
const DefaultFrameInterval = time.Second / 60

// FrameTicker implements port.FrameClock on a wall-clock ticker. Ticks
// are delivered through the main-loop executor so callbacks run on the
// UI thread like every other engine entry point.
type FrameTicker struct {
	interval time.Duration
	post     func(func())

	mu   sync.Mutex
	stop chan struct{}
}

var _ port.FrameClock = (*FrameTicker)(nil)

// NewFrameTicker creates a ticker with the given interval; zero or
// negative intervals fall back to DefaultFrameInterval.
func NewFrameTicker(interval time.Duration, post func(func())) *FrameTicker {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &FrameTicker{interval: interval, post: post}
}

// Start implements port.FrameClock.
func (t *FrameTicker) Start(fn func(dt float64)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		close(t.stop)
	}
	stop := make(chan struct{})
	t.stop = stop

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		last := time.Now()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				dt := now.Sub(last).Seconds()
				last = now
				t.post(func() { fn(dt) })
			}
		}
	}()
}

// Stop implements port.FrameClock.
func (t *FrameTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}
