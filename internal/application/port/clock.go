package port

// FrameClock drives per-frame callbacks for settle animations. The engine
// never owns a timer; the host registers a callback and invokes it from its
// display refresh (nominally ~60 Hz).
type FrameClock interface {
	// Start begins delivering ticks to fn with the elapsed seconds since
	// the previous tick. Calling Start while running replaces the callback.
	Start(fn func(dt float64))

	// Stop halts tick delivery. Safe to call when not running.
	Stop()
}
