// Package mainloop holds the cooperative single-thread plumbing: task
// coalescing, layout update scheduling, and the frame clock that drives
// settle animations.
package mainloop

import "sync"

// Coalescer merges bursts of same-key main-loop tasks. A key with a
// task already queued keeps its slot; only the callback is replaced, so
// the latest one runs when the loop gets to it.
type Coalescer struct {
	mu        sync.Mutex
	queued    map[string]func()
	post      func(func())
	destroyed bool
}

func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}

	return &Coalescer{
		queued: make(map[string]func()),
		post:   post,
	}
}

func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	_, scheduled := c.queued[key]
	c.queued[key] = fn
	post := c.post
	c.mu.Unlock()

	if scheduled {
		return
	}

	post(func() {
		c.mu.Lock()
		fn := c.queued[key]
		delete(c.queued, key)
		destroyed := c.destroyed
		c.mu.Unlock()

		if fn != nil && !destroyed {
			fn()
		}
	})
}

func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.queued = map[string]func(){}
	c.mu.Unlock()
}
