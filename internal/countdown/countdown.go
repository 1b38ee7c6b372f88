// Package countdown implements the checkout window shown next to a
// non-empty cart. It is cosmetic: nothing in the store depends on it.
package countdown

import (
	"sync"
	"time"

	"github.com/nikolayk812/cartrecon/internal/domain"
)

const (
	DefaultWindow = 30 * time.Minute
	DefaultTick   = time.Second
)

type Timer struct {
	window time.Duration
	tick   time.Duration

	mu        sync.Mutex
	remaining time.Duration
	stop      chan struct{}
	done      chan struct{}
}

type Option func(*Timer)

// WithTick sets how much time each tick takes off the clock.
func WithTick(tick time.Duration) Option {
	return func(t *Timer) {
		if tick > 0 {
			t.tick = tick
		}
	}
}

func New(window time.Duration, opts ...Option) *Timer {
	if window <= 0 {
		window = DefaultWindow
	}

	t := &Timer{
		window:    window,
		tick:      DefaultTick,
		remaining: window,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins counting down from the current remaining time. It does
// nothing when the timer is already running or has run out.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil || t.remaining == 0 {
		return
	}

	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.run(t.stop, t.done)
}

// Reset halts the countdown and puts the full window back on the clock.
func (t *Timer) Reset() {
	t.halt()

	t.mu.Lock()
	t.remaining = t.window
	t.mu.Unlock()
}

// Stop halts the countdown and keeps the remaining time.
func (t *Timer) Stop() {
	t.halt()
}

func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

func (t *Timer) Expired() bool {
	return t.Remaining() == 0
}

// Publish follows the cart: an empty cart resets the clock, any other
// settled command keeps it running.
func (t *Timer) Publish(e domain.Event) {
	if e.CartLines == 0 {
		t.Reset()
		return
	}
	t.Start()
}

func (t *Timer) halt() {
	t.mu.Lock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	done := t.done
	t.done = nil
	t.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (t *Timer) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if t.advance() {
				return
			}
		}
	}
}

// advance takes one tick off the clock and reports whether it ran out.
func (t *Timer) advance() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.remaining -= t.tick
	if t.remaining > 0 {
		return false
	}

	t.remaining = 0
	t.stop = nil
	return true
}
