package canvas

import (
	"context"
	"time"
)

// Scheduler is the host's cooperative UI-thread scheduler.
type Scheduler interface {
	// RequestFrame runs fn once on the next display refresh.
	RequestFrame(fn func())
	// Post runs fn on the UI thread as soon as possible. It may be called
	// from any goroutine.
	Post(fn func())
}

// Box is the logical size of the host container.
type Box struct {
	Width, Height float64
}

// BoxObserver reports the geometry of the container the canvas fills.
type BoxObserver interface {
	// Observe calls fn on the UI thread whenever the container box changes.
	// The returned function stops observation.
	Observe(fn func(Box)) (stop func())
	// Measure returns the current container box.
	Measure() Box
}

// Clock returns a monotonic reading.
type Clock func() time.Duration

// Fetcher resolves a shader locator to shader source text.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (string, error)
}

// MonotonicClock returns a Clock measuring from the moment it is called.
func MonotonicClock() Clock {
	base := time.Now()
	return func() time.Duration {
		return time.Since(base)
	}
}
