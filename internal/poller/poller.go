// Package poller provides a cancellable periodic task. It replaces the
// uncoordinated fire-and-forget timer pattern: every poll loop is tied to a
// context, so navigating away or shutting down never leaks background work.
package poller

import (
	"context"
	"time"
)

// Func is one poll tick. Returning done=true stops the loop cleanly; a
// non-nil error aborts it and is returned from Run.
type Func func(ctx context.Context) (done bool, err error)

// Poller runs a Func at a fixed interval until it reports done, fails, or the
// context is cancelled.
type Poller struct {
	interval time.Duration
	fn       Func
}

// New creates a poller. interval must be positive.
func New(interval time.Duration, fn Func) *Poller {
	return &Poller{interval: interval, fn: fn}
}

// Run executes one immediate tick and then ticks at the configured interval.
// It blocks until the poll function reports done (nil), an error occurs, or
// ctx is cancelled (ctx.Err()).
func (p *Poller) Run(ctx context.Context) error {
	// First tick fires immediately; the UI should not wait a full interval
	// for the initial state.
	if done, err := p.fn(ctx); err != nil || done {
		return err
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if done, err := p.fn(ctx); err != nil || done {
				return err
			}
		}
	}
}
