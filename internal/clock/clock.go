// Package clock provides blocking pause primitives with injectable
// implementations for tests.
package clock

import (
	"context"
	"time"
)

// Pauser blocks for a duration. Implementations must return early when the
// context finishes.
type Pauser interface {
	Pause(ctx context.Context, delay time.Duration)
}

// TimerPauser implements Pauser with a real timer.
type TimerPauser struct{}

// Pause blocks until delay elapses or the context is done.
func (TimerPauser) Pause(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
