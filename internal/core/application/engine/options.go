package engine

import (
	"log/slog"
	"time"

	"washroute/internal/core/ports"
)

// DefaultSnoozeDuration is how long a defer-until-next-completion record lasts
// when no completion consumes it first.
const DefaultSnoozeDuration = 30 * time.Minute

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithAfterFunc replaces time.AfterFunc for deferral expiry timers.
func WithAfterFunc(fn AfterFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.afterFunc = fn
		}
	}
}

// WithSnoozeDuration sets the expiry used when Snooze is called without a duration.
// Non-positive values keep DefaultSnoozeDuration.
func WithSnoozeDuration(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.snoozeDuration = d
		}
	}
}

// WithLogger sets the logger; the engine adds its own component attribute.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver registers an observer notified after every state change.
func WithObserver(observer ports.BoardObserver) Option {
	return func(e *Engine) {
		if observer != nil {
			e.observers = append(e.observers, observer)
		}
	}
}
