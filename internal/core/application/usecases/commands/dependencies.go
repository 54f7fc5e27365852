// Package commands contains business operations that modify the sequencing state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: constructor validation, then a single engine transition.
package commands

import (
	"context"
	"time"

	"washroute/internal/core/application/engine"
	"washroute/internal/core/domain/model/deferral"
	"washroute/internal/core/domain/model/kernel"
)

// Engine transitions the command handlers depend on. *engine.Engine implements all of them.
type (
	// SubtaskCompleter commits subtask completions.
	SubtaskCompleter interface {
		CompleteSubtask(ctx context.Context, subtaskID kernel.UUID) (engine.CompletionResult, error)
	}

	// SubtaskSnoozer defers a single subtask until the next completion.
	SubtaskSnoozer interface {
		Snooze(ctx context.Context, subtaskID kernel.UUID, d time.Duration) (deferral.Record, error)
	}

	// OrderSnoozer defers orders until a given order is the last one left.
	OrderSnoozer interface {
		SnoozeUntilLast(ctx context.Context, orderID *kernel.UUID) (deferral.Record, error)
	}

	// DeferralClearer removes the active deferral record.
	DeferralClearer interface {
		ClearDeferral(ctx context.Context) error
	}

	// DeferralExpirer clears an expired deferral record.
	DeferralExpirer interface {
		ExpireDeferral(ctx context.Context, now time.Time) (bool, error)
	}
)
