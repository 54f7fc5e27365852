package ports

import (
	"context"
	"time"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"
)

// CompletionEvent describes one committed subtask completion.
type CompletionEvent struct {
	SubtaskID      kernel.UUID
	Order          *order.Order
	OrderCompleted bool
	WorkerID       kernel.UUID
	WorkerPosition kernel.Location
	CompletedAt    time.Time
	// EnabledOrder is another order whose head subtask the completion enabled, or nil.
	EnabledOrder *order.Order
}

// CompletionReporter forwards committed completions to upstream systems.
// A reporting failure never undoes the completion; callers only log it.
type CompletionReporter interface {
	ReportCompletion(ctx context.Context, event CompletionEvent) error
}

// BoardObserver is notified after every state change of the engine.
// Notify is called outside the engine lock and must not block for long.
type BoardObserver interface {
	BoardChanged(ctx context.Context)
}
