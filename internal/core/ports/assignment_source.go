package ports

import (
	"context"

	"washroute/internal/core/domain/model/order"
	"washroute/internal/core/domain/model/worker"
)

// Assignment is the initial batch the engine is built from.
type Assignment struct {
	// Orders are the active orders in batch order. The last one is "the last order" for
	// defer-until-last classification.
	Orders []*order.Order
	// Worker is the driver together with their starting location.
	Worker *worker.Worker
}

// AssignmentSource loads the initial batch once at startup.
type AssignmentSource interface {
	LoadAssignment(ctx context.Context) (Assignment, error)
}
