// Package ports defines the contracts between the washroute core and its adapters:
// where the assignment batch comes from, where deferral state and completion progress
// are persisted, and who is told about board changes.
package ports

import (
	"context"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are stored with their full subtask chain.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the subtask statuses, enabled flags and completion time of an existing order.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves every order that is not completed, in the order they were added.
	// Used to load the assignment batch.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
