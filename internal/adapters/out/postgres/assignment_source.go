package postgres

import (
	"context"
	"fmt"

	"washroute/internal/core/domain/model/worker"
	"washroute/internal/core/ports"
	"washroute/internal/pkg/errs"
)

// AssignmentSource loads the active orders from the order store.
// The worker is not stored in the database and comes from configuration.
type AssignmentSource struct {
	uowFactory ports.UnitOfWorkFactory
	worker     *worker.Worker
}

// NewAssignmentSource creates a source returning every active order and the given worker.
func NewAssignmentSource(uowFactory ports.UnitOfWorkFactory, w *worker.Worker) (*AssignmentSource, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if w == nil {
		return nil, errs.NewValueIsRequiredError("worker")
	}

	return &AssignmentSource{uowFactory: uowFactory, worker: w.Clone()}, nil
}

// LoadAssignment reads the active orders in the order they were added.
func (s *AssignmentSource) LoadAssignment(ctx context.Context) (ports.Assignment, error) {
	orders, err := s.uowFactory.Create().OrderRepository().GetAllActive(ctx)
	if err != nil {
		return ports.Assignment{}, fmt.Errorf("load active orders: %w", err)
	}

	return ports.Assignment{Orders: orders, Worker: s.worker.Clone()}, nil
}
