package commands

import (
	"context"

	"washroute/internal/core/ports"
)

// RecordProgressCommandHandler writes an order's subtask statuses and completion time inside a transaction.
//
// Example:
//
//	handler := NewRecordProgressCommandHandler(uowFactory)
//	cmd, _ := NewRecordProgressCommand(result.Order)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("progress not stored: %w", err)
//	}
type RecordProgressCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

// NewRecordProgressCommandHandler creates a handler for progress recording.
// Requires a UnitOfWorkFactory for transactional persistence.
func NewRecordProgressCommandHandler(uowFactory ports.UnitOfWorkFactory) RecordProgressCommandHandler {
	return RecordProgressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command.
// Uses a transaction so the whole chain is stored or nothing is.
func (h RecordProgressCommandHandler) Handle(ctx context.Context, cmd RecordProgressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, cmd.Order()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
