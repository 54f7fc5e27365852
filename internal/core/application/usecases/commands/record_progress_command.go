package commands

import (
	"errors"

	"washroute/internal/core/domain/model/order"
	"washroute/internal/pkg/errs"
	"washroute/internal/pkg/guard"
)

var ErrRecordProgressCommandIsNotConstructed = errors.New(
	"RecordProgressCommand must be created via NewRecordProgressCommand constructor",
)

// RecordProgressCommand carries an order snapshot whose subtask progress must be written to the order store.
//
// Example:
//
//	cmd, err := NewRecordProgressCommand(result.Order)
//	if err != nil {
//	    return err
//	}
//	if err = handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to record progress: %w", err)
//	}
type RecordProgressCommand struct { //nolint:recvcheck //using for validation
	order *order.Order

	guard guard.ConstructorGuard
}

// NewRecordProgressCommand creates the command. The order must be a valid aggregate.
func NewRecordProgressCommand(o *order.Order) (RecordProgressCommand, error) {
	cmd := RecordProgressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrder(o); err != nil {
		return RecordProgressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordProgressCommand) Validate() error {
	return c.guard.Validate(ErrRecordProgressCommandIsNotConstructed)
}

// Order returns the order snapshot.
func (c RecordProgressCommand) Order() *order.Order {
	return c.order
}

func (c *RecordProgressCommand) setOrder(o *order.Order) error {
	if o == nil {
		return errs.NewValueIsRequiredError("order")
	}
	if err := o.Validate(); err != nil {
		return err
	}

	c.order = o.Clone()
	return nil
}
