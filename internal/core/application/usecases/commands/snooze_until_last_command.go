package commands

import (
	"errors"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/pkg/guard"
)

var ErrSnoozeUntilLastCommandIsNotConstructed = errors.New(
	"SnoozeUntilLastCommand must be created via NewSnoozeUntilLastCommand constructor",
)

// SnoozeUntilLastCommand represents a request to postpone an order until it is the only one left.
// Without an order id the order of the current closest subtask is used.
type SnoozeUntilLastCommand struct { //nolint:recvcheck //using for validation
	orderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSnoozeUntilLastCommand creates the command. orderID may be nil.
func NewSnoozeUntilLastCommand(orderID *kernel.UUID) (SnoozeUntilLastCommand, error) {
	cmd := SnoozeUntilLastCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return SnoozeUntilLastCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SnoozeUntilLastCommand) Validate() error {
	return c.guard.Validate(ErrSnoozeUntilLastCommandIsNotConstructed)
}

// OrderID returns the order to postpone and true, or false when the current one is meant.
func (c SnoozeUntilLastCommand) OrderID() (kernel.UUID, bool) {
	if c.orderID == nil {
		return kernel.UUID{}, false
	}
	return *c.orderID, true
}

func (c *SnoozeUntilLastCommand) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}

	if err := orderID.Validate(); err != nil {
		return err
	}

	id := *orderID
	c.orderID = &id
	return nil
}
