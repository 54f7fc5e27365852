package commands

import (
	"errors"

	"washroute/internal/pkg/guard"
)

var ErrClearDeferralCommandIsNotConstructed = errors.New(
	"ClearDeferralCommand must be created via NewClearDeferralCommand constructor",
)

// ClearDeferralCommand represents a request to drop the active deferral record.
// This is a parameterless command; clearing when nothing is deferred succeeds.
type ClearDeferralCommand struct {
	guard guard.ConstructorGuard
}

// NewClearDeferralCommand creates the command.
func NewClearDeferralCommand() ClearDeferralCommand {
	return ClearDeferralCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ClearDeferralCommand) Validate() error {
	return c.guard.Validate(ErrClearDeferralCommandIsNotConstructed)
}
