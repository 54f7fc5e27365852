package commands

import (
	"errors"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/pkg/guard"
)

var ErrCompleteSubtaskCommandIsNotConstructed = errors.New(
	"CompleteSubtaskCommand must be created via NewCompleteSubtaskCommand constructor",
)

// CompleteSubtaskCommand represents the worker reporting an actionable subtask as done.
//
// Example:
//
//	cmd, err := NewCompleteSubtaskCommand(subtaskID)
//	if err != nil {
//	    return fmt.Errorf("invalid completion: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to complete subtask: %w", err)
//	}
//	fmt.Printf("worker is now at %s\n", result.WorkerPosition)
type CompleteSubtaskCommand struct { //nolint:recvcheck //using for validation
	subtaskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteSubtaskCommand creates a completion command for the given subtask.
// Returns an error if the subtask id is not a valid identifier.
func NewCompleteSubtaskCommand(subtaskID kernel.UUID) (CompleteSubtaskCommand, error) {
	cmd := CompleteSubtaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSubtaskID(subtaskID); err != nil {
		return CompleteSubtaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteSubtaskCommand) Validate() error {
	return c.guard.Validate(ErrCompleteSubtaskCommandIsNotConstructed)
}

// SubtaskID returns the subtask to complete.
func (c CompleteSubtaskCommand) SubtaskID() kernel.UUID {
	return c.subtaskID
}

func (c *CompleteSubtaskCommand) setSubtaskID(subtaskID kernel.UUID) error {
	if err := subtaskID.Validate(); err != nil {
		return err
	}

	c.subtaskID = subtaskID
	return nil
}
