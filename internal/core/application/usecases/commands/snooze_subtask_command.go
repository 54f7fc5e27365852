package commands

import (
	"errors"
	"time"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/pkg/errs"
	"washroute/internal/pkg/guard"
)

// MaxSnoozeDuration bounds an explicit snooze duration.
const MaxSnoozeDuration = 24 * time.Hour

var ErrSnoozeSubtaskCommandIsNotConstructed = errors.New(
	"SnoozeSubtaskCommand must be created via NewSnoozeSubtaskCommand constructor",
)

// SnoozeSubtaskCommand represents a request to defer one actionable subtask until the next completion.
// A zero duration means the configured default.
//
// Example:
//
//	cmd, err := NewSnoozeSubtaskCommand(subtaskID, 10*time.Minute)
//	if err != nil {
//	    return err
//	}
//	record, err := handler.Handle(ctx, cmd)
type SnoozeSubtaskCommand struct { //nolint:recvcheck //using for validation
	subtaskID kernel.UUID
	duration  time.Duration

	guard guard.ConstructorGuard
}

// NewSnoozeSubtaskCommand creates a snooze command.
// Validates the subtask id and that duration is within [0, MaxSnoozeDuration].
func NewSnoozeSubtaskCommand(subtaskID kernel.UUID, duration time.Duration) (SnoozeSubtaskCommand, error) {
	cmd := SnoozeSubtaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSubtaskID(subtaskID),
		cmd.setDuration(duration),
	); err != nil {
		return SnoozeSubtaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SnoozeSubtaskCommand) Validate() error {
	return c.guard.Validate(ErrSnoozeSubtaskCommandIsNotConstructed)
}

// SubtaskID returns the subtask to defer.
func (c SnoozeSubtaskCommand) SubtaskID() kernel.UUID {
	return c.subtaskID
}

// Duration returns the requested snooze duration, zero for the default.
func (c SnoozeSubtaskCommand) Duration() time.Duration {
	return c.duration
}

func (c *SnoozeSubtaskCommand) setSubtaskID(subtaskID kernel.UUID) error {
	if err := subtaskID.Validate(); err != nil {
		return err
	}

	c.subtaskID = subtaskID
	return nil
}

func (c *SnoozeSubtaskCommand) setDuration(d time.Duration) error {
	if d < 0 || d > MaxSnoozeDuration {
		return errs.NewValueIsOutOfRangeError("duration", d, time.Duration(0), MaxSnoozeDuration)
	}

	c.duration = d
	return nil
}
