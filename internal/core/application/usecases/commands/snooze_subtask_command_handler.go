package commands

import (
	"context"

	"washroute/internal/core/domain/model/deferral"
)

// SnoozeSubtaskCommandHandler installs an until-next deferral record through the engine.
type SnoozeSubtaskCommandHandler struct {
	snoozer SubtaskSnoozer
}

// NewSnoozeSubtaskCommandHandler creates a handler for snooze requests.
func NewSnoozeSubtaskCommandHandler(snoozer SubtaskSnoozer) SnoozeSubtaskCommandHandler {
	return SnoozeSubtaskCommandHandler{snoozer: snoozer}
}

// Handle processes the snooze command and returns the installed record.
func (h SnoozeSubtaskCommandHandler) Handle(ctx context.Context, cmd SnoozeSubtaskCommand) (deferral.Record, error) {
	if err := cmd.Validate(); err != nil {
		return deferral.Record{}, err
	}

	return h.snoozer.Snooze(ctx, cmd.SubtaskID(), cmd.Duration())
}
