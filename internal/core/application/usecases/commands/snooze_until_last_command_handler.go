package commands

import (
	"context"

	"washroute/internal/core/domain/model/deferral"
)

// SnoozeUntilLastCommandHandler installs an until-last deferral record through the engine.
type SnoozeUntilLastCommandHandler struct {
	snoozer OrderSnoozer
}

// NewSnoozeUntilLastCommandHandler creates a handler for snooze-until-last requests.
func NewSnoozeUntilLastCommandHandler(snoozer OrderSnoozer) SnoozeUntilLastCommandHandler {
	return SnoozeUntilLastCommandHandler{snoozer: snoozer}
}

// Handle processes the command and returns the installed record.
func (h SnoozeUntilLastCommandHandler) Handle(
	ctx context.Context,
	cmd SnoozeUntilLastCommand,
) (deferral.Record, error) {
	if err := cmd.Validate(); err != nil {
		return deferral.Record{}, err
	}

	if id, ok := cmd.OrderID(); ok {
		return h.snoozer.SnoozeUntilLast(ctx, &id)
	}
	return h.snoozer.SnoozeUntilLast(ctx, nil)
}
