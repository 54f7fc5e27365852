package commands

import "context"

// ClearDeferralCommandHandler clears the deferral record through the engine.
type ClearDeferralCommandHandler struct {
	clearer DeferralClearer
}

// NewClearDeferralCommandHandler creates the handler.
func NewClearDeferralCommandHandler(clearer DeferralClearer) ClearDeferralCommandHandler {
	return ClearDeferralCommandHandler{clearer: clearer}
}

// Handle processes the command.
func (h ClearDeferralCommandHandler) Handle(ctx context.Context, cmd ClearDeferralCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.clearer.ClearDeferral(ctx)
}
