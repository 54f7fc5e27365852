package commands

import "context"

// ExpireDeferralCommandHandler sweeps an expired deferral record.
type ExpireDeferralCommandHandler struct {
	expirer DeferralExpirer
}

// NewExpireDeferralCommandHandler creates the handler.
func NewExpireDeferralCommandHandler(expirer DeferralExpirer) ExpireDeferralCommandHandler {
	return ExpireDeferralCommandHandler{expirer: expirer}
}

// Handle processes the command.
//
// Returns:
//   - bool: true when a record expired
//   - error: validation or store error
func (h ExpireDeferralCommandHandler) Handle(ctx context.Context, cmd ExpireDeferralCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	return h.expirer.ExpireDeferral(ctx, cmd.Now())
}
