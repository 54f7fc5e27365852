package commands

import (
	"errors"
	"time"

	"washroute/internal/pkg/errs"
	"washroute/internal/pkg/guard"
)

var ErrExpireDeferralCommandIsNotConstructed = errors.New(
	"ExpireDeferralCommand must be created via NewExpireDeferralCommand constructor",
)

// ExpireDeferralCommand asks the engine to drop an until-next record whose expiry is at or before Now.
// Issued by the periodic sweep job.
type ExpireDeferralCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewExpireDeferralCommand creates the command for the given instant.
func NewExpireDeferralCommand(now time.Time) (ExpireDeferralCommand, error) {
	cmd := ExpireDeferralCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setNow(now); err != nil {
		return ExpireDeferralCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireDeferralCommand) Validate() error {
	return c.guard.Validate(ErrExpireDeferralCommandIsNotConstructed)
}

// Now returns the instant expiry is evaluated at.
func (c ExpireDeferralCommand) Now() time.Time {
	return c.now
}

func (c *ExpireDeferralCommand) setNow(now time.Time) error {
	if now.IsZero() {
		return errs.NewValueIsRequiredError("now")
	}

	c.now = now
	return nil
}
