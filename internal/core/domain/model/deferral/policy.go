package deferral

import (
	"fmt"

	"washroute/internal/pkg/errs"
)

// Policy decides how long a deferral lasts.
type Policy int

const (
	// UnknownPolicy represents an uninitialized policy.
	UnknownPolicy Policy = iota
	// UntilNextCompletion defers one subtask until any subtask is completed
	// or until its expiry instant passes, whichever happens first.
	UntilNextCompletion
	// UntilLast defers every order that is not last in the active collection
	// until the deferred order is the only active order left.
	UntilLast
)

func getPolicyStrings() map[Policy]string {
	return map[Policy]string{
		UnknownPolicy:       "unknown",
		UntilNextCompletion: "next",
		UntilLast:           "last",
	}
}

// ParsePolicy converts the persisted name ("next" or "last") into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "next":
		return UntilNextCompletion, nil
	case "last":
		return UntilLast, nil
	default:
		return UnknownPolicy, errs.NewValueIsInvalidErrorWithCause(
			"policy is invalid", fmt.Errorf("%q is not a valid deferral policy", s))
	}
}

// Validate checks that the policy is UntilNextCompletion or UntilLast.
func (p Policy) Validate() error {
	if p != UntilNextCompletion && p != UntilLast {
		return errs.NewValueIsInvalidErrorWithCause(
			"policy is invalid", fmt.Errorf("%d is not a valid deferral policy", p))
	}
	return nil
}

// String returns the persisted name of the policy.
func (p Policy) String() string {
	if str, ok := getPolicyStrings()[p]; ok {
		return str
	}
	return "unknown"
}
