package order

import (
	"fmt"

	"washroute/internal/pkg/errs"
)

// Kind names the purpose of a visit. It is descriptive metadata only:
// ranking and deferral never look at it.
type Kind int

const (
	// UnknownKind represents an uninitialized kind.
	UnknownKind Kind = iota
	// Pickup collects laundry from the customer.
	Pickup
	// Drop leaves collected laundry at the depot.
	Drop
	// Collect takes clean laundry from the depot.
	Collect
	// Delivery returns clean laundry to the customer.
	Delivery
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		UnknownKind: "unknown",
		Pickup:      "pickup",
		Drop:        "drop",
		Collect:     "collect",
		Delivery:    "delivery",
	}
}

// ParseKind converts a wire name ("pickup", "drop", "collect", "delivery") into a Kind.
func ParseKind(s string) (Kind, error) {
	for kind, name := range getKindStrings() {
		if name == s && kind != UnknownKind {
			return kind, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%q is not a valid kind", s))
}

// Validate checks that the kind belongs to the closed set.
func (k Kind) Validate() error {
	if k < Pickup || k > Delivery {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}
