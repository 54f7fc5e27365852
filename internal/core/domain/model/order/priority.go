package order

import (
	"fmt"

	"washroute/internal/pkg/errs"
)

// PriorityClass tags an order for the category partition.
// Both is not a class of its own: an order tagged Both counts as Express.
type PriorityClass int

const (
	// UnknownPriority represents an uninitialized priority class.
	UnknownPriority PriorityClass = iota
	// Express marks urgent washing orders.
	Express
	// Standard marks regular washing orders.
	Standard
	// Both marks orders that carry express and standard items together.
	Both
)

func getPriorityStrings() map[PriorityClass]string {
	return map[PriorityClass]string{
		UnknownPriority: "unknown",
		Express:         "express",
		Standard:        "standard",
		Both:            "both",
	}
}

// ParsePriorityClass converts a wire name ("express", "standard", "both") into a PriorityClass.
func ParsePriorityClass(s string) (PriorityClass, error) {
	for class, name := range getPriorityStrings() {
		if name == s && class != UnknownPriority {
			return class, nil
		}
	}
	return UnknownPriority, errs.NewValueIsInvalidErrorWithCause(
		"priority class is invalid", fmt.Errorf("%q is not a valid priority class", s))
}

// Validate checks that the class is Express, Standard or Both.
func (p PriorityClass) Validate() error {
	if p < Express || p > Both {
		return errs.NewValueIsInvalidErrorWithCause(
			"priority class is invalid", fmt.Errorf("%d is not a valid priority class", p))
	}
	return nil
}

// ValidateFilter checks that the class can be used to select a partition.
// Only Express and Standard are partitions; Both is a tag, not a filter.
func (p PriorityClass) ValidateFilter() error {
	if p != Express && p != Standard {
		return errs.NewValueIsInvalidErrorWithCause(
			"priority filter is invalid", fmt.Errorf("%s is not a partition", p.String()))
	}
	return nil
}

// BelongsTo reports whether an order tagged p is listed in the partition named by filter.
//
// Rules:
//   - Express partition: tag is Express or Both
//   - Standard partition: tag is exactly Standard
//
// Example:
//
//	order.Both.BelongsTo(order.Express)  // true
//	order.Both.BelongsTo(order.Standard) // false
func (p PriorityClass) BelongsTo(filter PriorityClass) bool {
	switch filter {
	case Express:
		return p == Express || p == Both
	case Standard:
		return p == Standard
	default:
		return false
	}
}

// String returns the wire name of the class.
func (p PriorityClass) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}
