package order

import (
	"fmt"

	"washroute/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It is never set directly: an order derives it from the statuses of its subtasks.
//
// State transitions:
//
//	Pending ──> InProgress ──> Completed
//	   │                           ▲
//	   └───────────────────────────┘
//	     (single-subtask orders)
//
// Status is a value object that validates itself and provides string
// representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending means none of the order's subtasks has been completed yet.
	Pending

	// InProgress means at least one subtask is completed and at least one remains.
	InProgress

	// Completed means every subtask of the order is completed.
	// This is a final state: the order leaves the active collection.
	Completed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		InProgress: "in-progress",
		Completed:  "completed",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, InProgress, Completed.
// Unknown (0) and any other values are invalid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
func (s Status) Validate() error {
	if s != Pending && s != InProgress && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("pending", "in-progress", "completed").
// Invalid values render as "unknown".
//
// Example:
//
//	fmt.Println(o.Status()) // Output: "in-progress"
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// deriveStatus computes the order status from its subtasks.
//
// Rules:
//   - Completed iff every subtask is completed
//   - InProgress iff at least one is completed and at least one remains
//   - Pending otherwise
func deriveStatus(subtasks []*Subtask) Status {
	completed := 0
	for _, st := range subtasks {
		if st.status == SubtaskCompleted {
			completed++
		}
	}

	switch {
	case completed == 0:
		return Pending
	case completed == len(subtasks):
		return Completed
	default:
		return InProgress
	}
}
