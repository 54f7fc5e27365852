package order

import (
	"fmt"

	"washroute/internal/pkg/errs"
)

// SubtaskStatus is the lifecycle state of a single subtask.
//
// State transitions:
//
//	SubtaskPending ──> SubtaskCompleted
//
// The transition is one-way; a completed subtask never returns to pending.
type SubtaskStatus int

const (
	// SubtaskUnknown represents an uninitialized status.
	SubtaskUnknown SubtaskStatus = iota
	// SubtaskPending is the initial status of every subtask.
	SubtaskPending
	// SubtaskCompleted is the final status.
	SubtaskCompleted
)

func getSubtaskStatusStrings() map[SubtaskStatus]string {
	return map[SubtaskStatus]string{
		SubtaskUnknown:   "unknown",
		SubtaskPending:   "pending",
		SubtaskCompleted: "completed",
	}
}

// ParseSubtaskStatus converts a wire name into a SubtaskStatus.
//
// Returns:
//   - SubtaskStatus: the parsed status
//   - error: ValueIsInvalidError for anything other than "pending" or "completed"
func ParseSubtaskStatus(s string) (SubtaskStatus, error) {
	for status, name := range getSubtaskStatusStrings() {
		if name == s && status != SubtaskUnknown {
			return status, nil
		}
	}
	return SubtaskUnknown, errs.NewValueIsInvalidErrorWithCause(
		"subtask status is invalid", fmt.Errorf("%q is not a valid subtask status", s))
}

// Validate checks that the status is SubtaskPending or SubtaskCompleted.
func (s SubtaskStatus) Validate() error {
	if s != SubtaskPending && s != SubtaskCompleted {
		return errs.NewValueIsInvalidErrorWithCause(
			"subtask status is invalid", fmt.Errorf("%d is not a valid subtask status", s))
	}
	return nil
}

// String returns the wire name of the status.
func (s SubtaskStatus) String() string {
	if str, ok := getSubtaskStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Complete transitions the status to SubtaskCompleted.
//
// Valid transitions:
//   - SubtaskPending -> SubtaskCompleted
//
// Returns:
//   - (SubtaskCompleted, nil) on valid transition
//   - (0, StateIsInvalidError) if the subtask is already completed or the status is invalid
func (s SubtaskStatus) Complete() (SubtaskStatus, error) {
	if s != SubtaskPending {
		return 0, errs.NewStateIsInvalidErrorWithCause(
			"subtask status",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
	return SubtaskCompleted, nil
}
