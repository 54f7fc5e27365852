package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used for classification with errors.Is.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrVersionIsInvalid  = errors.New("version is invalid")
	ErrStateIsInvalid    = errors.New("state is invalid")
)

// sanitize flattens a value into a single log-safe line.
func sanitize(value any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", value), "\n", " ")
}

// withCause appends the cause to a formatted message when one is present.
func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}
