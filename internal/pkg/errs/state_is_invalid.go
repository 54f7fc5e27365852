package errs

import "fmt"

// StateIsInvalidError reports an operation aimed at an object whose current
// lifecycle state does not allow it, for example completing a disabled subtask.
type StateIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewStateIsInvalidError creates a StateIsInvalidError without a cause.
func NewStateIsInvalidError(paramName string) *StateIsInvalidError {
	return &StateIsInvalidError{ParamName: paramName}
}

// NewStateIsInvalidErrorWithCause creates a StateIsInvalidError describing the offending state.
func NewStateIsInvalidErrorWithCause(paramName string, cause error) *StateIsInvalidError {
	return &StateIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *StateIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrStateIsInvalid, e.ParamName), e.Cause)
}

func (e *StateIsInvalidError) Unwrap() error {
	return ErrStateIsInvalid
}
