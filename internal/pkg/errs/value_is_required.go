package errs

import (
	"errors"
	"fmt"
)

// ErrValueIsRequired is the sentinel error for missing required values.
// Use errors.Is against it to classify ValueIsRequiredError instances.
var ErrValueIsRequired = errors.New("value is required")

// ValueIsRequiredError indicates that a required parameter was not provided.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing required parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates an error for a missing required
// parameter, carrying the underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

// Error formats the error message, including the cause when present.
func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

// Unwrap returns the sentinel so errors.Is(err, ErrValueIsRequired) holds.
func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}
