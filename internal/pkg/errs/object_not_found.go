package errs

import (
	"errors"
	"fmt"
)

// ErrObjectNotFound is the sentinel error for lookups that found nothing.
var ErrObjectNotFound = errors.New("object not found")

// ObjectNotFoundError indicates that an object could not be located by its
// identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an error for a failed object lookup.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an error for a failed object
// lookup, carrying the underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

// Error formats the error message. The short form carries only the ID; the
// form with a cause also names the parameter for diagnosis.
func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

// Unwrap returns the sentinel so errors.Is(err, ErrObjectNotFound) holds.
func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}
