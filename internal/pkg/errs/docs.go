// Package errs provides standardized error types for the reconciliation
// service. It implements a consistent pattern for error creation, formatting,
// and unwrapping that is used throughout the application.
//
// The package includes error types for the common failure scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value fails validation
//   - ValueIsOutOfRangeError: a numeric value is outside its allowed range
//   - ObjectNotFoundError: an object cannot be found in storage
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type carrying the error details
//   - Constructor functions with and without a cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// Domain-specific structured errors (finalization blockers, submission
// rejections) live next to the code that raises them but follow the same
// Error/Unwrap shape.
package errs
