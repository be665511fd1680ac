package kernel

import (
	"regexp"
	"strings"

	"reconcile/internal/pkg/errs"
)

// TrackingNumberLength is the exact length of a dispatchable shipment code.
// Barcode scanners commonly prefix garbage before the meaningful suffix, so
// extraction keeps only the last TrackingNumberLength characters of a line.
const TrackingNumberLength = 12

// ErrTrackingNumberIsNotConstructed indicates that a TrackingNumber was not
// created through NewTrackingNumber.
var ErrTrackingNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingNumber must be created via NewTrackingNumber",
)

// trackingNumberPattern is the strict format gate applied before a code is
// ever sent to the remote validation authority. Codes failing it are
// rejected locally as format errors.
var trackingNumberPattern = regexp.MustCompile(`^\d{12}$`)

// TrackingNumber is a value object that represents a shipment identifier
// code as captured from scanner or paste input. Identity is the code string
// itself; candidates are deduplicated by comparing tracking numbers as
// case-sensitive strings.
//
// A TrackingNumber may carry any non-empty captured code, including ones
// that fail the 12-digit format; IsWellFormed reports whether the code may
// be submitted for remote validation.
type TrackingNumber struct {
	value string
}

// NewTrackingNumber creates a TrackingNumber from a captured code.
// The code is trimmed; an empty result is rejected. Format validation is
// deliberately not performed here: the format gate belongs to batch
// validation, which partitions well-formed from malformed codes.
func NewTrackingNumber(raw string) (TrackingNumber, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return TrackingNumber{}, errs.NewValueIsRequiredError("trackingNumber")
	}

	return TrackingNumber{value: value}, nil
}

// String returns the code string.
func (t TrackingNumber) String() string {
	return t.value
}

// IsWellFormed reports whether the code matches the strict 12-digit format
// required for remote validation.
func (t TrackingNumber) IsWellFormed() bool {
	return trackingNumberPattern.MatchString(t.value)
}

// IsEqual compares two tracking numbers as case-sensitive strings.
func (t TrackingNumber) IsEqual(other TrackingNumber) bool {
	return t.value == other.value
}

// Validate checks if the TrackingNumber is properly constructed.
// Returns ErrTrackingNumberIsNotConstructed for the zero value.
func (t TrackingNumber) Validate() error {
	if t.value == "" {
		return ErrTrackingNumberIsNotConstructed
	}
	return nil
}
