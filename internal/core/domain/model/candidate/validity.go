package candidate

import (
	"fmt"

	"reconcile/internal/pkg/errs"
)

// Validity represents the classification of a scanned code after batch
// validation. It is a closed variant: every candidate is exactly one of
// Valid, Invalid, or Offline, and only Offline candidates may be
// reclassified (once per connectivity-restoration event).
//
// Classification transitions:
//
//	Valid     (terminal)
//	Invalid   (terminal, reason carried)
//	Offline ──> Valid | Invalid   (single revalidation attempt)
//	Offline ──> Offline           (attempt failed, stays pending)
type Validity int

const (
	// Unknown represents an invalid or undefined classification.
	// This value (0) helps catch uninitialized Validity values.
	Unknown Validity = iota

	// Valid marks a candidate accepted by the validation authority.
	// Only Valid candidates enter the dispatch packet at finalization.
	Valid

	// Invalid marks a candidate rejected by the validation authority.
	// Invalid candidates stay visible in the session for operator review
	// but are excluded from the dispatch packet.
	Invalid

	// Offline marks a candidate whose remote validation failed for
	// transient reasons (network, timeout). Offline candidates always
	// carry a reason and are revalidated exactly once per
	// connectivity-restoration event.
	Offline
)

func getValidityStrings() map[Validity]string {
	return map[Validity]string{
		Unknown: "Unknown",
		Valid:   "Valid",
		Invalid: "Invalid",
		Offline: "Offline",
	}
}

func getValidValidityStrings() map[Validity]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Validity]string{
		Valid:   "Valid",
		Invalid: "Invalid",
		Offline: "Offline",
	}
}

// Validate checks if the Validity value is valid.
// Valid classifications are: Valid, Invalid, Offline.
func (v Validity) Validate() error {
	if _, ok := getValidValidityStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("validity",
			fmt.Errorf("%d is not a valid classification", v))
	}
	return nil
}

// String returns the human-readable name of the classification.
// Implements fmt.Stringer and is safe to call on any value.
func (v Validity) String() string {
	if str, ok := getValidityStrings()[v]; ok {
		return str
	}
	return "Unknown"
}

// RequiresReason reports whether candidates with this classification must
// carry a human-readable reason. Invalid and Offline candidates always do.
func (v Validity) RequiresReason() bool {
	return v == Invalid || v == Offline
}

// CanReclassify reports whether a candidate with this classification may be
// reclassified in place. Only Offline candidates are pending; Valid and
// Invalid are terminal.
func (v Validity) CanReclassify() bool {
	return v == Offline
}
