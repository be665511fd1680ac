package session

import (
	"fmt"

	"reconcile/internal/pkg/errs"
)

// State represents the lifecycle state of a reconciliation session.
// It implements a state machine with defined transitions so sessions follow
// the capture workflow strictly; see the package documentation for the
// transition diagram.
//
// State is a value object that validates transitions and provides string
// representations for persistence and display.
type State int

const (
	// StateUnknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	StateUnknown State = iota

	// Idle is the initial state when the capture workflow opens and no
	// code has been committed yet.
	Idle

	// Scanning indicates the operator is actively capturing codes.
	Scanning

	// Validating indicates a batch is being validated against the remote
	// authority. Entered on every batch submission; always returns to
	// Reviewing, success or partial failure.
	Validating

	// Reviewing indicates the operator is inspecting classified
	// candidates and filling crew metadata. The only state from which the
	// session can be finalized, resumed for more scanning, or cancelled.
	Reviewing

	// Finalizing indicates the assembled packet has been handed to the
	// dispatch authority and the session awaits its verdict.
	Finalizing

	// Completed indicates confirmed remote acceptance. Final state; the
	// session is cleared from durable storage on entry.
	Completed

	// Cancelled indicates an explicit operator reset. Final state; the
	// session is cleared from durable storage on entry.
	Cancelled
)

func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown: "Unknown",
		Idle:         "Idle",
		Scanning:     "Scanning",
		Validating:   "Validating",
		Reviewing:    "Reviewing",
		Finalizing:   "Finalizing",
		Completed:    "Completed",
		Cancelled:    "Cancelled",
	}
}

func getValidStateStrings() map[State]string {
	//nolint:exhaustive // StateUnknown is intentionally excluded as it's invalid
	return map[State]string{
		Idle:       "Idle",
		Scanning:   "Scanning",
		Validating: "Validating",
		Reviewing:  "Reviewing",
		Finalizing: "Finalizing",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// Validate checks if the State value is valid.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state",
			fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the human-readable name of the state.
// Implements fmt.Stringer and is safe to call on any value.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StartScanning transitions to Scanning.
//
// Valid transitions:
//   - Idle -> Scanning (first code committed)
//   - Scanning -> Scanning (capture continues)
//   - Reviewing -> Scanning (operator adds more codes)
func (s State) StartScanning() (State, error) {
	if s != Idle && s != Scanning && s != Reviewing {
		return 0, invalidTransition(s, "start scanning")
	}
	return Scanning, nil
}

// BeginValidation transitions to Validating. Entered on every batch
// submission, only from Scanning.
func (s State) BeginValidation() (State, error) {
	if s != Scanning {
		return 0, invalidTransition(s, "begin validation")
	}
	return Validating, nil
}

// FinishValidation transitions Validating to Reviewing. This is the only
// exit from Validating: batch validation never fails as a whole and never
// jumps to Completed.
func (s State) FinishValidation() (State, error) {
	if s != Validating {
		return 0, invalidTransition(s, "finish validation")
	}
	return Reviewing, nil
}

// BeginFinalization transitions Reviewing to Finalizing.
func (s State) BeginFinalization() (State, error) {
	if s != Reviewing {
		return 0, invalidTransition(s, "begin finalization")
	}
	return Finalizing, nil
}

// Complete transitions Finalizing to Completed, on confirmed remote
// acceptance only.
func (s State) Complete() (State, error) {
	if s != Finalizing {
		return 0, invalidTransition(s, "complete")
	}
	return Completed, nil
}

// ReturnToReview transitions Finalizing back to Reviewing after the dispatch
// authority rejects the packet. Session state is preserved so the operator
// can correct and resubmit.
func (s State) ReturnToReview() (State, error) {
	if s != Finalizing {
		return 0, invalidTransition(s, "return to review")
	}
	return Reviewing, nil
}

// Cancel transitions to Cancelled on explicit operator reset. Allowed from
// Idle and Scanning as well as Reviewing, so an operator can abandon a
// session that never reached a batch; never allowed while a batch or a
// submission is in flight.
func (s State) Cancel() (State, error) {
	if s != Idle && s != Scanning && s != Reviewing {
		return 0, invalidTransition(s, "cancel")
	}
	return Cancelled, nil
}

func invalidTransition(s State, action string) error {
	return errs.NewValueIsInvalidErrorWithCause("state",
		fmt.Errorf("%s is not a valid state to %s", s.String(), action))
}
