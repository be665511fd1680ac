package commands

import (
	"errors"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/errs"
	"reconcile/internal/pkg/guard"
)

var ErrUpdateCandidateCommandIsNotConstructed = errors.New(
	"UpdateCandidateCommand must be created via NewUpdateCandidateCommand constructor",
)

// UpdateCandidateCommand applies an operator edit to an existing candidate.
// Only the operator-editable fields (reason and priority) can be patched; at
// least one of them must be present. Edits never create new identities.
type UpdateCandidateCommand struct { //nolint:recvcheck //using for validation
	sessionID      kernel.UUID
	trackingNumber kernel.TrackingNumber
	reason         *string
	priority       *string

	guard guard.ConstructorGuard
}

// NewUpdateCandidateCommand creates a command to patch a candidate. Nil
// fields are left untouched.
func NewUpdateCandidateCommand(
	sessionID kernel.UUID,
	trackingNumber kernel.TrackingNumber,
	reason *string,
	priority *string,
) (UpdateCandidateCommand, error) {
	updateCommand := UpdateCandidateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		updateCommand.setSessionID(sessionID),
		updateCommand.setTrackingNumber(trackingNumber),
	); err != nil {
		return UpdateCandidateCommand{}, err
	}

	if reason == nil && priority == nil {
		return UpdateCandidateCommand{}, errs.NewValueIsRequiredError("reason or priority")
	}

	updateCommand.reason = reason
	updateCommand.priority = priority
	return updateCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCandidateCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCandidateCommandIsNotConstructed)
}

// SessionID returns the session to update.
func (c UpdateCandidateCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// TrackingNumber returns the candidate identity to patch.
func (c UpdateCandidateCommand) TrackingNumber() kernel.TrackingNumber {
	return c.trackingNumber
}

// Reason returns the new reason, or nil to keep the current one.
func (c UpdateCandidateCommand) Reason() *string {
	return c.reason
}

// Priority returns the new priority, or nil to keep the current one.
func (c UpdateCandidateCommand) Priority() *string {
	return c.priority
}

func (c *UpdateCandidateCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *UpdateCandidateCommand) setTrackingNumber(trackingNumber kernel.TrackingNumber) error {
	if err := trackingNumber.Validate(); err != nil {
		return err
	}

	c.trackingNumber = trackingNumber
	return nil
}
