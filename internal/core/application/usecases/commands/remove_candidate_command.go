package commands

import (
	"errors"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/guard"
)

var ErrRemoveCandidateCommandIsNotConstructed = errors.New(
	"RemoveCandidateCommand must be created via NewRemoveCandidateCommand constructor",
)

// RemoveCandidateCommand deletes a candidate from the session by tracking
// number. Removing an unknown code is a no-op, not an error.
type RemoveCandidateCommand struct { //nolint:recvcheck //using for validation
	sessionID      kernel.UUID
	trackingNumber kernel.TrackingNumber

	guard guard.ConstructorGuard
}

// NewRemoveCandidateCommand creates a command to remove a candidate.
func NewRemoveCandidateCommand(
	sessionID kernel.UUID,
	trackingNumber kernel.TrackingNumber,
) (RemoveCandidateCommand, error) {
	removeCommand := RemoveCandidateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		removeCommand.setSessionID(sessionID),
		removeCommand.setTrackingNumber(trackingNumber),
	); err != nil {
		return RemoveCandidateCommand{}, err
	}

	return removeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCandidateCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCandidateCommandIsNotConstructed)
}

// SessionID returns the session to update.
func (c RemoveCandidateCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// TrackingNumber returns the candidate identity to remove.
func (c RemoveCandidateCommand) TrackingNumber() kernel.TrackingNumber {
	return c.trackingNumber
}

func (c *RemoveCandidateCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *RemoveCandidateCommand) setTrackingNumber(trackingNumber kernel.TrackingNumber) error {
	if err := trackingNumber.Validate(); err != nil {
		return err
	}

	c.trackingNumber = trackingNumber
	return nil
}
