package commands

import (
	"errors"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/guard"
)

var ErrResetSessionCommandIsNotConstructed = errors.New(
	"ResetSessionCommand must be created via NewResetSessionCommand constructor",
)

// ResetSessionCommand represents an explicit operator reset: the session is
// cancelled and cleared from durable storage, discarding every scanned
// candidate.
type ResetSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResetSessionCommand creates a command to reset a session.
func NewResetSessionCommand(sessionID kernel.UUID) (ResetSessionCommand, error) {
	resetCommand := ResetSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := resetCommand.setSessionID(sessionID); err != nil {
		return ResetSessionCommand{}, err
	}

	return resetCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ResetSessionCommand) Validate() error {
	return c.guard.Validate(ErrResetSessionCommandIsNotConstructed)
}

// SessionID returns the session to reset.
func (c ResetSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *ResetSessionCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
