package commands

import (
	"errors"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/guard"
)

var ErrSaveScanBufferCommandIsNotConstructed = errors.New(
	"SaveScanBufferCommand must be created via NewSaveScanBufferCommand constructor",
)

// SaveScanBufferCommand persists the in-progress scan buffer so a reload
// does not lose a half-typed line.
type SaveScanBufferCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	buffer    string

	guard guard.ConstructorGuard
}

// NewSaveScanBufferCommand creates a command to save the working buffer.
func NewSaveScanBufferCommand(sessionID kernel.UUID, buffer string) (SaveScanBufferCommand, error) {
	saveCommand := SaveScanBufferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := saveCommand.setSessionID(sessionID); err != nil {
		return SaveScanBufferCommand{}, err
	}

	saveCommand.buffer = buffer
	return saveCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveScanBufferCommand) Validate() error {
	return c.guard.Validate(ErrSaveScanBufferCommandIsNotConstructed)
}

// SessionID returns the session the buffer belongs to.
func (c SaveScanBufferCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Buffer returns the raw buffer text.
func (c SaveScanBufferCommand) Buffer() string {
	return c.buffer
}

func (c *SaveScanBufferCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
