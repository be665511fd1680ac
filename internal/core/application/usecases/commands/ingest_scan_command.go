package commands

import (
	"errors"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/services"
	"reconcile/internal/pkg/guard"
)

var ErrIngestScanCommandIsNotConstructed = errors.New(
	"IngestScanCommand must be created via NewIngestScanCommand constructor",
)

// IngestScanCommand represents a committed input buffer from the scanner or
// the clipboard. The paste flag is consumed here and never carried further.
type IngestScanCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	text      string
	wasPasted bool

	guard guard.ConstructorGuard
}

// NewIngestScanCommand creates a command to extract candidate codes from a
// committed buffer. An empty buffer is allowed and yields no codes.
func NewIngestScanCommand(sessionID kernel.UUID, text string, wasPasted bool) (IngestScanCommand, error) {
	ingestCommand := IngestScanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := ingestCommand.setSessionID(sessionID); err != nil {
		return IngestScanCommand{}, err
	}

	ingestCommand.text = text
	ingestCommand.wasPasted = wasPasted
	return ingestCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c IngestScanCommand) Validate() error {
	return c.guard.Validate(ErrIngestScanCommandIsNotConstructed)
}

// SessionID returns the session the buffer belongs to.
func (c IngestScanCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Text returns the raw buffer text.
func (c IngestScanCommand) Text() string {
	return c.text
}

// Source returns the input source derived from the paste flag.
func (c IngestScanCommand) Source() services.ScanSource {
	if c.wasPasted {
		return services.SourcePaste
	}
	return services.SourceScan
}

func (c *IngestScanCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
