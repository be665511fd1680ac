package commands

import (
	"errors"

	"reconcile/internal/core/domain/model/crew"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/guard"
)

var ErrSetCrewCommandIsNotConstructed = errors.New(
	"SetCrewCommand must be created via NewSetCrewCommand constructor",
)

// SetCrewCommand replaces the session's crew selection. Partial selections
// are allowed; completeness is only enforced at finalization.
type SetCrewCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	selection crew.Selection

	guard guard.ConstructorGuard
}

// NewSetCrewCommand creates a command to set the crew selection.
func NewSetCrewCommand(sessionID kernel.UUID, selection crew.Selection) (SetCrewCommand, error) {
	setCommand := SetCrewCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := setCommand.setSessionID(sessionID); err != nil {
		return SetCrewCommand{}, err
	}

	setCommand.selection = selection
	return setCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCrewCommand) Validate() error {
	return c.guard.Validate(ErrSetCrewCommandIsNotConstructed)
}

// SessionID returns the session to update.
func (c SetCrewCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Selection returns the crew selection to apply.
func (c SetCrewCommand) Selection() crew.Selection {
	return c.selection
}

func (c *SetCrewCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
