package commands

import (
	"errors"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/guard"
)

var ErrFinalizeSessionCommandIsNotConstructed = errors.New(
	"FinalizeSessionCommand must be created via NewFinalizeSessionCommand constructor",
)

// FinalizeSessionCommand represents a request to submit a reviewed session
// to the dispatch authority.
//
// Example:
//
//	cmd, err := NewFinalizeSessionCommand(sessionID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewFinalizeSessionCommandHandler(uowFactory, dispatcher, metrics)
//	record, err := handler.Handle(ctx, cmd)
//	var blocked *services.FinalizationBlockedError
//	if errors.As(err, &blocked) {
//	    // show blocked.Missing to the operator
//	}
type FinalizeSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFinalizeSessionCommand creates a command to finalize a session.
func NewFinalizeSessionCommand(sessionID kernel.UUID) (FinalizeSessionCommand, error) {
	finalizeCommand := FinalizeSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := finalizeCommand.setSessionID(sessionID); err != nil {
		return FinalizeSessionCommand{}, err
	}

	return finalizeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeSessionCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeSessionCommandIsNotConstructed)
}

// SessionID returns the session to finalize.
func (c FinalizeSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *FinalizeSessionCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
