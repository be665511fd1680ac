package commands

import (
	"errors"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/guard"
)

var ErrValidateCodesCommandIsNotConstructed = errors.New(
	"ValidateCodesCommand must be created via NewValidateCodesCommand constructor",
)

// ValidateCodesCommand represents a request to classify a batch of candidate
// codes against the validation authority.
//
// Example:
//
//	cmd, err := NewValidateCodesCommand(sessionID, []string{"111111111111", "bad-code"})
//	if err != nil {
//	    return err
//	}
//
//	handler := NewValidateCodesCommandHandler(uowFactory, validator, observer, metrics)
//	outcome, err := handler.Handle(ctx, cmd)
//	// outcome.AddedValid == 1, outcome.RejectedFormat == []string{"bad-code"}
type ValidateCodesCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	codes     []string

	guard guard.ConstructorGuard
}

// NewValidateCodesCommand creates a command to validate candidate codes.
// The batch may be empty; an empty batch is a no-op.
func NewValidateCodesCommand(sessionID kernel.UUID, codes []string) (ValidateCodesCommand, error) {
	validateCommand := ValidateCodesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := validateCommand.setSessionID(sessionID); err != nil {
		return ValidateCodesCommand{}, err
	}

	validateCommand.codes = append([]string(nil), codes...)
	return validateCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ValidateCodesCommand) Validate() error {
	return c.guard.Validate(ErrValidateCodesCommandIsNotConstructed)
}

// SessionID returns the session the batch belongs to.
func (c ValidateCodesCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Codes returns the candidate codes in scan order.
func (c ValidateCodesCommand) Codes() []string {
	return append([]string(nil), c.codes...)
}

func (c *ValidateCodesCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
