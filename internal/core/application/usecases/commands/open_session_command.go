package commands

import (
	"errors"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/pkg/errs"
	"reconcile/internal/pkg/guard"
)

var ErrOpenSessionCommandIsNotConstructed = errors.New(
	"OpenSessionCommand must be created via NewOpenSessionCommand constructor",
)

// OpenSessionCommand represents a request to open the capture workflow for a
// subsidiary. If an unfinished session already exists for the workflow it is
// resumed; otherwise a new one is created with the given identifier.
//
// Example:
//
//	cmd, err := NewOpenSessionCommand(kernel.NewUUID(), "SUB-01", session.WorkflowDispatch)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewOpenSessionCommandHandler(uowFactory)
//	sess, err := handler.Handle(ctx, cmd)
type OpenSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID    kernel.UUID
	subsidiaryID string
	workflow     session.Workflow

	guard guard.ConstructorGuard
}

// NewOpenSessionCommand creates a command to open a reconciliation session.
// Validates that the session ID and workflow are valid and that the
// subsidiary is set.
func NewOpenSessionCommand(
	sessionID kernel.UUID,
	subsidiaryID string,
	workflow session.Workflow,
) (OpenSessionCommand, error) {
	openCommand := OpenSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		openCommand.setSessionID(sessionID),
		openCommand.setSubsidiaryID(subsidiaryID),
		openCommand.setWorkflow(workflow),
	); err != nil {
		return OpenSessionCommand{}, err
	}

	return openCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenSessionCommand) Validate() error {
	return c.guard.Validate(ErrOpenSessionCommandIsNotConstructed)
}

// SessionID returns the identifier for the session to create.
func (c OpenSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// SubsidiaryID returns the subsidiary the session belongs to.
func (c OpenSessionCommand) SubsidiaryID() string {
	return c.subsidiaryID
}

// Workflow returns the workflow the session drives.
func (c OpenSessionCommand) Workflow() session.Workflow {
	return c.workflow
}

func (c *OpenSessionCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *OpenSessionCommand) setSubsidiaryID(subsidiaryID string) error {
	if subsidiaryID == "" {
		return errs.NewValueIsRequiredError("subsidiaryID")
	}

	c.subsidiaryID = subsidiaryID
	return nil
}

func (c *OpenSessionCommand) setWorkflow(workflow session.Workflow) error {
	if err := workflow.Validate(); err != nil {
		return err
	}

	c.workflow = workflow
	return nil
}
