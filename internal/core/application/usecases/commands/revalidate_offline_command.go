package commands

import (
	"errors"

	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/pkg/guard"
)

var ErrRevalidateOfflineCommandIsNotConstructed = errors.New(
	"RevalidateOfflineCommand must be created via NewRevalidateOfflineCommand constructor",
)

// RevalidateOfflineCommand requests one revalidation pass over the Offline
// candidates of a workflow's active session. Fired by the connectivity job
// when the validation authority becomes reachable again, which is why it is
// keyed by workflow rather than session identifier.
type RevalidateOfflineCommand struct { //nolint:recvcheck //using for validation
	workflow session.Workflow

	guard guard.ConstructorGuard
}

// NewRevalidateOfflineCommand creates a command for one revalidation pass.
func NewRevalidateOfflineCommand(workflow session.Workflow) (RevalidateOfflineCommand, error) {
	revalidateCommand := RevalidateOfflineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := workflow.Validate(); err != nil {
		return RevalidateOfflineCommand{}, err
	}

	revalidateCommand.workflow = workflow
	return revalidateCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RevalidateOfflineCommand) Validate() error {
	return c.guard.Validate(ErrRevalidateOfflineCommandIsNotConstructed)
}

// Workflow returns the workflow whose active session is revalidated.
func (c RevalidateOfflineCommand) Workflow() session.Workflow {
	return c.workflow
}
