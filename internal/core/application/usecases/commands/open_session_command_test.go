package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconcile/internal/core/application/usecases/commands"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
)

func TestNewOpenSessionCommand(t *testing.T) {
	sessionID := kernel.NewUUID()

	cmd, err := commands.NewOpenSessionCommand(sessionID, "SUB-01", session.WorkflowDispatch)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, sessionID, cmd.SessionID())
	assert.Equal(t, "SUB-01", cmd.SubsidiaryID())
	assert.Equal(t, session.WorkflowDispatch, cmd.Workflow())
}

func TestNewOpenSessionCommand_Invalid(t *testing.T) {
	_, err := commands.NewOpenSessionCommand(kernel.UUID{}, "SUB-01", session.WorkflowDispatch)
	require.Error(t, err)

	_, err = commands.NewOpenSessionCommand(kernel.NewUUID(), "", session.WorkflowDispatch)
	require.Error(t, err)

	_, err = commands.NewOpenSessionCommand(kernel.NewUUID(), "SUB-01", session.Workflow(99))
	require.Error(t, err)
}

func TestOpenSessionCommand_NotConstructed(t *testing.T) {
	var cmd commands.OpenSessionCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrOpenSessionCommandIsNotConstructed)
}
