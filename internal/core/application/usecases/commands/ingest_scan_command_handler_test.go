package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reconcile/internal/core/application/usecases/commands"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
)

func TestIngestScanCommandHandler_Handle_ScanCommitsLastLine(t *testing.T) {
	ctx := t.Context()
	aggregate, err := session.NewSession(kernel.NewUUID(), "SUB-01", session.WorkflowDispatch)
	require.NoError(t, err)
	aggregate.SetScanBuffer("GARBAGE111111111111")

	cmd, err := commands.NewIngestScanCommand(aggregate.ID(), "GARBAGE111111111111", false)
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		sessionRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewIngestScanCommandHandler(factory)
	codes, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []string{"111111111111"}, codes)
	assert.Equal(t, session.Scanning, aggregate.State())
	assert.Empty(t, aggregate.ScanBuffer())
}

func TestIngestScanCommandHandler_Handle_PasteCommitsEveryLine(t *testing.T) {
	ctx := t.Context()
	aggregate, err := session.NewSession(kernel.NewUUID(), "SUB-01", session.WorkflowDispatch)
	require.NoError(t, err)

	cmd, err := commands.NewIngestScanCommand(
		aggregate.ID(), "111111111111\n222222222222", true)
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		sessionRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewIngestScanCommandHandler(factory)
	codes, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []string{"111111111111", "222222222222"}, codes)
}

func TestIngestScanCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.IngestScanCommand

	factory := new(MockSessionUoWFactory)
	handler := commands.NewIngestScanCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrIngestScanCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
