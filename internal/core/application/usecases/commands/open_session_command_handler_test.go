package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reconcile/internal/core/application/usecases/commands"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/pkg/errs"
)

func TestOpenSessionCommandHandler_Handle_CreatesNewSession(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	cmd, err := commands.NewOpenSessionCommand(sessionID, "SUB-01", session.WorkflowDispatch)
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("GetActive", ctx, session.WorkflowDispatch).
			Return(nil, errs.ErrObjectNotFound).
			Once(),
		sessionRepo.On("Add", ctx, mock.AnythingOfType("*session.Session")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewOpenSessionCommandHandler(factory)
	opened, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, sessionID, opened.ID())
	assert.Equal(t, session.Idle, opened.State())
	sessionRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestOpenSessionCommandHandler_Handle_ResumesActiveSession(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewOpenSessionCommand(kernel.NewUUID(), "SUB-01", session.WorkflowDispatch)
	require.NoError(t, err)

	existingID := kernel.NewUUID()
	existing, err := session.NewSession(existingID, "SUB-01", session.WorkflowDispatch)
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("GetActive", ctx, session.WorkflowDispatch).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewOpenSessionCommandHandler(factory)
	opened, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, existingID, opened.ID())
	sessionRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	sessionRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestOpenSessionCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.OpenSessionCommand

	factory := new(MockSessionUoWFactory)
	handler := commands.NewOpenSessionCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOpenSessionCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestOpenSessionCommandHandler_Handle_GetActiveError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewOpenSessionCommand(kernel.NewUUID(), "SUB-01", session.WorkflowDispatch)
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("GetActive", ctx, session.WorkflowDispatch).
			Return(nil, errors.New("database error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewOpenSessionCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "database error")
}
