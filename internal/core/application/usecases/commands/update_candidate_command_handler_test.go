package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reconcile/internal/core/application/usecases/commands"
	"reconcile/internal/core/domain/model/candidate"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/pkg/errs"
)

func TestUpdateCandidateCommandHandler_Handle_PatchesReason(t *testing.T) {
	ctx := t.Context()
	aggregate, err := session.NewSession(kernel.NewUUID(), "SUB-01", session.WorkflowDevolution)
	require.NoError(t, err)
	require.NoError(t, aggregate.StartScanning())

	tn, err := kernel.NewTrackingNumber("111111111111")
	require.NoError(t, err)
	invalid, err := candidate.NewInvalidCandidate(tn, "unknown destination")
	require.NoError(t, err)
	_, err = aggregate.MergeCandidates([]*candidate.PackageCandidate{invalid})
	require.NoError(t, err)

	reason := "refused by recipient"
	cmd, err := commands.NewUpdateCandidateCommand(aggregate.ID(), tn, &reason, nil)
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

	handler := commands.NewUpdateCandidateCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	patched, ok := aggregate.Candidates().Find(tn)
	require.True(t, ok)
	assert.Equal(t, "refused by recipient", patched.Reason())
}

func TestUpdateCandidateCommandHandler_Handle_UnknownTrackingNumber(t *testing.T) {
	ctx := t.Context()
	aggregate, err := session.NewSession(kernel.NewUUID(), "SUB-01", session.WorkflowDevolution)
	require.NoError(t, err)

	tn, err := kernel.NewTrackingNumber("999999999999")
	require.NoError(t, err)

	reason := "refused by recipient"
	cmd, err := commands.NewUpdateCandidateCommand(aggregate.ID(), tn, &reason, nil)
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateCandidateCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestNewUpdateCandidateCommand_RequiresPatch(t *testing.T) {
	tn, err := kernel.NewTrackingNumber("111111111111")
	require.NoError(t, err)

	_, err = commands.NewUpdateCandidateCommand(kernel.NewUUID(), tn, nil, nil)
	require.Error(t, err)
}
