package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reconcile/internal/core/application/usecases/commands"
	"reconcile/internal/core/domain/model/candidate"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/core/ports"
)

func newScanningSession(t *testing.T) *session.Session {
	t.Helper()

	s, err := session.NewSession(kernel.NewUUID(), "SUB-01", session.WorkflowDispatch)
	require.NoError(t, err)
	require.NoError(t, s.StartScanning())
	return s
}

func validResult(t *testing.T, code string) *candidate.PackageCandidate {
	t.Helper()

	tn, err := kernel.NewTrackingNumber(code)
	require.NoError(t, err)
	c, err := candidate.NewValidCandidate(tn, "ground", false, false, nil, nil)
	require.NoError(t, err)
	return c
}

func TestValidateCodesCommandHandler_Handle_ClassifiesBatch(t *testing.T) {
	ctx := t.Context()
	aggregate := newScanningSession(t)
	cmd, err := commands.NewValidateCodesCommand(
		aggregate.ID(),
		[]string{"111111111111", "222222222222", "bad-code"},
	)
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	validator := new(MockValidationService)
	metrics := new(MockMetricsRecorder)

	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		validator.On("Validate", ctx, "111111111111", "SUB-01").
			Return(validResult(t, "111111111111"), nil).
			Once(),
		validator.On("Validate", ctx, "222222222222", "SUB-01").
			Return(nil, errors.New("connection refused")).
			Once(),
		sessionRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	metrics.On("CandidateClassified", session.WorkflowDispatch, "Valid").Once()
	metrics.On("CandidateClassified", session.WorkflowDispatch, "Offline").Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	var progress []int
	observer := ports.BatchObserverFunc(func(percent int) {
		progress = append(progress, percent)
	})

	handler := commands.NewValidateCodesCommandHandler(factory, validator, observer, metrics)
	outcome, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.AddedValid)
	assert.Equal(t, 0, outcome.AddedInvalid)
	assert.Equal(t, 1, outcome.AddedOffline)
	assert.Equal(t, []string{"bad-code"}, outcome.RejectedFormat)
	assert.Equal(t, []int{50, 100}, progress)
	assert.Equal(t, session.Reviewing, aggregate.State())

	sessionRepo.AssertExpectations(t)
	validator.AssertExpectations(t)
	metrics.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestValidateCodesCommandHandler_Handle_ProgressIsMonotonic(t *testing.T) {
	ctx := t.Context()
	aggregate := newScanningSession(t)

	codes := []string{"100000000001", "100000000002", "100000000003"}
	cmd, err := commands.NewValidateCodesCommand(aggregate.ID(), codes)
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	validator := new(MockValidationService)
	metrics := new(MockMetricsRecorder)

	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	sessionRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	sessionRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	for _, code := range codes {
		validator.On("Validate", ctx, code, "SUB-01").Return(validResult(t, code), nil).Once()
	}
	metrics.On("CandidateClassified", session.WorkflowDispatch, "Valid").Times(3)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	var progress []int
	observer := ports.BatchObserverFunc(func(percent int) {
		progress = append(progress, percent)
	})

	handler := commands.NewValidateCodesCommandHandler(factory, validator, observer, metrics)
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []int{33, 67, 100}, progress)
}

func TestValidateCodesCommandHandler_Handle_SkipsDuplicatesWithoutRemoteCall(t *testing.T) {
	ctx := t.Context()
	aggregate := newScanningSession(t)

	_, err := aggregate.MergeCandidates(
		[]*candidate.PackageCandidate{validResult(t, "111111111111")})
	require.NoError(t, err)

	cmd, err := commands.NewValidateCodesCommand(
		aggregate.ID(),
		[]string{"111111111111", "222222222222"},
	)
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	validator := new(MockValidationService)
	metrics := new(MockMetricsRecorder)

	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	sessionRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	sessionRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	validator.On("Validate", ctx, "222222222222", "SUB-01").
		Return(validResult(t, "222222222222"), nil).
		Once()
	metrics.On("CandidateClassified", session.WorkflowDispatch, "Valid").Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	var progress []int
	observer := ports.BatchObserverFunc(func(percent int) {
		progress = append(progress, percent)
	})

	handler := commands.NewValidateCodesCommandHandler(factory, validator, observer, metrics)
	outcome, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Duplicates)
	assert.Equal(t, 1, outcome.AddedValid)
	assert.Equal(t, []int{50, 100}, progress)
	validator.AssertNotCalled(t, "Validate", ctx, "111111111111", "SUB-01")
}

func TestValidateCodesCommandHandler_Handle_EmptyBatchIsNoOp(t *testing.T) {
	ctx := t.Context()
	aggregate := newScanningSession(t)
	cmd, err := commands.NewValidateCodesCommand(aggregate.ID(), nil)
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewValidateCodesCommandHandler(
		factory, new(MockValidationService), ports.BatchObserverFunc(func(int) {}), new(MockMetricsRecorder))
	outcome, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, outcome.AddedValid)
	assert.Equal(t, session.Scanning, aggregate.State())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestValidateCodesCommandHandler_Handle_CancellationStopsBatchAndKeepsResults(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	aggregate := newScanningSession(t)
	codes := []string{"100000000001", "100000000002", "100000000003"}
	cmd, err := commands.NewValidateCodesCommand(aggregate.ID(), codes)
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	validator := new(MockValidationService)
	metrics := new(MockMetricsRecorder)

	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	sessionRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	sessionRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	// The operator cancels while the first code is in flight. That call
	// fails over to Offline; the rest of the queue is never sent.
	validator.On("Validate", ctx, "100000000001", "SUB-01").
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, errors.New("context canceled")).
		Once()
	metrics.On("CandidateClassified", session.WorkflowDispatch, "Offline").Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewValidateCodesCommandHandler(
		factory, validator, ports.BatchObserverFunc(func(int) {}), metrics)
	outcome, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.AddedOffline)
	assert.Zero(t, outcome.AddedValid)
	assert.Equal(t, session.Reviewing, aggregate.State())
	validator.AssertNumberOfCalls(t, "Validate", 1)
	validator.AssertNotCalled(t, "Validate", ctx, "100000000002", "SUB-01")
	uow.AssertExpectations(t)
	sessionRepo.AssertExpectations(t)
}

func TestValidateCodesCommandHandler_Handle_GetSessionError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewValidateCodesCommand(kernel.NewUUID(), []string{"111111111111"})
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", mock.Anything, cmd.SessionID()).Return(nil, errors.New("database error")).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewValidateCodesCommandHandler(
		factory, new(MockValidationService), ports.BatchObserverFunc(func(int) {}), new(MockMetricsRecorder))
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "database error")
}
