package commands_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reconcile/internal/core/application/usecases/commands"
	"reconcile/internal/core/domain/model/candidate"
	"reconcile/internal/core/domain/model/dispatch"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/core/ports"
)

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Add(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionRepository) GetActive(
	ctx context.Context,
	workflow session.Workflow,
) (*session.Session, error) {
	args := m.Called(ctx, workflow)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDispatchRepository struct{ mock.Mock }

func (m *MockDispatchRepository) Add(ctx context.Context, record *dispatch.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDispatchRepository) GetBySession(
	ctx context.Context,
	sessionID kernel.UUID,
) (*dispatch.Record, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispatch.Record), args.Error(1)
}

type MockSessionUoW struct{ mock.Mock }

func (m *MockSessionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}

type MockSessionUoWFactory struct{ mock.Mock }

func (m *MockSessionUoWFactory) Create() commands.SessionUoW {
	args := m.Called()
	return args.Get(0).(commands.SessionUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}

func (m *MockUoW) DispatchRepository() ports.DispatchRepository {
	args := m.Called()
	return args.Get(0).(ports.DispatchRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockValidationService struct{ mock.Mock }

func (m *MockValidationService) Validate(
	ctx context.Context,
	code string,
	subsidiaryID string,
) (*candidate.PackageCandidate, error) {
	args := m.Called(ctx, code, subsidiaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*candidate.PackageCandidate), args.Error(1)
}

type MockDispatchService struct{ mock.Mock }

func (m *MockDispatchService) Submit(ctx context.Context, packet *dispatch.Packet) (string, error) {
	args := m.Called(ctx, packet)
	return args.String(0), args.Error(1)
}

type MockMetricsRecorder struct{ mock.Mock }

func (m *MockMetricsRecorder) CandidateClassified(workflow session.Workflow, validity string) {
	m.Called(workflow, validity)
}

func (m *MockMetricsRecorder) SessionFinalized(workflow session.Workflow, packageCount int) {
	m.Called(workflow, packageCount)
}

type MockSessionNotifier struct{ mock.Mock }

func (m *MockSessionNotifier) SessionChanged(ctx context.Context, s *session.Session) {
	m.Called(ctx, s)
}
