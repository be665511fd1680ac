package dispatchrepo_test

import (
	"context"
	"testing"
	"time"

	"reconcile/internal/adapters/out/postgres/dispatchrepo"
	"reconcile/internal/core/domain/model/candidate"
	"reconcile/internal/core/domain/model/crew"
	"reconcile/internal/core/domain/model/dispatch"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// DispatchRepositoryIntegrationTestSuite provides integration tests for DispatchRepository
// using PostgreSQL containers to verify database persistence behavior.
type DispatchRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *dispatchrepo.GormDispatchRepository
	tracker    *MockAggregateTracker
}

func (suite *DispatchRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&dispatchrepo.RecordDTO{}))
}

func (suite *DispatchRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE dispatch_records").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = dispatchrepo.NewGormDispatchRepository(suite.db, suite.tracker)
}

func (suite *DispatchRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestAdd_NewRecord_Success() {
	ctx := context.Background()

	record := suite.createTestRecord()
	suite.tracker.On("TrackAggregate", record.ID(), record).Once()

	err := suite.repository.Add(ctx, record)
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&dispatchrepo.RecordDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestGetBySession_RestoresRecord() {
	ctx := context.Background()

	record := suite.createTestRecord()
	suite.tracker.On("TrackAggregate", record.ID(), record).Once()
	suite.Require().NoError(suite.repository.Add(ctx, record))

	restored, err := suite.repository.GetBySession(ctx, record.SessionID())
	suite.Require().NoError(err)

	suite.Equal(record.ID(), restored.ID())
	suite.Equal(record.SessionID(), restored.SessionID())
	suite.Equal(record.SubsidiaryID(), restored.SubsidiaryID())
	suite.Equal(record.Workflow(), restored.Workflow())
	suite.Equal(record.Folio(), restored.Folio())
	suite.Equal(record.PackageCount(), restored.PackageCount())
	suite.WithinDuration(record.AcceptedAt(), restored.AcceptedAt(), time.Millisecond)
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestGetBySession_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.GetBySession(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestAdd_DuplicateSession_Fails() {
	ctx := context.Background()

	first := suite.createTestRecord()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	// A session finalizes once; a second record for the same session is refused
	duplicate := dispatch.RestoreRecord(
		kernel.NewUUID(),
		first.SessionID(),
		first.SubsidiaryID(),
		first.Workflow(),
		"F-2026-0002",
		first.PackageCount(),
		time.Now(),
	)
	err := suite.repository.Add(ctx, duplicate)
	suite.Require().Error(err)
}

// createTestRecord assembles a minimal packet and stamps an acceptance on it.
func (suite *DispatchRepositoryIntegrationTestSuite) createTestRecord() *dispatch.Record {
	number, err := kernel.NewTrackingNumber("000011112222")
	suite.Require().NoError(err)
	valid, err := candidate.NewValidCandidate(number, "standard", false, false, nil, nil)
	suite.Require().NoError(err)

	driver, err := crew.NewDriver(kernel.NewUUID(), "R. Salas")
	suite.Require().NoError(err)
	vehicle, err := crew.NewVehicle(kernel.NewUUID(), "Unit 42", "XYZ-123-A")
	suite.Require().NoError(err)
	route, err := crew.NewRoute(kernel.NewUUID(), "North Loop")
	suite.Require().NoError(err)
	selection, err := crew.NewSelection([]crew.Driver{driver}, &vehicle, []crew.Route{route}, "128400")
	suite.Require().NoError(err)

	packet, err := dispatch.NewPacket(
		kernel.NewUUID(),
		"SUB-01",
		session.WorkflowDispatch,
		selection,
		[]*candidate.PackageCandidate{valid},
		time.Now(),
	)
	suite.Require().NoError(err)

	record, err := dispatch.NewRecord(packet, "F-2026-0001", time.Now())
	suite.Require().NoError(err)
	return record
}

func TestDispatchRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DispatchRepositoryIntegrationTestSuite))
}
