package cmd

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"reconcile/internal/adapters/out/metrics"
	"reconcile/internal/adapters/out/notify"
	"reconcile/internal/adapters/out/postgres"
	"reconcile/internal/adapters/out/remote"
	"reconcile/internal/core/application/usecases/commands"
	"reconcile/internal/core/application/usecases/queries"
	"reconcile/internal/core/ports"
	"reconcile/internal/jobs"
)

type CompositionRoot struct {
	gormDB           *gorm.DB
	uowFactory       postgres.GormUnitOfWorkFactory
	validationClient *remote.ValidationClient
	dispatchClient   *remote.DispatchClient
	metricsRecorder  *metrics.PrometheusRecorder
	notifier         *notify.SlogNotifier
	logger           *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	validationClient, err := remote.NewValidationClient(configs.ValidationAPIURL)
	if err != nil {
		return CompositionRoot{}, err
	}

	dispatchClient, err := remote.NewDispatchClient(configs.DispatchAPIURL)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:           gormDB,
		uowFactory:       *postgres.NewGormUnitOfWorkFactory(gormDB),
		validationClient: validationClient,
		dispatchClient:   dispatchClient,
		metricsRecorder:  metrics.NewPrometheusRecorder(prometheus.DefaultRegisterer),
		notifier:         notify.NewSlogNotifier(logger),
		logger:           logger,
	}, nil
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateOpenSessionCommandHandler() commands.OpenSessionCommandHandler {
	return commands.NewOpenSessionCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateIngestScanCommandHandler() commands.IngestScanCommandHandler {
	return commands.NewIngestScanCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateValidateCodesCommandHandler() commands.ValidateCodesCommandHandler {
	observer := ports.BatchObserverFunc(func(percent int) {
		c.logger.Debug("Batch validation progress", "percent", percent)
	})
	return commands.NewValidateCodesCommandHandler(
		c.sessionUoWFactory(),
		c.validationClient,
		observer,
		c.metricsRecorder,
	)
}

func (c *CompositionRoot) CreateSaveScanBufferCommandHandler() commands.SaveScanBufferCommandHandler {
	return commands.NewSaveScanBufferCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateSetCrewCommandHandler() commands.SetCrewCommandHandler {
	return commands.NewSetCrewCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCandidateCommandHandler() commands.UpdateCandidateCommandHandler {
	return commands.NewUpdateCandidateCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateRemoveCandidateCommandHandler() commands.RemoveCandidateCommandHandler {
	return commands.NewRemoveCandidateCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateFinalizeSessionCommandHandler() commands.FinalizeSessionCommandHandler {
	return commands.NewFinalizeSessionCommandHandler(
		c.fullUoWFactory(),
		c.dispatchClient,
		c.metricsRecorder,
	)
}

func (c *CompositionRoot) CreateResetSessionCommandHandler() commands.ResetSessionCommandHandler {
	return commands.NewResetSessionCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateRevalidateOfflineCommandHandler() commands.RevalidateOfflineCommandHandler {
	return commands.NewRevalidateOfflineCommandHandler(
		c.sessionUoWFactory(),
		c.validationClient,
		c.metricsRecorder,
		c.notifier,
	)
}

func (c *CompositionRoot) CreateGetActiveSessionQueryHandler() queries.GetActiveSessionQueryHandler {
	return queries.NewGetActiveSessionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDispatchRecordQueryHandler() queries.GetDispatchRecordQueryHandler {
	// Outside a transaction the unit of work hands out repositories bound
	// to the main connection, which is all a read needs.
	return queries.NewGetDispatchRecordQueryHandler(c.uowFactory.Create().DispatchRepository())
}

func (c *CompositionRoot) CreateGetDispatchRecordsQueryHandler() queries.GetDispatchRecordsQueryHandler {
	return queries.NewGetDispatchRecordsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.validationClient,
		c.CreateRevalidateOfflineCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) sessionUoWFactory() commands.SessionUoWFactory {
	return FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
