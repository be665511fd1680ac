package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"reconcile/internal/core/application/usecases/commands"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/core/ports"
	"reconcile/internal/pkg/errs"
)

// ConnectivityJob watches the validation authority and triggers offline
// candidate revalidation when the link comes back after an outage.
type ConnectivityJob struct {
	probe   ports.ConnectivityProbe
	handler commands.RevalidateOfflineCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger

	// wasOnline starts true so a service booting on a healthy link does not
	// fire a spurious revalidation pass.
	wasOnline bool
}

// NewConnectivityJob creates a job that polls the validation authority.
func NewConnectivityJob(
	probe ports.ConnectivityProbe,
	handler commands.RevalidateOfflineCommandHandler,
	logger *slog.Logger,
) *ConnectivityJob {
	return &ConnectivityJob{
		probe:     probe,
		handler:   handler,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "connectivity_job"),
		wasOnline: true,
	}
}

// Start begins polling every ten seconds.
func (j *ConnectivityJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", j.tick)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Connectivity job started (polling every ten seconds)")
	return nil
}

// Stop stops the connectivity job.
func (j *ConnectivityJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Connectivity job stopped")
}

func (j *ConnectivityJob) tick() {
	ctx := context.Background()

	if err := j.probe.Ping(ctx); err != nil {
		if j.wasOnline {
			j.logger.WarnContext(ctx, "Validation authority went offline", "error", err)
		}
		j.wasOnline = false
		return
	}

	if j.wasOnline {
		return
	}
	j.wasOnline = true
	j.logger.InfoContext(ctx, "Validation authority is back online, revalidating offline candidates")

	j.revalidateAll(ctx)
}

func (j *ConnectivityJob) revalidateAll(ctx context.Context) {
	workflows := []session.Workflow{
		session.WorkflowDispatch,
		session.WorkflowCollection,
		session.WorkflowDevolution,
	}

	for _, workflow := range workflows {
		cmd, err := commands.NewRevalidateOfflineCommand(workflow)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build revalidation command",
				"workflow", workflow.String(), "error", err)
			continue
		}

		outcome, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			// A workflow without an active session has nothing to retry
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			j.logger.ErrorContext(ctx, "Offline revalidation failed",
				"workflow", workflow.String(), "error", err)
			continue
		}

		if outcome.Reclassified > 0 || outcome.StillOffline > 0 {
			j.logger.InfoContext(ctx, "Offline revalidation finished",
				"workflow", workflow.String(),
				"reclassified", outcome.Reclassified,
				"still_offline", outcome.StillOffline)
		}
	}
}
