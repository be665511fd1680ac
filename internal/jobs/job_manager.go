package jobs

import (
	"fmt"
	"log/slog"

	"reconcile/internal/core/application/usecases/commands"
	"reconcile/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	connectivityJob *ConnectivityJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	probe ports.ConnectivityProbe,
	revalidateHandler commands.RevalidateOfflineCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		connectivityJob: NewConnectivityJob(probe, revalidateHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.connectivityJob.Start(); err != nil {
		return fmt.Errorf("failed to start connectivity job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.connectivityJob.Stop()
}
