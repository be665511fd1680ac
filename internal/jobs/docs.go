// Package jobs provides scheduled background tasks for the reconciliation
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required while operators work offline-prone
// subsidiary networks.
//
// # Available Jobs
//
// 1. ConnectivityJob - Polls the validation authority's health endpoint and,
// when connectivity comes back after an outage, retries every Offline
// candidate across all workflows.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(probe, revalidateHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The connectivity job runs every ten seconds. Revalidation only fires on
// the offline-to-online edge, so a healthy link costs one health probe per
// tick and nothing more.
//
// # Error Handling
//
// - A workflow with no active session is an expected scenario and is skipped
// - Revalidation failures are logged and retried on the next restoration
package jobs
