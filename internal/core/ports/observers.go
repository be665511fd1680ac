package ports

import (
	"context"

	"reconcile/internal/core/domain/model/session"
)

// BatchObserver receives progress updates during batch validation. Percent
// grows monotonically from the first code to 100.
type BatchObserver interface {
	Progress(percent int)
}

// BatchObserverFunc adapts a function to the BatchObserver interface.
type BatchObserverFunc func(percent int)

// Progress implements BatchObserver.
func (f BatchObserverFunc) Progress(percent int) { f(percent) }

// SessionNotifier is told after every committed session mutation so outer
// layers can refresh whatever view they keep of the aggregate.
type SessionNotifier interface {
	SessionChanged(ctx context.Context, aggregate *session.Session)
}

// MetricsRecorder counts domain events for operational visibility.
type MetricsRecorder interface {
	// CandidateClassified counts one classification outcome per workflow.
	CandidateClassified(workflow session.Workflow, validity string)

	// SessionFinalized counts one accepted dispatch submission.
	SessionFinalized(workflow session.Workflow, packageCount int)
}
