package ports

import (
	"context"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
)

// SessionRepository defines the persistence contract for reconciliation
// session aggregates. A session is the unit of durability: the whole
// aggregate is written and read at once so restored state matches what the
// operator last saw.
type SessionRepository interface {
	// Add persists a new session aggregate to storage.
	Add(ctx context.Context, aggregate *session.Session) error

	// Update persists changes to an existing session aggregate.
	Update(ctx context.Context, aggregate *session.Session) error

	// Get retrieves a session aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when the session does not exist.
	Get(ctx context.Context, id kernel.UUID) (*session.Session, error)

	// GetActive retrieves the open session for a workflow, if any.
	// Completed and cancelled sessions are never returned.
	// Returns errs.ObjectNotFoundError when no open session exists.
	GetActive(ctx context.Context, workflow session.Workflow) (*session.Session, error)

	// Delete removes a session from storage. Used on successful
	// finalization and on explicit operator reset.
	Delete(ctx context.Context, id kernel.UUID) error
}
