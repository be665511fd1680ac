package ports

import (
	"context"

	"reconcile/internal/core/domain/model/dispatch"
	"reconcile/internal/core/domain/model/kernel"
)

// DispatchRepository defines the persistence contract for dispatch
// acceptance records. Records are immutable once written.
type DispatchRepository interface {
	// Add persists an acceptance record.
	Add(ctx context.Context, record *dispatch.Record) error

	// GetBySession retrieves the record produced by a finalized session.
	// Returns errs.ObjectNotFoundError when none exists.
	GetBySession(ctx context.Context, sessionID kernel.UUID) (*dispatch.Record, error)
}
