// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly, bypassing the domain model.
package queries

import (
	"errors"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/pkg/guard"
)

var ErrGetActiveSessionQueryIsNotConstructed = errors.New(
	"GetActiveSessionQuery must be created via NewGetActiveSessionQuery constructor",
)

// GetActiveSessionQuery retrieves a summary of the open session for a
// workflow: its state, the classification counts, and the saved scan
// buffer. Used by the capture screen to render its header without loading
// the full aggregate.
type GetActiveSessionQuery struct {
	workflow session.Workflow

	guard guard.ConstructorGuard
}

// NewGetActiveSessionQuery creates a query for the workflow's open session.
func NewGetActiveSessionQuery(workflow session.Workflow) (GetActiveSessionQuery, error) {
	if err := workflow.Validate(); err != nil {
		return GetActiveSessionQuery{}, err
	}

	return GetActiveSessionQuery{
		workflow: workflow,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveSessionQueryIsNotConstructed)
}

// Workflow returns the workflow being queried.
func (q GetActiveSessionQuery) Workflow() session.Workflow {
	return q.workflow
}

// GetActiveSessionQueryResponse summarizes the open session.
type GetActiveSessionQueryResponse struct {
	ID             kernel.UUID
	SubsidiaryID   string
	State          string
	ScanBuffer     string
	ValidCount     int
	InvalidCount   int
	OfflineCount   int
	RejectedFormat int
}
