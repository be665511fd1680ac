package queries

import (
	"errors"
	"time"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/errs"
	"reconcile/internal/pkg/guard"
)

var ErrGetDispatchRecordsQueryIsNotConstructed = errors.New(
	"GetDispatchRecordsQuery must be created via NewGetDispatchRecordsQuery constructor",
)

const (
	minRecordsLimit = 1
	maxRecordsLimit = 100
)

// GetDispatchRecordsQuery retrieves the most recent dispatch acceptance
// records for a subsidiary, newest first.
type GetDispatchRecordsQuery struct {
	subsidiaryID string
	limit        int

	guard guard.ConstructorGuard
}

// NewGetDispatchRecordsQuery creates a query for recent acceptance records.
// The limit must be between 1 and 100.
func NewGetDispatchRecordsQuery(subsidiaryID string, limit int) (GetDispatchRecordsQuery, error) {
	if subsidiaryID == "" {
		return GetDispatchRecordsQuery{}, errs.NewValueIsRequiredError("subsidiaryID")
	}

	if limit < minRecordsLimit || limit > maxRecordsLimit {
		return GetDispatchRecordsQuery{}, errs.NewValueIsOutOfRangeError(
			"limit", limit, minRecordsLimit, maxRecordsLimit)
	}

	return GetDispatchRecordsQuery{
		subsidiaryID: subsidiaryID,
		limit:        limit,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDispatchRecordsQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchRecordsQueryIsNotConstructed)
}

// SubsidiaryID returns the subsidiary being queried.
func (q GetDispatchRecordsQuery) SubsidiaryID() string {
	return q.subsidiaryID
}

// Limit returns the maximum number of records to return.
func (q GetDispatchRecordsQuery) Limit() int {
	return q.limit
}

// GetDispatchRecordsQueryResponse represents one acceptance record.
type GetDispatchRecordsQueryResponse struct {
	ID           kernel.UUID
	SessionID    kernel.UUID
	Workflow     string
	Folio        string
	PackageCount int
	AcceptedAt   time.Time
}
