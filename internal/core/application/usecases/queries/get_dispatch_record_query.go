package queries

import (
	"errors"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/guard"
)

var ErrGetDispatchRecordQueryIsNotConstructed = errors.New(
	"GetDispatchRecordQuery must be created via NewGetDispatchRecordQuery constructor",
)

// GetDispatchRecordQuery retrieves the acceptance record produced by one
// finalized session. The session itself is gone after finalization, so this
// is how an operator recovers the folio when the finalization response was
// lost in transit.
type GetDispatchRecordQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDispatchRecordQuery creates a query for a session's acceptance record.
func NewGetDispatchRecordQuery(sessionID kernel.UUID) (GetDispatchRecordQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetDispatchRecordQuery{}, err
	}

	return GetDispatchRecordQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDispatchRecordQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchRecordQueryIsNotConstructed)
}

// SessionID returns the finalized session being looked up.
func (q GetDispatchRecordQuery) SessionID() kernel.UUID {
	return q.sessionID
}
