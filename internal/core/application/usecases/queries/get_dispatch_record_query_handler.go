package queries

import (
	"context"

	"reconcile/internal/core/ports"
)

// GetDispatchRecordQueryHandler reads one acceptance record through the
// dispatch repository.
type GetDispatchRecordQueryHandler struct {
	records ports.DispatchRepository
}

// NewGetDispatchRecordQueryHandler creates a handler for single-record lookups.
func NewGetDispatchRecordQueryHandler(records ports.DispatchRepository) GetDispatchRecordQueryHandler {
	return GetDispatchRecordQueryHandler{records: records}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the
// session was never finalized.
func (h GetDispatchRecordQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchRecordQuery,
) (GetDispatchRecordsQueryResponse, error) {
	var response GetDispatchRecordsQueryResponse

	if err := query.Validate(); err != nil {
		return response, err
	}

	record, err := h.records.GetBySession(ctx, query.SessionID())
	if err != nil {
		return response, err
	}

	return GetDispatchRecordsQueryResponse{
		ID:           record.ID(),
		SessionID:    record.SessionID(),
		Workflow:     record.Workflow().String(),
		Folio:        record.Folio(),
		PackageCount: record.PackageCount(),
		AcceptedAt:   record.AcceptedAt(),
	}, nil
}
