package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
)

// GetDispatchRecordsQueryHandler reads acceptance records from the database.
type GetDispatchRecordsQueryHandler struct {
	db *gorm.DB
}

// NewGetDispatchRecordsQueryHandler creates a handler for record queries.
// Requires a GORM database connection for query execution.
func NewGetDispatchRecordsQueryHandler(db *gorm.DB) GetDispatchRecordsQueryHandler {
	return GetDispatchRecordsQueryHandler{db: db}
}

// Handle executes the query. Records come back newest first.
func (h GetDispatchRecordsQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchRecordsQuery,
) ([]GetDispatchRecordsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records := make([]GetDispatchRecordsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			session_id,
			workflow,
			folio,
			package_count,
			accepted_at
		FROM dispatch_records
		WHERE subsidiary_id = ?
		ORDER BY accepted_at DESC
		LIMIT ?
	`, query.SubsidiaryID(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record GetDispatchRecordsQueryResponse
		var id, sessionID uuid.UUID
		var workflow int

		err = rows.Scan(
			&id,
			&sessionID,
			&workflow,
			&record.Folio,
			&record.PackageCount,
			&record.AcceptedAt,
		)
		if err != nil {
			return nil, err
		}

		recordID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		record.ID = recordID

		recordSessionID, idErr := kernel.UUIDFromBytes(sessionID[:])
		if idErr != nil {
			return nil, idErr
		}
		record.SessionID = recordSessionID

		record.Workflow = session.Workflow(workflow).String()
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
