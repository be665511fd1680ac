package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reconcile/internal/core/domain/model/candidate"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/pkg/errs"
)

// GetActiveSessionQueryHandler reads the open session summary straight from
// the database.
type GetActiveSessionQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveSessionQueryHandler creates a handler for session summaries.
// Requires a GORM database connection for query execution.
func NewGetActiveSessionQueryHandler(db *gorm.DB) GetActiveSessionQueryHandler {
	return GetActiveSessionQueryHandler{db: db}
}

// Handle executes the summary query. Returns errs.ObjectNotFoundError when
// no session is open for the workflow.
func (h GetActiveSessionQueryHandler) Handle(
	ctx context.Context,
	query GetActiveSessionQuery,
) (GetActiveSessionQueryResponse, error) {
	var response GetActiveSessionQueryResponse

	if err := query.Validate(); err != nil {
		return response, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.subsidiary_id,
			s.state,
			s.scan_buffer,
			COALESCE(array_length(s.rejected_codes, 1), 0) AS rejected_format,
			COUNT(c.tracking_number) FILTER (WHERE c.validity = ?) AS valid_count,
			COUNT(c.tracking_number) FILTER (WHERE c.validity = ?) AS invalid_count,
			COUNT(c.tracking_number) FILTER (WHERE c.validity = ?) AS offline_count
		FROM sessions s
		LEFT JOIN session_candidates c ON c.session_id = s.id
		WHERE s.workflow = ? AND s.state NOT IN (?, ?)
		GROUP BY s.id, s.subsidiary_id, s.state, s.scan_buffer, s.rejected_codes
		LIMIT 1
	`,
		candidate.Valid, candidate.Invalid, candidate.Offline,
		query.Workflow(), session.Completed, session.Cancelled,
	).Rows()
	if err != nil {
		return response, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return response, err
		}
		return response, errs.NewObjectNotFoundError("workflow", query.Workflow().String())
	}

	var id uuid.UUID
	var state int

	err = rows.Scan(
		&id,
		&response.SubsidiaryID,
		&state,
		&response.ScanBuffer,
		&response.RejectedFormat,
		&response.ValidCount,
		&response.InvalidCount,
		&response.OfflineCount,
	)
	if err != nil {
		return response, err
	}

	sessionID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return response, err
	}

	response.ID = sessionID
	response.State = session.State(state).String()
	return response, nil
}
