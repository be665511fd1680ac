package dispatchrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reconcile/internal/core/domain/model/dispatch"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/errs"
)

// GormDispatchRepository implements DispatchRepository using GORM.
type GormDispatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDispatchRepository creates a new GORM dispatch repository.
func NewGormDispatchRepository(db *gorm.DB, tracker aggregateTracker) *GormDispatchRepository {
	return &GormDispatchRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new acceptance record to the database.
func (r *GormDispatchRepository) Add(ctx context.Context, record *dispatch.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// GetBySession retrieves the acceptance record produced by a finalized session.
func (r *GormDispatchRepository) GetBySession(ctx context.Context, sessionID kernel.UUID) (*dispatch.Record, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "session_id = ?", sessionID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispatch record", sessionID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
