package sessionrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/pkg/errs"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormSessionRepository {
	return &GormSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new session to the database.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing session to the database.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	// FullSaveAssociations upserts candidate rows but never removes them,
	// so rows for candidates dropped from the aggregate are deleted first.
	stale := r.db.WithContext(ctx).Where("session_id = ?", dto.ID)
	if len(dto.Candidates) > 0 {
		numbers := make([]string, 0, len(dto.Candidates))
		for _, c := range dto.Candidates {
			numbers = append(numbers, c.TrackingNumber)
		}
		stale = stale.Where("tracking_number NOT IN ?", numbers)
	}
	if err := stale.Delete(&CandidateDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a session by ID.
func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	if err := r.db.WithContext(ctx).
		Preload("Candidates", candidatesInScanOrder).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActive retrieves the in-progress session for a workflow.
// Completed and cancelled sessions are never returned, so at most one
// session per workflow is visible to operators at a time.
func (r *GormSessionRepository) GetActive(ctx context.Context, workflow session.Workflow) (*session.Session, error) {
	if err := workflow.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	if err := r.db.WithContext(ctx).
		Preload("Candidates", candidatesInScanOrder).
		Where("workflow = ? AND state NOT IN ?", int(workflow), []int{int(session.Completed), int(session.Cancelled)}).
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", workflow.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a session and its candidate rows from the database.
func (r *GormSessionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Where("session_id = ?", id.Bytes()).Delete(&CandidateDTO{}).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&SessionDTO{}).Error
}

func candidatesInScanOrder(db *gorm.DB) *gorm.DB {
	return db.Order("session_candidates.position ASC")
}
