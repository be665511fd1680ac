// Package dispatchrepo provides data transfer objects and mapping functions for
// dispatch acceptance record persistence.
package dispatchrepo

import (
	"time"

	"github.com/google/uuid"

	"reconcile/internal/core/domain/model/dispatch"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
)

// RecordDTO represents the database structure for persisting acceptance records.
type RecordDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	SubsidiaryID string    `gorm:"type:varchar(64);not null;index"`
	Workflow     int       `gorm:"type:int;not null"`
	Folio        string    `gorm:"type:varchar(64);not null"`
	PackageCount int       `gorm:"type:int;not null"`
	AcceptedAt   time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for acceptance records.
func (RecordDTO) TableName() string {
	return "dispatch_records"
}

// fromDomain converts a record domain entity to its database representation.
func fromDomain(record *dispatch.Record) RecordDTO {
	return RecordDTO{
		ID:           record.ID().Bytes(),
		SessionID:    record.SessionID().Bytes(),
		SubsidiaryID: record.SubsidiaryID(),
		Workflow:     int(record.Workflow()),
		Folio:        record.Folio(),
		PackageCount: record.PackageCount(),
		AcceptedAt:   record.AcceptedAt(),
	}
}

// toDomain converts a database DTO to a record domain entity.
func toDomain(dto RecordDTO) (*dispatch.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sessionID, err := kernel.UUIDFromBytes(dto.SessionID[:])
	if err != nil {
		return nil, err
	}

	return dispatch.RestoreRecord(
		id,
		sessionID,
		dto.SubsidiaryID,
		session.Workflow(dto.Workflow),
		dto.Folio,
		dto.PackageCount,
		dto.AcceptedAt,
	), nil
}
