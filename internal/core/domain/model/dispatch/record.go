package dispatch

import (
	"errors"
	"time"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/pkg/errs"
)

// ErrRecordIsNotConstructed is returned when a Record was not created through
// NewRecord or RestoreRecord.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord")

// Record is the durable trace of an accepted dispatch submission. The folio
// is the reference the dispatch authority returned on acceptance.
type Record struct {
	id           kernel.UUID
	sessionID    kernel.UUID
	subsidiaryID string
	workflow     session.Workflow
	folio        string
	packageCount int
	acceptedAt   time.Time

	isConstructed bool
}

// NewRecord creates an acceptance record for a submitted packet.
func NewRecord(packet *Packet, folio string, acceptedAt time.Time) (*Record, error) {
	if err := packet.Validate(); err != nil {
		return nil, err
	}

	if folio == "" {
		return nil, errs.NewValueIsRequiredError("folio")
	}

	return &Record{
		id:            kernel.NewUUID(),
		sessionID:     packet.SessionID(),
		subsidiaryID:  packet.SubsidiaryID(),
		workflow:      packet.Workflow(),
		folio:         folio,
		packageCount:  len(packet.Candidates()),
		acceptedAt:    acceptedAt,
		isConstructed: true,
	}, nil
}

// RestoreRecord rebuilds a record from storage without validation.
func RestoreRecord(
	id kernel.UUID,
	sessionID kernel.UUID,
	subsidiaryID string,
	workflow session.Workflow,
	folio string,
	packageCount int,
	acceptedAt time.Time,
) *Record {
	return &Record{
		id:            id,
		sessionID:     sessionID,
		subsidiaryID:  subsidiaryID,
		workflow:      workflow,
		folio:         folio,
		packageCount:  packageCount,
		acceptedAt:    acceptedAt,
		isConstructed: true,
	}
}

// Validate ensures the record was created via NewRecord or RestoreRecord.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record identifier.
func (r *Record) ID() kernel.UUID { return r.id }

// SessionID returns the originating session identifier.
func (r *Record) SessionID() kernel.UUID { return r.sessionID }

// SubsidiaryID returns the subsidiary the packet was dispatched from.
func (r *Record) SubsidiaryID() string { return r.subsidiaryID }

// Workflow returns the workflow that produced the packet.
func (r *Record) Workflow() session.Workflow { return r.workflow }

// Folio returns the acceptance reference issued by the dispatch authority.
func (r *Record) Folio() string { return r.folio }

// PackageCount returns the number of packages in the accepted packet.
func (r *Record) PackageCount() int { return r.packageCount }

// AcceptedAt returns the acceptance timestamp.
func (r *Record) AcceptedAt() time.Time { return r.acceptedAt }
