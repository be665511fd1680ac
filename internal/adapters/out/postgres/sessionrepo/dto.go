// Package sessionrepo provides data transfer objects and mapping functions for session persistence.
// This package implements the repository pattern for the reconciliation session aggregate, handling
// the conversion between domain entities and database representations.
package sessionrepo

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"reconcile/internal/core/domain/model/candidate"
	"reconcile/internal/core/domain/model/crew"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
)

// SessionDTO represents the database structure for persisting session aggregates.
// The session is written and read as a whole so a restored session matches the
// persisted one byte for byte, including candidate order.
type SessionDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SubsidiaryID  string         `gorm:"type:varchar(64);not null;index"`
	Workflow      int            `gorm:"type:int;not null;index"`
	State         int            `gorm:"type:int;not null"`
	RejectedCodes pq.StringArray `gorm:"type:text[]"`
	Crew          []byte         `gorm:"type:jsonb"`
	ScanBuffer    string         `gorm:"type:text"`
	Candidates    []CandidateDTO `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for session entities.
func (SessionDTO) TableName() string {
	return "sessions"
}

// CandidateDTO represents one classified candidate row. Position preserves
// scan order across reloads.
type CandidateDTO struct {
	SessionID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingNumber string    `gorm:"type:varchar(32);primaryKey"`
	Position       int       `gorm:"type:int;not null"`
	Validity       int       `gorm:"type:int;not null"`
	Reason         string    `gorm:"type:text"`
	Priority       string    `gorm:"type:varchar(64)"`
	IsCharge       bool
	IsHighValue    bool
	Payment        []byte `gorm:"type:jsonb"`
	Recipient      []byte `gorm:"type:jsonb"`
}

// TableName specifies the database table name for candidate entities.
func (CandidateDTO) TableName() string {
	return "session_candidates"
}

type crewMemberDoc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type vehicleDoc struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Plates string `json:"plates"`
}

type crewDoc struct {
	Drivers         []crewMemberDoc `json:"drivers"`
	Vehicle         *vehicleDoc     `json:"vehicle,omitempty"`
	Routes          []crewMemberDoc `json:"routes"`
	OdometerReading string          `json:"odometerReading"`
}

type paymentDoc struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

type recipientDoc struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
}

// fromDomain converts a session domain aggregate to its database representation.
func fromDomain(aggregate *session.Session) (SessionDTO, error) {
	sessionID := aggregate.ID().Bytes()

	crewJSON, err := marshalCrew(aggregate.Crew())
	if err != nil {
		return SessionDTO{}, err
	}

	all := aggregate.Candidates().All()
	candidates := make([]CandidateDTO, 0, len(all))
	for position, c := range all {
		dto, candidateErr := candidateFromDomain(sessionID, position, c)
		if candidateErr != nil {
			return SessionDTO{}, candidateErr
		}
		candidates = append(candidates, dto)
	}

	return SessionDTO{
		ID:            sessionID,
		SubsidiaryID:  aggregate.SubsidiaryID(),
		Workflow:      int(aggregate.Workflow()),
		State:         int(aggregate.State()),
		RejectedCodes: pq.StringArray(aggregate.RejectedCodes()),
		Crew:          crewJSON,
		ScanBuffer:    aggregate.ScanBuffer(),
		Candidates:    candidates,
	}, nil
}

// toDomain converts a database DTO to a session domain aggregate.
// Reconstructs the complete aggregate including candidates in scan order using RestoreSession.
func toDomain(dto SessionDTO) (*session.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	crewSelection, err := unmarshalCrew(dto.Crew)
	if err != nil {
		return nil, err
	}

	candidates := make([]*candidate.PackageCandidate, 0, len(dto.Candidates))
	for _, candidateDTO := range dto.Candidates {
		c, candidateErr := candidateToDomain(candidateDTO)
		if candidateErr != nil {
			return nil, candidateErr
		}
		candidates = append(candidates, c)
	}

	store, err := candidate.RestoreStore(candidates)
	if err != nil {
		return nil, err
	}

	return session.RestoreSession(
		id,
		dto.SubsidiaryID,
		session.Workflow(dto.Workflow),
		session.State(dto.State),
		store,
		dto.RejectedCodes,
		crewSelection,
		dto.ScanBuffer,
	)
}

func candidateFromDomain(sessionID uuid.UUID, position int, c *candidate.PackageCandidate) (CandidateDTO, error) {
	var payment, recipient []byte
	var err error

	if p := c.Payment(); p != nil {
		payment, err = json.Marshal(paymentDoc{Type: p.Type(), Amount: p.Amount()})
		if err != nil {
			return CandidateDTO{}, err
		}
	}

	if r := c.Recipient(); r != nil {
		recipient, err = json.Marshal(recipientDoc{
			Name:    r.Name(),
			Address: r.Address(),
			ZipCode: r.ZipCode(),
			Phone:   r.Phone(),
		})
		if err != nil {
			return CandidateDTO{}, err
		}
	}

	return CandidateDTO{
		SessionID:      sessionID,
		TrackingNumber: c.TrackingNumber().String(),
		Position:       position,
		Validity:       int(c.Validity()),
		Reason:         c.Reason(),
		Priority:       c.Priority(),
		IsCharge:       c.IsCharge(),
		IsHighValue:    c.IsHighValue(),
		Payment:        payment,
		Recipient:      recipient,
	}, nil
}

func candidateToDomain(dto CandidateDTO) (*candidate.PackageCandidate, error) {
	trackingNumber, err := kernel.NewTrackingNumber(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}

	var payment *candidate.Payment
	if len(dto.Payment) > 0 {
		var doc paymentDoc
		if err = json.Unmarshal(dto.Payment, &doc); err != nil {
			return nil, err
		}
		p, paymentErr := candidate.NewPayment(doc.Type, doc.Amount)
		if paymentErr != nil {
			return nil, paymentErr
		}
		payment = &p
	}

	var recipient *candidate.Recipient
	if len(dto.Recipient) > 0 {
		var doc recipientDoc
		if err = json.Unmarshal(dto.Recipient, &doc); err != nil {
			return nil, err
		}
		r, recipientErr := candidate.NewRecipient(doc.Name, doc.Address, doc.ZipCode, doc.Phone)
		if recipientErr != nil {
			return nil, recipientErr
		}
		recipient = &r
	}

	return candidate.RestoreCandidate(
		trackingNumber,
		candidate.Validity(dto.Validity),
		dto.Reason,
		dto.Priority,
		dto.IsCharge,
		dto.IsHighValue,
		payment,
		recipient,
	)
}

func marshalCrew(selection crew.Selection) ([]byte, error) {
	doc := crewDoc{
		Drivers:         make([]crewMemberDoc, 0, len(selection.Drivers())),
		Routes:          make([]crewMemberDoc, 0, len(selection.Routes())),
		OdometerReading: selection.OdometerReading(),
	}

	for _, d := range selection.Drivers() {
		doc.Drivers = append(doc.Drivers, crewMemberDoc{ID: d.ID().String(), Name: d.Name()})
	}

	if v := selection.Vehicle(); v != nil {
		doc.Vehicle = &vehicleDoc{ID: v.ID().String(), Name: v.Name(), Plates: v.Plates()}
	}

	for _, r := range selection.Routes() {
		doc.Routes = append(doc.Routes, crewMemberDoc{ID: r.ID().String(), Name: r.Name()})
	}

	return json.Marshal(doc)
}

func unmarshalCrew(raw []byte) (crew.Selection, error) {
	if len(raw) == 0 {
		return crew.NewSelection(nil, nil, nil, "")
	}

	var doc crewDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return crew.Selection{}, err
	}

	drivers := make([]crew.Driver, 0, len(doc.Drivers))
	for _, d := range doc.Drivers {
		id, err := kernel.UUIDFromString(d.ID)
		if err != nil {
			return crew.Selection{}, err
		}
		driver, err := crew.NewDriver(id, d.Name)
		if err != nil {
			return crew.Selection{}, err
		}
		drivers = append(drivers, driver)
	}

	var vehicle *crew.Vehicle
	if doc.Vehicle != nil {
		id, err := kernel.UUIDFromString(doc.Vehicle.ID)
		if err != nil {
			return crew.Selection{}, err
		}
		v, err := crew.NewVehicle(id, doc.Vehicle.Name, doc.Vehicle.Plates)
		if err != nil {
			return crew.Selection{}, err
		}
		vehicle = &v
	}

	routes := make([]crew.Route, 0, len(doc.Routes))
	for _, r := range doc.Routes {
		id, err := kernel.UUIDFromString(r.ID)
		if err != nil {
			return crew.Selection{}, err
		}
		route, err := crew.NewRoute(id, r.Name)
		if err != nil {
			return crew.Selection{}, err
		}
		routes = append(routes, route)
	}

	return crew.NewSelection(drivers, vehicle, routes, doc.OdometerReading)
}
