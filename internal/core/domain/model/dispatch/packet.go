// Package dispatch models the output of finalization: the packet handed to
// the dispatch authority and the immutable record of its acceptance.
package dispatch

import (
	"errors"
	"time"

	"reconcile/internal/core/domain/model/candidate"
	"reconcile/internal/core/domain/model/crew"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/pkg/errs"
)

var (
	// ErrPacketIsNotConstructed is returned when a Packet was not created
	// through NewPacket.
	ErrPacketIsNotConstructed = errors.New("Packet must be created via NewPacket")

	// ErrPacketRequiresValidCandidates is returned when packet assembly is
	// attempted without at least one Valid candidate.
	ErrPacketRequiresValidCandidates = errors.New("packet requires at least one valid candidate")

	// ErrPacketRequiresCompleteCrew is returned when packet assembly is
	// attempted with an incomplete crew selection.
	ErrPacketRequiresCompleteCrew = errors.New("packet requires a complete crew selection")
)

// Packet is the shaped, in-memory dispatch submission. It carries only the
// Valid candidates of a session; Invalid and Offline candidates stay behind
// in the session for operator review. Assembling a packet has no remote side
// effects; submission is the dispatch authority collaborator's job.
type Packet struct {
	sessionID    kernel.UUID
	subsidiaryID string
	workflow     session.Workflow
	crew         crew.Selection
	candidates   []*candidate.PackageCandidate
	assembledAt  time.Time

	isConstructed bool
}

// NewPacket shapes a dispatch submission from a session's valid candidates
// and crew metadata. Every candidate must be Valid; the crew selection must
// be complete.
func NewPacket(
	sessionID kernel.UUID,
	subsidiaryID string,
	workflow session.Workflow,
	crewSelection crew.Selection,
	candidates []*candidate.PackageCandidate,
	assembledAt time.Time,
) (*Packet, error) {
	if err := errors.Join(
		sessionID.Validate(),
		workflow.Validate(),
	); err != nil {
		return nil, err
	}

	if subsidiaryID == "" {
		return nil, errs.NewValueIsRequiredError("subsidiaryID")
	}

	if len(candidates) == 0 {
		return nil, ErrPacketRequiresValidCandidates
	}

	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.Validity() != candidate.Valid {
			return nil, ErrPacketRequiresValidCandidates
		}
	}

	if !crewSelection.IsComplete() {
		return nil, ErrPacketRequiresCompleteCrew
	}

	return &Packet{
		sessionID:     sessionID,
		subsidiaryID:  subsidiaryID,
		workflow:      workflow,
		crew:          crewSelection,
		candidates:    append([]*candidate.PackageCandidate(nil), candidates...),
		assembledAt:   assembledAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the packet was created via NewPacket.
func (p *Packet) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPacketIsNotConstructed
	}
	return nil
}

// SessionID returns the originating session identifier.
func (p *Packet) SessionID() kernel.UUID { return p.sessionID }

// SubsidiaryID returns the subsidiary the packet is dispatched from.
func (p *Packet) SubsidiaryID() string { return p.subsidiaryID }

// Workflow returns the workflow that produced the packet.
func (p *Packet) Workflow() session.Workflow { return p.workflow }

// Crew returns the crew selection attached to the packet.
func (p *Packet) Crew() crew.Selection { return p.crew }

// Candidates returns the valid candidates in scan order.
func (p *Packet) Candidates() []*candidate.PackageCandidate {
	return append([]*candidate.PackageCandidate(nil), p.candidates...)
}

// AssembledAt returns the packet assembly timestamp.
func (p *Packet) AssembledAt() time.Time { return p.assembledAt }
