package services

import (
	"fmt"
	"strings"
	"time"

	"reconcile/internal/core/domain/model/dispatch"
	"reconcile/internal/core/domain/model/session"
)

// FinalizationBlockedError reports why a session cannot be finalized. Missing
// lists the unmet requirements in a fixed order so the operator sees a stable
// checklist.
type FinalizationBlockedError struct {
	Missing []string
}

// Error implements the error interface.
func (e *FinalizationBlockedError) Error() string {
	return fmt.Sprintf("finalization blocked: missing %s", strings.Join(e.Missing, ", "))
}

// DispatchAssembler is a domain service that shapes a reviewed session into
// a dispatch packet.
//
// Business rules:
//   - The crew selection must be complete (drivers, vehicle, routes and an
//     odometer reading).
//   - At least one candidate must be Valid.
//   - Only Valid candidates enter the packet; Invalid and Offline candidates
//     stay behind in the session.
//
// Assembly has no remote side effects. Submitting the packet is the dispatch
// authority collaborator's job.
type DispatchAssembler struct{}

// NewDispatchAssembler creates a new DispatchAssembler instance.
func NewDispatchAssembler() DispatchAssembler {
	return DispatchAssembler{}
}

// Blockers returns the unmet finalization requirements of the session, or
// nil when it can be finalized.
func (DispatchAssembler) Blockers(s *session.Session) []string {
	return s.FinalizationBlockers()
}

// Assemble builds the dispatch packet for a session. It returns a
// *FinalizationBlockedError when any finalization requirement is unmet.
func (a DispatchAssembler) Assemble(s *session.Session, assembledAt time.Time) (*dispatch.Packet, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if missing := s.FinalizationBlockers(); len(missing) > 0 {
		return nil, &FinalizationBlockedError{Missing: missing}
	}

	return dispatch.NewPacket(
		s.ID(),
		s.SubsidiaryID(),
		s.Workflow(),
		s.Crew(),
		s.ValidCandidates(),
		assembledAt,
	)
}
