package session

import (
	"errors"

	"reconcile/internal/core/domain/model/candidate"
	"reconcile/internal/core/domain/model/crew"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/errs"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session instance was
	// not created through NewSession or RestoreSession.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")
)

// RequirementValidCandidates is the finalization blocker reported when the
// session holds no Valid candidate. It complements the crew requirement keys.
const RequirementValidCandidates = "validCandidates"

// MergeOutcome summarizes a candidate merge for operator feedback
// ("12 agregados, 2 inválidos").
type MergeOutcome struct {
	AddedValid   int
	AddedInvalid int
	AddedOffline int
	Duplicates   int
}

// Added returns the total number of candidates the merge actually inserted.
func (m MergeOutcome) Added() int {
	return m.AddedValid + m.AddedInvalid + m.AddedOffline
}

// Session is the reconciliation aggregate: every scanned candidate, the
// rejected-format code list, the crew selection, the raw scan buffer, and
// the workflow state for one dispatch/collection/devolution operation.
//
// Session invariants:
//   - A tracking number appears at most once across candidates and at most
//     once across rejected-format codes; re-scans of known codes are
//     silently dropped
//   - Offline candidates always carry a reason (enforced by the candidate
//     package) and are revalidated in place, never duplicated
//   - Finalization requires a complete crew selection and at least one
//     Valid candidate
//
// The session is the unit of persistence: it survives reloads verbatim and
// is cleared from durable storage only on completion or explicit reset.
type Session struct {
	id            kernel.UUID
	subsidiaryID  string
	workflow      Workflow
	candidates    *candidate.Store
	rejectedCodes []string
	crew          crew.Selection
	scanBuffer    string
	state         State

	isConstructed bool
}

// NewSession creates a session in Idle state for the given workflow.
func NewSession(id kernel.UUID, subsidiaryID string, workflow Workflow) (*Session, error) {
	if err := errors.Join(
		id.Validate(),
		workflow.Validate(),
		validateSubsidiaryID(subsidiaryID),
	); err != nil {
		return nil, err
	}

	return &Session{
		id:            id,
		subsidiaryID:  subsidiaryID,
		workflow:      workflow,
		candidates:    candidate.NewStore(),
		state:         Idle,
		isConstructed: true,
	}, nil
}

// RestoreSession reconstructs a session from persistence with its full
// captured state, so a reload recovers the in-progress operation verbatim.
func RestoreSession(
	id kernel.UUID,
	subsidiaryID string,
	workflow Workflow,
	state State,
	candidates *candidate.Store,
	rejectedCodes []string,
	crewSelection crew.Selection,
	scanBuffer string,
) (*Session, error) {
	if err := errors.Join(
		id.Validate(),
		workflow.Validate(),
		state.Validate(),
		validateSubsidiaryID(subsidiaryID),
	); err != nil {
		return nil, err
	}

	if candidates == nil {
		candidates = candidate.NewStore()
	}

	return &Session{
		id:            id,
		subsidiaryID:  subsidiaryID,
		workflow:      workflow,
		candidates:    candidates,
		rejectedCodes: append([]string(nil), rejectedCodes...),
		crew:          crewSelection,
		scanBuffer:    scanBuffer,
		state:         state,
		isConstructed: true,
	}, nil
}

// Validate ensures the session was created through a constructor.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// ID returns the session identifier.
func (s *Session) ID() kernel.UUID { return s.id }

// SubsidiaryID returns the subsidiary the session validates against.
func (s *Session) SubsidiaryID() string { return s.subsidiaryID }

// Workflow returns the capture workflow this session belongs to.
func (s *Session) Workflow() Workflow { return s.workflow }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Candidates returns the candidate store owned by this session.
func (s *Session) Candidates() *candidate.Store { return s.candidates }

// RejectedCodes returns the codes rejected by the format gate, in capture
// order. They never reach the remote authority and never become candidates.
func (s *Session) RejectedCodes() []string {
	return append([]string(nil), s.rejectedCodes...)
}

// Crew returns the current crew selection.
func (s *Session) Crew() crew.Selection { return s.crew }

// ScanBuffer returns the persisted in-progress scan buffer.
func (s *Session) ScanBuffer() string { return s.scanBuffer }

// StartScanning moves the session into Scanning.
func (s *Session) StartScanning() error { return s.transition(State.StartScanning) }

// BeginValidation moves the session into Validating.
func (s *Session) BeginValidation() error { return s.transition(State.BeginValidation) }

// FinishValidation returns the session to Reviewing after a batch.
func (s *Session) FinishValidation() error { return s.transition(State.FinishValidation) }

// BeginFinalization moves the session into Finalizing.
func (s *Session) BeginFinalization() error { return s.transition(State.BeginFinalization) }

// Complete marks the session Completed on confirmed remote acceptance.
func (s *Session) Complete() error { return s.transition(State.Complete) }

// ReturnToReview brings a rejected submission back to Reviewing.
func (s *Session) ReturnToReview() error { return s.transition(State.ReturnToReview) }

// Cancel marks the session Cancelled on explicit operator reset.
func (s *Session) Cancel() error { return s.transition(State.Cancel) }

// MergeCandidates inserts classified candidates with duplicate suppression:
// candidates whose tracking number already exists are dropped silently, not
// re-validated, and the original classification is kept. Insertion order is
// preserved so the store mirrors scan order.
func (s *Session) MergeCandidates(candidates []*candidate.PackageCandidate) (MergeOutcome, error) {
	var outcome MergeOutcome
	for _, c := range candidates {
		added, err := s.candidates.Add(c)
		if err != nil {
			return outcome, err
		}
		if !added {
			outcome.Duplicates++
			continue
		}

		switch c.Validity() {
		case candidate.Valid:
			outcome.AddedValid++
		case candidate.Invalid:
			outcome.AddedInvalid++
		case candidate.Offline:
			outcome.AddedOffline++
		case candidate.Unknown:
		}
	}
	return outcome, nil
}

// RecordRejectedFormat appends codes rejected by the 12-digit format gate,
// deduplicated against previously rejected ones. Returns the number of
// newly recorded codes.
func (s *Session) RecordRejectedFormat(codes []string) int {
	seen := make(map[string]struct{}, len(s.rejectedCodes))
	for _, c := range s.rejectedCodes {
		seen[c] = struct{}{}
	}

	added := 0
	for _, code := range codes {
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		s.rejectedCodes = append(s.rejectedCodes, code)
		added++
	}
	return added
}

// RemoveCandidate deletes a candidate by identity. Removing an absent code
// is a no-op, not an error.
func (s *Session) RemoveCandidate(trackingNumber kernel.TrackingNumber) bool {
	return s.candidates.Remove(trackingNumber)
}

// UpdateCandidate applies an operator edit to an existing candidate. It
// never creates identities: an unknown tracking number is an error.
func (s *Session) UpdateCandidate(
	trackingNumber kernel.TrackingNumber,
	update func(*candidate.PackageCandidate) error,
) error {
	c, ok := s.candidates.Find(trackingNumber)
	if !ok {
		return errs.NewObjectNotFoundError("trackingNumber", trackingNumber.String())
	}
	return update(c)
}

// SetCrew replaces the crew selection with the operator's current form state.
func (s *Session) SetCrew(selection crew.Selection) {
	s.crew = selection
}

// SetScanBuffer stores the in-progress (uncommitted) scan buffer so a
// reload recovers it.
func (s *Session) SetScanBuffer(buffer string) {
	s.scanBuffer = buffer
}

// ValidCandidates returns the candidates that will enter the dispatch
// packet, in scan order.
func (s *Session) ValidCandidates() []*candidate.PackageCandidate {
	return s.candidates.Filter(candidate.Valid)
}

// OfflineCandidates returns the candidates pending revalidation, in scan
// order.
func (s *Session) OfflineCandidates() []*candidate.PackageCandidate {
	return s.candidates.Filter(candidate.Offline)
}

// FinalizationBlockers evaluates the finalization invariants and returns the
// structured list of missing requirements, crew keys first. An empty slice
// means the session may be finalized.
func (s *Session) FinalizationBlockers() []string {
	blockers := s.crew.MissingRequirements()
	if s.candidates.CountBy(candidate.Valid) == 0 {
		blockers = append(blockers, RequirementValidCandidates)
	}
	return blockers
}

// CanFinalize reports whether every finalization invariant is satisfied.
func (s *Session) CanFinalize() bool {
	return len(s.FinalizationBlockers()) == 0
}

func (s *Session) transition(apply func(State) (State, error)) error {
	next, err := apply(s.state)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

func validateSubsidiaryID(subsidiaryID string) error {
	if subsidiaryID == "" {
		return errs.NewValueIsRequiredError("subsidiaryID")
	}
	return nil
}
