package candidate

import (
	"reconcile/internal/core/domain/model/kernel"
)

// Store is the ordered, deduplicated collection of classified candidates
// owned by a reconciliation session. It behaves as an ordered set keyed by
// tracking number: Add is a set-union operation, Remove of an absent code is
// a no-op, and iteration order always matches insertion order (which in turn
// matches scan order, because batch validation is strictly sequential).
type Store struct {
	order    []string
	byNumber map[string]*PackageCandidate
}

// NewStore creates an empty candidate store.
func NewStore() *Store {
	return &Store{
		byNumber: make(map[string]*PackageCandidate),
	}
}

// RestoreStore rebuilds a store from persisted candidates, preserving their
// order. Duplicate tracking numbers in the input are collapsed to the first
// occurrence.
func RestoreStore(candidates []*PackageCandidate) (*Store, error) {
	store := NewStore()
	for _, c := range candidates {
		if _, err := store.Add(c); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Add inserts a candidate unless one with the same tracking number is
// already present. Returns true when the candidate was added, false when it
// was silently dropped as a duplicate. Adding an already-present code is a
// no-op, never an error.
func (s *Store) Add(c *PackageCandidate) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}

	key := c.TrackingNumber().String()
	if _, exists := s.byNumber[key]; exists {
		return false, nil
	}

	s.order = append(s.order, key)
	s.byNumber[key] = c
	return true, nil
}

// Remove deletes the candidate with the given tracking number.
// Returns true when a candidate was removed; removing an absent code is a
// no-op and returns false.
func (s *Store) Remove(trackingNumber kernel.TrackingNumber) bool {
	key := trackingNumber.String()
	if _, exists := s.byNumber[key]; !exists {
		return false
	}

	delete(s.byNumber, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Find returns the candidate with the given tracking number.
func (s *Store) Find(trackingNumber kernel.TrackingNumber) (*PackageCandidate, bool) {
	c, ok := s.byNumber[trackingNumber.String()]
	return c, ok
}

// Contains reports whether a candidate with the given code string exists.
func (s *Store) Contains(code string) bool {
	_, ok := s.byNumber[code]
	return ok
}

// All returns the candidates in insertion order.
func (s *Store) All() []*PackageCandidate {
	out := make([]*PackageCandidate, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byNumber[key])
	}
	return out
}

// Filter returns the candidates with the given classification, in insertion
// order.
func (s *Store) Filter(validity Validity) []*PackageCandidate {
	out := make([]*PackageCandidate, 0)
	for _, key := range s.order {
		if c := s.byNumber[key]; c.Validity() == validity {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of candidates in the store.
func (s *Store) Len() int {
	return len(s.order)
}

// CountBy returns the number of candidates with the given classification.
func (s *Store) CountBy(validity Validity) int {
	count := 0
	for _, c := range s.byNumber {
		if c.Validity() == validity {
			count++
		}
	}
	return count
}
