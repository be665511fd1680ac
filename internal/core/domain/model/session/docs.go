// Package session contains the ReconciliationSession aggregate: the unit of
// state, persistence, and finalization for one dispatch, collection, or
// devolution operation.
//
// The aggregate owns all scanned candidates exclusively and is mutated only
// through named operations (merge, remove, update, crew changes, state
// transitions). It enforces the cross-list uniqueness rule (a tracking
// number appears at most once across classified candidates and at most once
// across rejected-format codes) and the finalization checks gating
// packet assembly.
//
// State follows a closed machine:
//
//	Idle ──> Scanning ──> Validating ──> Reviewing ──> Finalizing ──> Completed
//	              ^                          │  ^            │
//	              └──────────────────────────┘  └────────────┘
//	                 (more codes)                (submission rejected)
//
// Reviewing additionally exits to Cancelled on explicit operator reset.
// Validating always returns to Reviewing, success or partial failure; it
// never jumps to Completed.
package session
