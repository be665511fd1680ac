// Package candidate models shipment codes after they have been classified by
// the validation authority. It contains:
//
//   - Validity: the closed classification variant (Valid, Invalid, Offline)
//     that replaces stringly-typed status flowing between components
//   - Payment, Recipient: detail value objects carried by Valid candidates
//   - PackageCandidate: the classified shipment entity, keyed by its
//     tracking number
//   - Store: the ordered, deduplicated collection of candidates owned by a
//     reconciliation session
//
// A candidate's display flags (charge, high value, payment presence) are
// fixed at classification time and never recomputed, so operator edits to
// reason or priority cannot retroactively change packet composition.
package candidate
