// Package kernel provides core domain primitives for the reconciliation
// service. It implements fundamental building blocks following Domain-Driven
// Design principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - TrackingNumber: A value object for shipment identifier codes, carrying
//     the strict 12-digit format gate applied before remote validation
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are designed to be
// immutable and thread-safe, making them suitable for concurrent use.
package kernel
