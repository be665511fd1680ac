// Package services contains stateless domain services that operate across
// aggregates.
//
// CodeExtractor turns raw scanner/paste buffers into discrete candidate
// codes. DispatchAssembler enforces finalization invariants and shapes the
// dispatch packet from a reviewed session.
package services
