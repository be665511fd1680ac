// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"reconcile/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SessionRepoFactory provides access to the session repository within a transaction.
	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	// DispatchRepoFactory provides access to the dispatch repository within a transaction.
	DispatchRepoFactory interface {
		DispatchRepository() ports.DispatchRepository
	}

	// SessionUoW manages transactions for session-only operations.
	// Used when commands only modify session aggregates.
	SessionUoW interface {
		TxManager
		SessionRepoFactory
	}

	// SessionUoWFactory creates new session unit of work instances.
	SessionUoWFactory interface {
		Create() SessionUoW
	}

	// UoW manages transactions across session and dispatch aggregates.
	// Used by finalization, which clears the session and writes the
	// acceptance record atomically.
	UoW interface {
		TxManager
		SessionRepoFactory
		DispatchRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
