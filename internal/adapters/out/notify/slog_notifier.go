// Package notify publishes session change notifications. The background
// revalidation job mutates sessions without an operator request in flight,
// so changes are surfaced here for whoever watches the logs or tails the
// structured stream.
package notify

import (
	"context"
	"log/slog"

	"reconcile/internal/core/domain/model/session"
)

// SlogNotifier implements ports.SessionNotifier by logging a structured
// summary of the changed session.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier writing to the given logger.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

// SessionChanged logs the session's current classification tallies.
func (n *SlogNotifier) SessionChanged(ctx context.Context, aggregate *session.Session) {
	n.logger.InfoContext(ctx, "session changed outside operator request",
		"session_id", aggregate.ID().String(),
		"workflow", aggregate.Workflow().String(),
		"state", aggregate.State().String(),
		"candidates", len(aggregate.Candidates().All()),
		"offline", len(aggregate.OfflineCandidates()),
	)
}
