package commands

import (
	"context"
)

// RemoveCandidateCommandHandler deletes a candidate from a session.
type RemoveCandidateCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewRemoveCandidateCommandHandler creates a handler for candidate removal.
func NewRemoveCandidateCommandHandler(uowFactory SessionUoWFactory) RemoveCandidateCommandHandler {
	return RemoveCandidateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes the candidate. The session is persisted even when the
// code was not present, so the operation stays idempotent.
func (h *RemoveCandidateCommandHandler) Handle(ctx context.Context, cmd RemoveCandidateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()
	aggregate, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	aggregate.RemoveCandidate(cmd.TrackingNumber())

	if err = sessionRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
