package commands

import (
	"context"
)

// ResetSessionCommandHandler cancels a session and clears it from storage.
type ResetSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewResetSessionCommandHandler creates a handler for session reset.
func NewResetSessionCommandHandler(uowFactory SessionUoWFactory) ResetSessionCommandHandler {
	return ResetSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels the session and deletes it. Cancellation is refused while
// a batch is validating or a submission is in flight.
func (h *ResetSessionCommandHandler) Handle(ctx context.Context, cmd ResetSessionCommand) error {
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

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = sessionRepo.Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
