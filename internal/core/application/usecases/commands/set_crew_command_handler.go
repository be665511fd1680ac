package commands

import (
	"context"
)

// SetCrewCommandHandler replaces the crew selection on a session.
type SetCrewCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewSetCrewCommandHandler creates a handler for crew selection.
func NewSetCrewCommandHandler(uowFactory SessionUoWFactory) SetCrewCommandHandler {
	return SetCrewCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the crew selection to the session.
func (h *SetCrewCommandHandler) Handle(ctx context.Context, cmd SetCrewCommand) error {
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

	aggregate.SetCrew(cmd.Selection())

	if err = sessionRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
