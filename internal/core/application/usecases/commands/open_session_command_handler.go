package commands

import (
	"context"
	"errors"

	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/pkg/errs"
)

// OpenSessionCommandHandler handles the business logic for opening the
// capture workflow. An unfinished session for the same workflow survives
// reloads, so opening resumes it instead of creating a second one.
type OpenSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewOpenSessionCommandHandler creates a handler for session opening.
// Requires a SessionUoWFactory for transactional persistence.
func NewOpenSessionCommandHandler(uowFactory SessionUoWFactory) OpenSessionCommandHandler {
	return OpenSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the open command. Returns the resumed session when one is
// already open for the workflow, otherwise persists and returns a new one.
func (h *OpenSessionCommandHandler) Handle(
	ctx context.Context,
	cmd OpenSessionCommand,
) (*session.Session, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()

	active, err := sessionRepo.GetActive(ctx, cmd.Workflow())
	if err == nil {
		return active, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	aggregate, err := session.NewSession(cmd.SessionID(), cmd.SubsidiaryID(), cmd.Workflow())
	if err != nil {
		return nil, err
	}

	if err = sessionRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
