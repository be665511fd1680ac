package commands

import (
	"context"

	"reconcile/internal/core/domain/model/candidate"
)

// UpdateCandidateCommandHandler patches operator-editable fields on an
// existing candidate.
type UpdateCandidateCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewUpdateCandidateCommandHandler creates a handler for candidate edits.
func NewUpdateCandidateCommandHandler(uowFactory SessionUoWFactory) UpdateCandidateCommandHandler {
	return UpdateCandidateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the patch. An unknown tracking number is an error, since
// edits must never create new identities.
func (h *UpdateCandidateCommandHandler) Handle(ctx context.Context, cmd UpdateCandidateCommand) error {
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

	err = aggregate.UpdateCandidate(cmd.TrackingNumber(), func(c *candidate.PackageCandidate) error {
		if reason := cmd.Reason(); reason != nil {
			if err := c.SetReason(*reason); err != nil {
				return err
			}
		}
		if priority := cmd.Priority(); priority != nil {
			c.SetPriority(*priority)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
