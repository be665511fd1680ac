package commands

import (
	"context"
	"fmt"

	"reconcile/internal/core/ports"
)

// RevalidationOutcome summarizes one revalidation pass.
type RevalidationOutcome struct {
	Reclassified int
	StillOffline int
}

// RevalidateOfflineCommandHandler resubmits Offline candidates to the
// validation authority. Each candidate is retried exactly once per pass; a
// candidate that fails again keeps its Offline classification with an
// updated reason and waits for the next connectivity restoration.
type RevalidateOfflineCommandHandler struct {
	uowFactory SessionUoWFactory
	validator  ports.ValidationService
	metrics    ports.MetricsRecorder
	notifier   ports.SessionNotifier
}

// NewRevalidateOfflineCommandHandler creates a handler for offline
// revalidation. The notifier is told about the mutated session because this
// mutation is not operator-triggered and the UI learns about it no other way.
func NewRevalidateOfflineCommandHandler(
	uowFactory SessionUoWFactory,
	validator ports.ValidationService,
	metrics ports.MetricsRecorder,
	notifier ports.SessionNotifier,
) RevalidateOfflineCommandHandler {
	return RevalidateOfflineCommandHandler{
		uowFactory: uowFactory,
		validator:  validator,
		metrics:    metrics,
		notifier:   notifier,
	}
}

// Handle runs one revalidation pass over the workflow's active session.
// Returns errs.ObjectNotFoundError when no session is open for the workflow.
func (h *RevalidateOfflineCommandHandler) Handle(
	ctx context.Context,
	cmd RevalidateOfflineCommand,
) (RevalidationOutcome, error) {
	var outcome RevalidationOutcome

	if err := cmd.Validate(); err != nil {
		return outcome, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return outcome, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()
	aggregate, err := sessionRepo.GetActive(ctx, cmd.Workflow())
	if err != nil {
		return outcome, err
	}

	offline := aggregate.OfflineCandidates()
	if len(offline) == 0 {
		return outcome, nil
	}

	for _, stale := range offline {
		result, err := h.validator.Validate(ctx, stale.TrackingNumber().String(), aggregate.SubsidiaryID())
		if err != nil {
			if err = stale.MarkStillOffline(
				fmt.Sprintf("validation authority unreachable: %v", err),
			); err != nil {
				return outcome, err
			}
			outcome.StillOffline++
			continue
		}

		if err = stale.Reclassify(result); err != nil {
			return outcome, err
		}

		outcome.Reclassified++
		h.metrics.CandidateClassified(aggregate.Workflow(), stale.Validity().String())
	}

	if err = sessionRepo.Update(ctx, aggregate); err != nil {
		return outcome, err
	}

	if err = uow.Commit(ctx); err != nil {
		return outcome, err
	}

	h.notifier.SessionChanged(ctx, aggregate)
	return outcome, nil
}
