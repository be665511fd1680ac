package commands

import (
	"context"
	"errors"
	"time"

	"reconcile/internal/core/domain/model/dispatch"
	"reconcile/internal/core/domain/services"
	"reconcile/internal/core/ports"
)

// FinalizeSessionCommandHandler handles the business logic for session
// finalization: assembling the dispatch packet, handing it to the dispatch
// authority, and retiring the session.
//
// On acceptance the session is cleared from durable storage and an
// immutable record with the issued folio is written in the same
// transaction. On rejection the session returns to review untouched, so
// the operator can correct it and resubmit.
type FinalizeSessionCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.DispatchService
	assembler  services.DispatchAssembler
	metrics    ports.MetricsRecorder
}

// NewFinalizeSessionCommandHandler creates a handler for finalization.
func NewFinalizeSessionCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.DispatchService,
	metrics ports.MetricsRecorder,
) FinalizeSessionCommandHandler {
	return FinalizeSessionCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		assembler:  services.NewDispatchAssembler(),
		metrics:    metrics,
	}
}

// Handle processes the finalization command. Returns the acceptance record
// on success, a *services.FinalizationBlockedError when requirements are
// unmet, or a *ports.SubmissionRejectedError when the authority refuses
// the packet.
func (h *FinalizeSessionCommandHandler) Handle(
	ctx context.Context,
	cmd FinalizeSessionCommand,
) (*dispatch.Record, error) {
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
	aggregate, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.BeginFinalization(); err != nil {
		return nil, err
	}

	packet, err := h.assembler.Assemble(aggregate, time.Now())
	if err != nil {
		return nil, err
	}

	folio, err := h.dispatcher.Submit(ctx, packet)
	if err != nil {
		var rejected *ports.SubmissionRejectedError
		if errors.As(err, &rejected) {
			_ = aggregate.ReturnToReview()
		}
		return nil, err
	}

	record, err := dispatch.NewRecord(packet, folio, time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.DispatchRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	if err = aggregate.Complete(); err != nil {
		return nil, err
	}

	if err = sessionRepo.Delete(ctx, aggregate.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.SessionFinalized(aggregate.Workflow(), record.PackageCount())
	return record, nil
}
