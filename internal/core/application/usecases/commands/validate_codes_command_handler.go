package commands

import (
	"context"
	"fmt"
	"math"

	"reconcile/internal/core/domain/model/candidate"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/ports"
)

// ValidationOutcome summarizes one batch for user feedback
// ("12 added, 2 invalid").
type ValidationOutcome struct {
	AddedValid     int
	AddedInvalid   int
	AddedOffline   int
	Duplicates     int
	RejectedFormat []string
}

// ValidateCodesCommandHandler handles the business logic for batch
// validation.
//
// Codes failing the 12-digit format gate are recorded on the session and
// never sent to the validation authority. The rest are validated
// sequentially, one at a time, so progress is monotonic and the authority
// is not burst-loaded. A remote failure classifies that code Offline and
// the batch continues; batch validation never fails as a whole because of
// one bad code. Codes already present in the session are skipped without a
// remote call but still counted toward progress.
//
// Cancelling the context stops the queue after the in-flight code; the
// candidates classified before that point are merged and persisted.
type ValidateCodesCommandHandler struct {
	uowFactory SessionUoWFactory
	validator  ports.ValidationService
	observer   ports.BatchObserver
	metrics    ports.MetricsRecorder
}

// NewValidateCodesCommandHandler creates a handler for batch validation.
func NewValidateCodesCommandHandler(
	uowFactory SessionUoWFactory,
	validator ports.ValidationService,
	observer ports.BatchObserver,
	metrics ports.MetricsRecorder,
) ValidateCodesCommandHandler {
	return ValidateCodesCommandHandler{
		uowFactory: uowFactory,
		validator:  validator,
		observer:   observer,
		metrics:    metrics,
	}
}

// Handle processes the batch and merges the results into the session.
func (h *ValidateCodesCommandHandler) Handle(
	ctx context.Context,
	cmd ValidateCodesCommand,
) (ValidationOutcome, error) {
	var outcome ValidationOutcome

	if err := cmd.Validate(); err != nil {
		return outcome, err
	}

	// Persistence runs on a detached context. Cancelling the batch stops
	// further validation calls but must not roll back the candidates
	// classified before the cancellation point.
	dbCtx := context.WithoutCancel(ctx)

	uow := h.uowFactory.Create()
	if err := uow.Begin(dbCtx); err != nil {
		return outcome, err
	}

	defer func() {
		_ = uow.Rollback(dbCtx)
	}()

	sessionRepo := uow.SessionRepository()
	aggregate, err := sessionRepo.Get(dbCtx, cmd.SessionID())
	if err != nil {
		return outcome, err
	}

	if len(cmd.Codes()) == 0 {
		return outcome, nil
	}

	if err = aggregate.BeginValidation(); err != nil {
		return outcome, err
	}

	wellFormed, rejected := partitionByFormat(cmd.Codes())
	outcome.RejectedFormat = rejected
	aggregate.RecordRejectedFormat(rejected)

	classified := make([]*candidate.PackageCandidate, 0, len(wellFormed))
	total := len(wellFormed)
	for i, trackingNumber := range wellFormed {
		if ctx.Err() != nil {
			break
		}

		if aggregate.Candidates().Contains(trackingNumber.String()) {
			outcome.Duplicates++
			h.observer.Progress(progressPercent(i+1, total))
			continue
		}

		result, err := h.classify(ctx, trackingNumber, aggregate.SubsidiaryID())
		if err != nil {
			return outcome, err
		}

		classified = append(classified, result)
		h.metrics.CandidateClassified(aggregate.Workflow(), result.Validity().String())
		h.observer.Progress(progressPercent(i+1, total))
	}

	merged, err := aggregate.MergeCandidates(classified)
	if err != nil {
		return outcome, err
	}

	outcome.AddedValid = merged.AddedValid
	outcome.AddedInvalid = merged.AddedInvalid
	outcome.AddedOffline = merged.AddedOffline
	outcome.Duplicates += merged.Duplicates

	if err = aggregate.FinishValidation(); err != nil {
		return outcome, err
	}

	if err = sessionRepo.Update(dbCtx, aggregate); err != nil {
		return outcome, err
	}

	if err = uow.Commit(dbCtx); err != nil {
		return outcome, err
	}

	return outcome, nil
}

// classify asks the validation authority about one code. A transport
// failure becomes an Offline classification rather than an error.
func (h *ValidateCodesCommandHandler) classify(
	ctx context.Context,
	trackingNumber kernel.TrackingNumber,
	subsidiaryID string,
) (*candidate.PackageCandidate, error) {
	result, err := h.validator.Validate(ctx, trackingNumber.String(), subsidiaryID)
	if err == nil {
		return result, nil
	}

	return candidate.NewOfflineCandidate(
		trackingNumber,
		fmt.Sprintf("validation authority unreachable: %v", err),
	)
}

func partitionByFormat(codes []string) ([]kernel.TrackingNumber, []string) {
	wellFormed := make([]kernel.TrackingNumber, 0, len(codes))
	var rejected []string

	for _, code := range codes {
		trackingNumber, err := kernel.NewTrackingNumber(code)
		if err != nil || !trackingNumber.IsWellFormed() {
			rejected = append(rejected, code)
			continue
		}
		wellFormed = append(wellFormed, trackingNumber)
	}

	return wellFormed, rejected
}

func progressPercent(done, total int) int {
	return int(math.Round(float64(done) / float64(total) * 100))
}
