package commands

import (
	"context"

	"reconcile/internal/core/domain/services"
)

// IngestScanCommandHandler turns a committed buffer into candidate codes and
// moves the session into scanning. The extracted codes are handed back to
// the caller, which feeds them to batch validation; the session's working
// buffer is reset so the next scan starts clean.
type IngestScanCommandHandler struct {
	uowFactory SessionUoWFactory
	extractor  services.CodeExtractor
}

// NewIngestScanCommandHandler creates a handler for scan ingestion.
func NewIngestScanCommandHandler(uowFactory SessionUoWFactory) IngestScanCommandHandler {
	return IngestScanCommandHandler{
		uowFactory: uowFactory,
		extractor:  services.NewCodeExtractor(),
	}
}

// Handle processes the committed buffer. Returns the extracted codes in
// input order, de-duplicated within the buffer.
func (h *IngestScanCommandHandler) Handle(ctx context.Context, cmd IngestScanCommand) ([]string, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	event, err := services.NewRawScanEvent(cmd.Text(), cmd.Source())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = aggregate.StartScanning(); err != nil {
		return nil, err
	}

	codes := h.extractor.Extract(event)
	aggregate.SetScanBuffer("")

	if err = sessionRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return codes, nil
}
