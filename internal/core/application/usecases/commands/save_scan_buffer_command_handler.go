package commands

import (
	"context"
)

// SaveScanBufferCommandHandler persists the working buffer on the session.
type SaveScanBufferCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewSaveScanBufferCommandHandler creates a handler for buffer persistence.
func NewSaveScanBufferCommandHandler(uowFactory SessionUoWFactory) SaveScanBufferCommandHandler {
	return SaveScanBufferCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the buffer text on the session.
func (h *SaveScanBufferCommandHandler) Handle(ctx context.Context, cmd SaveScanBufferCommand) error {
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

	aggregate.SetScanBuffer(cmd.Buffer())

	if err = sessionRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
