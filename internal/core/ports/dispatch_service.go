package ports

import (
	"context"
	"fmt"

	"reconcile/internal/core/domain/model/dispatch"
)

// SubmissionRejectedError is returned by DispatchService.Submit when the
// dispatch authority refuses the packet. The session stays open so the
// operator can correct it and resubmit.
type SubmissionRejectedError struct {
	Reason string
}

// Error implements the error interface.
func (e *SubmissionRejectedError) Error() string {
	return fmt.Sprintf("dispatch submission rejected: %s", e.Reason)
}

// DispatchService is the external dispatch authority. Submit hands over an
// assembled packet and returns the folio issued on acceptance.
//
// A *SubmissionRejectedError means the authority processed and refused the
// packet; any other error means the handover itself failed.
type DispatchService interface {
	Submit(ctx context.Context, packet *dispatch.Packet) (folio string, err error)
}
