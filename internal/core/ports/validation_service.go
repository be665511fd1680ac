package ports

import (
	"context"

	"reconcile/internal/core/domain/model/candidate"
)

// ValidationService is the external authority that classifies candidate
// codes.
//
// Validate returns a classified candidate for codes the authority knows
// about: Valid with its detail, or Invalid with a reason. A non-nil error
// means the authority could not be reached at all; the caller is expected
// to classify the code Offline rather than abort the batch.
type ValidationService interface {
	Validate(ctx context.Context, code string, subsidiaryID string) (*candidate.PackageCandidate, error)
}

// ConnectivityProbe reports whether the validation authority is reachable.
// Used by the reconciliation job to detect connectivity restoration.
type ConnectivityProbe interface {
	Ping(ctx context.Context) error
}
