package candidate

import (
	"errors"
	"fmt"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/errs"
)

var (
	// ErrCandidateIsNotConstructed is returned when a PackageCandidate was
	// not created through one of the factory functions.
	ErrCandidateIsNotConstructed = errors.New(
		"PackageCandidate must be created via NewValidCandidate, NewInvalidCandidate, or NewOfflineCandidate",
	)

	// ErrReasonIsRequired is returned when an Invalid or Offline candidate
	// is created without a human-readable reason.
	ErrReasonIsRequired = errors.New("reason is required for Invalid and Offline candidates")

	// ErrCandidateIsNotReclassifiable is returned when Reclassify is called
	// on a candidate that is not Offline.
	ErrCandidateIsNotReclassifiable = errors.New("only Offline candidates can be reclassified")

	// ErrReclassifyIdentityMismatch is returned when a revalidation result
	// carries a different tracking number than the candidate it reclassifies.
	ErrReclassifyIdentityMismatch = errors.New("reclassification must preserve the tracking number")
)

// Payment describes the collect-on-delivery detail attached to a candidate
// by the validation authority.
type Payment struct {
	paymentType string
	amount      float64
}

// NewPayment creates a payment detail. The type is required and the amount
// must not be negative.
func NewPayment(paymentType string, amount float64) (Payment, error) {
	if paymentType == "" {
		return Payment{}, errs.NewValueIsRequiredError("paymentType")
	}
	if amount < 0 {
		return Payment{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%f is negative", amount))
	}
	return Payment{paymentType: paymentType, amount: amount}, nil
}

// Type returns the payment type reported by the validation authority.
func (p Payment) Type() string {
	return p.paymentType
}

// Amount returns the payment amount.
func (p Payment) Amount() float64 {
	return p.amount
}

// Recipient describes the delivery recipient attached to a Valid candidate.
type Recipient struct {
	name    string
	address string
	zipCode string
	phone   string
}

// NewRecipient creates a recipient detail. Only the name is required; the
// remaining fields are whatever the validation authority reported.
func NewRecipient(name, address, zipCode, phone string) (Recipient, error) {
	if name == "" {
		return Recipient{}, errs.NewValueIsRequiredError("recipient name")
	}
	return Recipient{name: name, address: address, zipCode: zipCode, phone: phone}, nil
}

// Name returns the recipient name.
func (r Recipient) Name() string { return r.name }

// Address returns the recipient street address.
func (r Recipient) Address() string { return r.address }

// ZipCode returns the recipient postal code.
func (r Recipient) ZipCode() string { return r.zipCode }

// Phone returns the recipient contact phone.
func (r Recipient) Phone() string { return r.phone }

// PackageCandidate is a scanned shipment code together with its
// classification. Identity is the tracking number: a session never holds two
// candidates with the same one. A candidate is immutable once classified
// except for the operator-editable fields (reason and priority) and the
// single in-place reclassification allowed for Offline candidates.
type PackageCandidate struct {
	trackingNumber kernel.TrackingNumber
	validity       Validity
	reason         string
	priority       string
	isCharge       bool
	isHighValue    bool
	payment        *Payment
	recipient      *Recipient

	isConstructed bool
}

// NewValidCandidate creates a candidate accepted by the validation
// authority, carrying the detail the authority reported. The display flags
// are fixed here and never recomputed.
func NewValidCandidate(
	trackingNumber kernel.TrackingNumber,
	priority string,
	isCharge, isHighValue bool,
	payment *Payment,
	recipient *Recipient,
) (*PackageCandidate, error) {
	if err := trackingNumber.Validate(); err != nil {
		return nil, err
	}

	return &PackageCandidate{
		trackingNumber: trackingNumber,
		validity:       Valid,
		priority:       priority,
		isCharge:       isCharge,
		isHighValue:    isHighValue,
		payment:        payment,
		recipient:      recipient,
		isConstructed:  true,
	}, nil
}

// NewInvalidCandidate creates a candidate rejected by the validation
// authority. The reason is mandatory so the operator always sees why.
func NewInvalidCandidate(trackingNumber kernel.TrackingNumber, reason string) (*PackageCandidate, error) {
	if err := errors.Join(
		trackingNumber.Validate(),
		validateReason(reason),
	); err != nil {
		return nil, err
	}

	return &PackageCandidate{
		trackingNumber: trackingNumber,
		validity:       Invalid,
		reason:         reason,
		isConstructed:  true,
	}, nil
}

// NewOfflineCandidate creates a candidate whose remote validation failed for
// transient reasons. The reason is mandatory; Offline candidates are never
// created without one.
func NewOfflineCandidate(trackingNumber kernel.TrackingNumber, reason string) (*PackageCandidate, error) {
	if err := errors.Join(
		trackingNumber.Validate(),
		validateReason(reason),
	); err != nil {
		return nil, err
	}

	return &PackageCandidate{
		trackingNumber: trackingNumber,
		validity:       Offline,
		reason:         reason,
		isConstructed:  true,
	}, nil
}

// RestoreCandidate reconstructs a candidate from persistence. All
// classification detail is taken as stored; the Offline-reason invariant is
// still enforced.
func RestoreCandidate(
	trackingNumber kernel.TrackingNumber,
	validity Validity,
	reason, priority string,
	isCharge, isHighValue bool,
	payment *Payment,
	recipient *Recipient,
) (*PackageCandidate, error) {
	if err := errors.Join(
		trackingNumber.Validate(),
		validity.Validate(),
	); err != nil {
		return nil, err
	}

	if validity.RequiresReason() && reason == "" {
		return nil, ErrReasonIsRequired
	}

	return &PackageCandidate{
		trackingNumber: trackingNumber,
		validity:       validity,
		reason:         reason,
		priority:       priority,
		isCharge:       isCharge,
		isHighValue:    isHighValue,
		payment:        payment,
		recipient:      recipient,
		isConstructed:  true,
	}, nil
}

// Validate ensures the candidate was created through a factory function.
func (c *PackageCandidate) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCandidateIsNotConstructed
	}
	return nil
}

// IsEqual compares two candidates by tracking number.
func (c *PackageCandidate) IsEqual(other *PackageCandidate) bool {
	return other != nil && c.trackingNumber.IsEqual(other.trackingNumber)
}

// TrackingNumber returns the candidate's identity.
func (c *PackageCandidate) TrackingNumber() kernel.TrackingNumber {
	return c.trackingNumber
}

// Validity returns the current classification.
func (c *PackageCandidate) Validity() Validity {
	return c.validity
}

// Reason returns the human-readable classification reason.
// Empty for Valid candidates unless the operator set one.
func (c *PackageCandidate) Reason() string {
	return c.reason
}

// Priority returns the service priority reported at validation time.
func (c *PackageCandidate) Priority() string {
	return c.priority
}

// IsCharge reports whether the shipment carries a collect-on-delivery charge.
func (c *PackageCandidate) IsCharge() bool {
	return c.isCharge
}

// IsHighValue reports whether the shipment was flagged as high value.
func (c *PackageCandidate) IsHighValue() bool {
	return c.isHighValue
}

// Payment returns the payment detail, or nil when none was reported.
func (c *PackageCandidate) Payment() *Payment {
	return c.payment
}

// Recipient returns the recipient detail, or nil when none was reported.
func (c *PackageCandidate) Recipient() *Recipient {
	return c.recipient
}

// SetReason updates the operator-editable reason. Used on return workflows
// where the operator records a disposition; it never changes classification.
func (c *PackageCandidate) SetReason(reason string) error {
	if c.validity.RequiresReason() && reason == "" {
		return ErrReasonIsRequired
	}
	c.reason = reason
	return nil
}

// SetPriority updates the operator-editable priority field.
func (c *PackageCandidate) SetPriority(priority string) {
	c.priority = priority
}

// Reclassify applies a revalidation result to an Offline candidate in
// place. The identity is preserved: the result must carry the same tracking
// number, and no new candidate is created. A result that is itself Offline
// keeps the candidate pending with the fresher reason.
func (c *PackageCandidate) Reclassify(result *PackageCandidate) error {
	if err := result.Validate(); err != nil {
		return err
	}

	if !c.validity.CanReclassify() {
		return ErrCandidateIsNotReclassifiable
	}

	if !c.trackingNumber.IsEqual(result.trackingNumber) {
		return ErrReclassifyIdentityMismatch
	}

	c.validity = result.validity
	c.reason = result.reason
	c.priority = result.priority
	c.isCharge = result.isCharge
	c.isHighValue = result.isHighValue
	c.payment = result.payment
	c.recipient = result.recipient
	return nil
}

// MarkStillOffline refreshes the reason on a pending Offline candidate
// after a failed revalidation attempt. The candidate stays Offline and is
// not retried until the next connectivity-restoration event.
func (c *PackageCandidate) MarkStillOffline(reason string) error {
	if c.validity != Offline {
		return ErrCandidateIsNotReclassifiable
	}
	if reason == "" {
		return ErrReasonIsRequired
	}
	c.reason = reason
	return nil
}

func validateReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}
	return nil
}
