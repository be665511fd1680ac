// Package remote implements HTTP clients for the validation and dispatch
// authorities. Both speak JSON over the subsidiary's internal network, which
// is exactly the link that goes down in the field, so transport failures are
// reported distinctly from authority verdicts.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"reconcile/internal/core/domain/model/candidate"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

// ValidationClient calls the validation authority over HTTP.
// Implements ports.ValidationService and ports.ConnectivityProbe.
type ValidationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewValidationClient creates a validation authority client.
func NewValidationClient(baseURL string) (*ValidationClient, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &ValidationClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

type validateRequest struct {
	TrackingNumber string `json:"trackingNumber"`
	SubsidiaryID   string `json:"subsidiaryId"`
}

type validateResponse struct {
	Status      string         `json:"status"`
	Reason      string         `json:"reason,omitempty"`
	Priority    string         `json:"priority,omitempty"`
	IsCharge    bool           `json:"isCharge,omitempty"`
	IsHighValue bool           `json:"isHighValue,omitempty"`
	Payment     *paymentBody   `json:"payment,omitempty"`
	Recipient   *recipientBody `json:"recipient,omitempty"`
}

type paymentBody struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

type recipientBody struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
}

// Validate asks the authority to classify one code. A verdict, accepting or
// not, comes back as a classified candidate; an error means the authority
// could not be reached and the caller decides what to do with the code.
func (c *ValidationClient) Validate(
	ctx context.Context,
	code string,
	subsidiaryID string,
) (*candidate.PackageCandidate, error) {
	trackingNumber, err := kernel.NewTrackingNumber(code)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(validateRequest{TrackingNumber: code, SubsidiaryID: subsidiaryID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/shipments/validate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("validation authority request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("validation authority returned status %d", resp.StatusCode)
	}

	var verdict validateResponse
	if err = json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("validation authority response is malformed: %w", err)
	}

	if verdict.Status != "valid" {
		reason := verdict.Reason
		if reason == "" {
			reason = "rejected by validation authority"
		}
		return candidate.NewInvalidCandidate(trackingNumber, reason)
	}

	var payment *candidate.Payment
	if verdict.Payment != nil {
		p, paymentErr := candidate.NewPayment(verdict.Payment.Type, verdict.Payment.Amount)
		if paymentErr != nil {
			return nil, paymentErr
		}
		payment = &p
	}

	var recipient *candidate.Recipient
	if verdict.Recipient != nil {
		r, recipientErr := candidate.NewRecipient(
			verdict.Recipient.Name,
			verdict.Recipient.Address,
			verdict.Recipient.ZipCode,
			verdict.Recipient.Phone,
		)
		if recipientErr != nil {
			return nil, recipientErr
		}
		recipient = &r
	}

	return candidate.NewValidCandidate(
		trackingNumber,
		verdict.Priority,
		verdict.IsCharge,
		verdict.IsHighValue,
		payment,
		recipient,
	)
}

// Ping reports whether the validation authority is reachable.
func (c *ValidationClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("validation authority is unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("validation authority health check returned status %d", resp.StatusCode)
	}

	return nil
}
