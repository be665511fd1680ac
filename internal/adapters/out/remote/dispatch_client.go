package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"reconcile/internal/core/domain/model/dispatch"
	"reconcile/internal/core/ports"
	"reconcile/internal/pkg/errs"
)

// DispatchClient hands assembled packets to the dispatch authority over HTTP.
// Implements ports.DispatchService.
type DispatchClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDispatchClient creates a dispatch authority client.
func NewDispatchClient(baseURL string) (*DispatchClient, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &DispatchClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

type submitRequest struct {
	SessionID    string          `json:"sessionId"`
	SubsidiaryID string          `json:"subsidiaryId"`
	Workflow     string          `json:"workflow"`
	Crew         crewBody        `json:"crew"`
	Shipments    []shipmentBody  `json:"shipments"`
	AssembledAt  time.Time       `json:"assembledAt"`
}

type crewBody struct {
	Drivers         []crewMemberBody `json:"drivers"`
	Vehicle         *vehicleBody     `json:"vehicle"`
	Routes          []crewMemberBody `json:"routes"`
	OdometerReading string           `json:"odometerReading"`
}

type crewMemberBody struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type vehicleBody struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Plates string `json:"plates"`
}

type shipmentBody struct {
	TrackingNumber string `json:"trackingNumber"`
	Priority       string `json:"priority,omitempty"`
}

type submitResponse struct {
	Folio  string `json:"folio"`
	Reason string `json:"reason,omitempty"`
}

// Submit hands the packet over. Acceptance returns the issued folio; a
// refusal comes back as *ports.SubmissionRejectedError so the caller can
// reopen the session instead of treating it as a transport fault.
func (c *DispatchClient) Submit(ctx context.Context, packet *dispatch.Packet) (string, error) {
	if err := packet.Validate(); err != nil {
		return "", err
	}

	body, err := json.Marshal(submitRequestFromPacket(packet))
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/dispatches", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("dispatch authority request failed: %w", err)
	}
	defer resp.Body.Close()

	var result submitResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		if decodeErr != nil {
			return "", fmt.Errorf("dispatch authority response is malformed: %w", decodeErr)
		}
		if result.Folio == "" {
			return "", fmt.Errorf("dispatch authority accepted without issuing a folio")
		}
		return result.Folio, nil

	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusConflict:
		reason := result.Reason
		if reason == "" {
			reason = fmt.Sprintf("refused with status %d", resp.StatusCode)
		}
		return "", &ports.SubmissionRejectedError{Reason: reason}

	default:
		return "", fmt.Errorf("dispatch authority returned status %d", resp.StatusCode)
	}
}

func submitRequestFromPacket(packet *dispatch.Packet) submitRequest {
	selection := packet.Crew()

	body := crewBody{
		Drivers:         make([]crewMemberBody, 0, len(selection.Drivers())),
		Routes:          make([]crewMemberBody, 0, len(selection.Routes())),
		OdometerReading: selection.OdometerReading(),
	}
	for _, d := range selection.Drivers() {
		body.Drivers = append(body.Drivers, crewMemberBody{ID: d.ID().String(), Name: d.Name()})
	}
	if v := selection.Vehicle(); v != nil {
		body.Vehicle = &vehicleBody{ID: v.ID().String(), Name: v.Name(), Plates: v.Plates()}
	}
	for _, r := range selection.Routes() {
		body.Routes = append(body.Routes, crewMemberBody{ID: r.ID().String(), Name: r.Name()})
	}

	shipments := make([]shipmentBody, 0, len(packet.Candidates()))
	for _, c := range packet.Candidates() {
		shipments = append(shipments, shipmentBody{
			TrackingNumber: c.TrackingNumber().String(),
			Priority:       c.Priority(),
		})
	}

	return submitRequest{
		SessionID:    packet.SessionID().String(),
		SubsidiaryID: packet.SubsidiaryID(),
		Workflow:     packet.Workflow().String(),
		Crew:         body,
		Shipments:    shipments,
		AssembledAt:  packet.AssembledAt(),
	}
}
