package http

import (
	"strconv"
	"time"

	"reconcile/internal/core/domain/model/crew"
	"reconcile/internal/core/domain/model/kernel"
)

const defaultRecordsLimit = 20

type openSessionRequest struct {
	SubsidiaryID string `json:"subsidiaryId"`
	Workflow     string `json:"workflow"`
}

type ingestScanRequest struct {
	Text   string `json:"text"`
	Pasted bool   `json:"pasted"`
}

type saveBufferRequest struct {
	Buffer string `json:"buffer"`
}

type updateCandidateRequest struct {
	Reason   *string `json:"reason,omitempty"`
	Priority *string `json:"priority,omitempty"`
}

type crewRequest struct {
	Drivers         []crewMemberView `json:"drivers"`
	Vehicle         *vehicleView     `json:"vehicle"`
	Routes          []crewMemberView `json:"routes"`
	OdometerReading string           `json:"odometerReading"`
}

type crewMemberView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type vehicleView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Plates string `json:"plates"`
}

func (r crewRequest) toSelection() (crew.Selection, error) {
	drivers := make([]crew.Driver, 0, len(r.Drivers))
	for _, d := range r.Drivers {
		id, err := kernel.UUIDFromString(d.ID)
		if err != nil {
			return crew.Selection{}, err
		}
		driver, err := crew.NewDriver(id, d.Name)
		if err != nil {
			return crew.Selection{}, err
		}
		drivers = append(drivers, driver)
	}

	var vehicle *crew.Vehicle
	if r.Vehicle != nil {
		id, err := kernel.UUIDFromString(r.Vehicle.ID)
		if err != nil {
			return crew.Selection{}, err
		}
		v, err := crew.NewVehicle(id, r.Vehicle.Name, r.Vehicle.Plates)
		if err != nil {
			return crew.Selection{}, err
		}
		vehicle = &v
	}

	routes := make([]crew.Route, 0, len(r.Routes))
	for _, rt := range r.Routes {
		id, err := kernel.UUIDFromString(rt.ID)
		if err != nil {
			return crew.Selection{}, err
		}
		route, err := crew.NewRoute(id, rt.Name)
		if err != nil {
			return crew.Selection{}, err
		}
		routes = append(routes, route)
	}

	return crew.NewSelection(drivers, vehicle, routes, r.OdometerReading)
}

type sessionView struct {
	ID            string          `json:"id"`
	SubsidiaryID  string          `json:"subsidiaryId"`
	Workflow      string          `json:"workflow"`
	State         string          `json:"state"`
	ScanBuffer    string          `json:"scanBuffer"`
	RejectedCodes []string        `json:"rejectedCodes"`
	Candidates    []candidateView `json:"candidates"`
	Crew          crewRequest     `json:"crew"`
}

type sessionSummaryView struct {
	ID             string `json:"id"`
	SubsidiaryID   string `json:"subsidiaryId"`
	State          string `json:"state"`
	ScanBuffer     string `json:"scanBuffer"`
	ValidCount     int    `json:"validCount"`
	InvalidCount   int    `json:"invalidCount"`
	OfflineCount   int    `json:"offlineCount"`
	RejectedFormat int    `json:"rejectedFormat"`
}

type candidateView struct {
	TrackingNumber string         `json:"trackingNumber"`
	Validity       string         `json:"validity"`
	Reason         string         `json:"reason,omitempty"`
	Priority       string         `json:"priority,omitempty"`
	IsCharge       bool           `json:"isCharge"`
	IsHighValue    bool           `json:"isHighValue"`
	Payment        *paymentView   `json:"payment,omitempty"`
	Recipient      *recipientView `json:"recipient,omitempty"`
}

type paymentView struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

type recipientView struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
}

type validationOutcomeView struct {
	Extracted      []string `json:"extracted"`
	AddedValid     int      `json:"addedValid"`
	AddedInvalid   int      `json:"addedInvalid"`
	AddedOffline   int      `json:"addedOffline"`
	Duplicates     int      `json:"duplicates"`
	RejectedFormat []string `json:"rejectedFormat"`
}

type revalidationOutcomeView struct {
	Reclassified int `json:"reclassified"`
	StillOffline int `json:"stillOffline"`
}

type recordView struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"sessionId"`
	Workflow     string    `json:"workflow"`
	Folio        string    `json:"folio"`
	PackageCount int       `json:"packageCount"`
	AcceptedAt   time.Time `json:"acceptedAt"`
}

type errorView struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type blockedView struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing"`
}

func parsePositiveInt(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return value, nil
}
