package remote_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconcile/internal/adapters/out/remote"
	"reconcile/internal/core/domain/model/candidate"
	"reconcile/internal/core/domain/model/crew"
	"reconcile/internal/core/domain/model/dispatch"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/core/ports"
)

func TestNewDispatchClient_RequiresBaseURL(t *testing.T) {
	_, err := remote.NewDispatchClient("")
	assert.Error(t, err)
}

func TestDispatchClient_Submit_Accepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/dispatches", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "SUB-01", body["subsidiaryId"])
		require.Len(t, body["shipments"], 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"folio": "F-2026-0001"}`))
	}))
	defer server.Close()

	client, err := remote.NewDispatchClient(server.URL)
	require.NoError(t, err)

	folio, err := client.Submit(t.Context(), testPacket(t))
	require.NoError(t, err)
	assert.Equal(t, "F-2026-0001", folio)
}

func TestDispatchClient_Submit_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"reason": "manifest already closed for today"}`))
	}))
	defer server.Close()

	client, err := remote.NewDispatchClient(server.URL)
	require.NoError(t, err)

	_, err = client.Submit(t.Context(), testPacket(t))
	require.Error(t, err)

	var rejected *ports.SubmissionRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "manifest already closed for today", rejected.Reason)
}

func TestDispatchClient_Submit_ServerErrorIsNotRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := remote.NewDispatchClient(server.URL)
	require.NoError(t, err)

	_, err = client.Submit(t.Context(), testPacket(t))
	require.Error(t, err)

	var rejected *ports.SubmissionRejectedError
	assert.False(t, errors.As(err, &rejected), "A transport fault must not read as an authority refusal")
}

func TestDispatchClient_Submit_MissingFolio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := remote.NewDispatchClient(server.URL)
	require.NoError(t, err)

	_, err = client.Submit(t.Context(), testPacket(t))
	assert.Error(t, err)
}

func testPacket(t *testing.T) *dispatch.Packet {
	t.Helper()

	number, err := kernel.NewTrackingNumber("000011112222")
	require.NoError(t, err)
	valid, err := candidate.NewValidCandidate(number, "standard", false, false, nil, nil)
	require.NoError(t, err)

	driver, err := crew.NewDriver(kernel.NewUUID(), "R. Salas")
	require.NoError(t, err)
	vehicle, err := crew.NewVehicle(kernel.NewUUID(), "Unit 42", "XYZ-123-A")
	require.NoError(t, err)
	route, err := crew.NewRoute(kernel.NewUUID(), "North Loop")
	require.NoError(t, err)
	selection, err := crew.NewSelection([]crew.Driver{driver}, &vehicle, []crew.Route{route}, "128400")
	require.NoError(t, err)

	packet, err := dispatch.NewPacket(
		kernel.NewUUID(),
		"SUB-01",
		session.WorkflowDispatch,
		selection,
		[]*candidate.PackageCandidate{valid},
		time.Now(),
	)
	require.NoError(t, err)
	return packet
}
