package dispatch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconcile/internal/core/domain/model/candidate"
	"reconcile/internal/core/domain/model/crew"
	"reconcile/internal/core/domain/model/dispatch"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
)

func completeCrew(t *testing.T) crew.Selection {
	t.Helper()

	driver, err := crew.NewDriver(kernel.NewUUID(), "Ivan Petrov")
	require.NoError(t, err)
	vehicle, err := crew.NewVehicle(kernel.NewUUID(), "Sprinter 12", "AB-123-CD")
	require.NoError(t, err)
	route, err := crew.NewRoute(kernel.NewUUID(), "North loop")
	require.NoError(t, err)

	selection, err := crew.NewSelection([]crew.Driver{driver}, &vehicle, []crew.Route{route}, "125000")
	require.NoError(t, err)
	return selection
}

func validCandidate(t *testing.T, code string) *candidate.PackageCandidate {
	t.Helper()

	tn, err := kernel.NewTrackingNumber(code)
	require.NoError(t, err)
	c, err := candidate.NewValidCandidate(tn, "express", false, false, nil, nil)
	require.NoError(t, err)
	return c
}

func Test_NewPacket(t *testing.T) {
	sessionID := kernel.NewUUID()
	crewSelection := completeCrew(t)
	candidates := []*candidate.PackageCandidate{
		validCandidate(t, "123456789012"),
		validCandidate(t, "123456789013"),
	}
	assembledAt := time.Now()

	packet, err := dispatch.NewPacket(
		sessionID, "SUB-01", session.WorkflowDispatch, crewSelection, candidates, assembledAt)

	require.NoError(t, err)
	assert.NoError(t, packet.Validate())
	assert.Equal(t, sessionID, packet.SessionID())
	assert.Equal(t, "SUB-01", packet.SubsidiaryID())
	assert.Equal(t, session.WorkflowDispatch, packet.Workflow())
	assert.Len(t, packet.Candidates(), 2)
	assert.Equal(t, assembledAt, packet.AssembledAt())
}

func Test_NewPacket_RequiresValidCandidates(t *testing.T) {
	crewSelection := completeCrew(t)

	_, err := dispatch.NewPacket(
		kernel.NewUUID(), "SUB-01", session.WorkflowDispatch, crewSelection, nil, time.Now())
	assert.ErrorIs(t, err, dispatch.ErrPacketRequiresValidCandidates)

	tn, err := kernel.NewTrackingNumber("123456789012")
	require.NoError(t, err)
	offline, err := candidate.NewOfflineCandidate(tn, "validation service unreachable")
	require.NoError(t, err)

	_, err = dispatch.NewPacket(
		kernel.NewUUID(), "SUB-01", session.WorkflowDispatch, crewSelection,
		[]*candidate.PackageCandidate{offline}, time.Now())
	assert.ErrorIs(t, err, dispatch.ErrPacketRequiresValidCandidates)
}

func Test_NewPacket_RequiresCompleteCrew(t *testing.T) {
	partial, err := crew.NewSelection(nil, nil, nil, "")
	require.NoError(t, err)

	_, err = dispatch.NewPacket(
		kernel.NewUUID(), "SUB-01", session.WorkflowDispatch, partial,
		[]*candidate.PackageCandidate{validCandidate(t, "123456789012")}, time.Now())
	assert.ErrorIs(t, err, dispatch.ErrPacketRequiresCompleteCrew)
}

func Test_NewRecord(t *testing.T) {
	packet, err := dispatch.NewPacket(
		kernel.NewUUID(), "SUB-01", session.WorkflowDispatch, completeCrew(t),
		[]*candidate.PackageCandidate{validCandidate(t, "123456789012")}, time.Now())
	require.NoError(t, err)

	acceptedAt := time.Now()
	record, err := dispatch.NewRecord(packet, "F-2024-0001", acceptedAt)

	require.NoError(t, err)
	assert.NoError(t, record.Validate())
	assert.NoError(t, record.ID().Validate())
	assert.Equal(t, packet.SessionID(), record.SessionID())
	assert.Equal(t, "F-2024-0001", record.Folio())
	assert.Equal(t, 1, record.PackageCount())
	assert.Equal(t, acceptedAt, record.AcceptedAt())
}

func Test_NewRecord_RequiresFolio(t *testing.T) {
	packet, err := dispatch.NewPacket(
		kernel.NewUUID(), "SUB-01", session.WorkflowDispatch, completeCrew(t),
		[]*candidate.PackageCandidate{validCandidate(t, "123456789012")}, time.Now())
	require.NoError(t, err)

	_, err = dispatch.NewRecord(packet, "", time.Now())
	assert.Error(t, err)
}

func Test_RestoreRecord(t *testing.T) {
	id := kernel.NewUUID()
	sessionID := kernel.NewUUID()
	acceptedAt := time.Now()

	record := dispatch.RestoreRecord(
		id, sessionID, "SUB-01", session.WorkflowCollection, "F-2024-0042", 7, acceptedAt)

	assert.NoError(t, record.Validate())
	assert.Equal(t, id, record.ID())
	assert.Equal(t, sessionID, record.SessionID())
	assert.Equal(t, session.WorkflowCollection, record.Workflow())
	assert.Equal(t, "F-2024-0042", record.Folio())
	assert.Equal(t, 7, record.PackageCount())
}
