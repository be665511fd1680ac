// Package http exposes the reconciliation workflow over a JSON API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"reconcile/internal/core/application/usecases/commands"
	"reconcile/internal/core/application/usecases/queries"
	"reconcile/internal/core/domain/model/candidate"
	"reconcile/internal/core/domain/model/crew"
	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/core/domain/model/session"
	"reconcile/internal/core/domain/services"
	"reconcile/internal/core/ports"
	"reconcile/internal/pkg/errs"
)

// Server handles HTTP requests for the reconciliation API.
type Server struct {
	// Command handlers
	openSessionHandler       commands.OpenSessionCommandHandler
	ingestScanHandler        commands.IngestScanCommandHandler
	validateCodesHandler     commands.ValidateCodesCommandHandler
	saveScanBufferHandler    commands.SaveScanBufferCommandHandler
	setCrewHandler           commands.SetCrewCommandHandler
	updateCandidateHandler   commands.UpdateCandidateCommandHandler
	removeCandidateHandler   commands.RemoveCandidateCommandHandler
	finalizeSessionHandler   commands.FinalizeSessionCommandHandler
	resetSessionHandler      commands.ResetSessionCommandHandler
	revalidateOfflineHandler commands.RevalidateOfflineCommandHandler

	// Query handlers
	getActiveSessionHandler   queries.GetActiveSessionQueryHandler
	getDispatchRecordHandler  queries.GetDispatchRecordQueryHandler
	getDispatchRecordsHandler queries.GetDispatchRecordsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	openSessionHandler commands.OpenSessionCommandHandler,
	ingestScanHandler commands.IngestScanCommandHandler,
	validateCodesHandler commands.ValidateCodesCommandHandler,
	saveScanBufferHandler commands.SaveScanBufferCommandHandler,
	setCrewHandler commands.SetCrewCommandHandler,
	updateCandidateHandler commands.UpdateCandidateCommandHandler,
	removeCandidateHandler commands.RemoveCandidateCommandHandler,
	finalizeSessionHandler commands.FinalizeSessionCommandHandler,
	resetSessionHandler commands.ResetSessionCommandHandler,
	revalidateOfflineHandler commands.RevalidateOfflineCommandHandler,
	getActiveSessionHandler queries.GetActiveSessionQueryHandler,
	getDispatchRecordHandler queries.GetDispatchRecordQueryHandler,
	getDispatchRecordsHandler queries.GetDispatchRecordsQueryHandler,
) *Server {
	return &Server{
		openSessionHandler:        openSessionHandler,
		ingestScanHandler:         ingestScanHandler,
		validateCodesHandler:      validateCodesHandler,
		saveScanBufferHandler:     saveScanBufferHandler,
		setCrewHandler:            setCrewHandler,
		updateCandidateHandler:    updateCandidateHandler,
		removeCandidateHandler:    removeCandidateHandler,
		finalizeSessionHandler:    finalizeSessionHandler,
		resetSessionHandler:       resetSessionHandler,
		revalidateOfflineHandler:  revalidateOfflineHandler,
		getActiveSessionHandler:   getActiveSessionHandler,
		getDispatchRecordHandler:  getDispatchRecordHandler,
		getDispatchRecordsHandler: getDispatchRecordsHandler,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/sessions", s.OpenSession)
	api.GET("/sessions/active", s.GetActiveSession)
	api.DELETE("/sessions/:id", s.ResetSession)

	api.POST("/sessions/:id/scans", s.IngestScan)
	api.PUT("/sessions/:id/buffer", s.SaveScanBuffer)
	api.PUT("/sessions/:id/crew", s.SetCrew)
	api.POST("/sessions/:id/finalization", s.FinalizeSession)
	api.GET("/sessions/:id/dispatch-record", s.GetDispatchRecord)

	api.PATCH("/sessions/:id/candidates/:trackingNumber", s.UpdateCandidate)
	api.DELETE("/sessions/:id/candidates/:trackingNumber", s.RemoveCandidate)

	api.POST("/workflows/:workflow/revalidation", s.RevalidateOffline)

	api.GET("/dispatch-records", s.GetDispatchRecords)
}

// OpenSession handles POST /api/v1/sessions. It resumes the workflow's active
// session when one exists, otherwise starts a fresh one.
func (s *Server) OpenSession(ctx echo.Context) error {
	var req openSessionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	workflow, err := session.WorkflowFromString(req.Workflow)
	if err != nil {
		return badRequest(ctx, "Invalid workflow: "+req.Workflow)
	}

	cmd, err := commands.NewOpenSessionCommand(kernel.NewUUID(), req.SubsidiaryID, workflow)
	if err != nil {
		return badRequest(ctx, "Invalid session data: "+err.Error())
	}

	aggregate, err := s.openSessionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, sessionViewFromAggregate(aggregate))
}

// GetActiveSession handles GET /api/v1/sessions/active?workflow=dispatch.
func (s *Server) GetActiveSession(ctx echo.Context) error {
	workflow, err := session.WorkflowFromString(ctx.QueryParam("workflow"))
	if err != nil {
		return badRequest(ctx, "Invalid workflow: "+ctx.QueryParam("workflow"))
	}

	query, err := queries.NewGetActiveSessionQuery(workflow)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	summary, err := s.getActiveSessionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, sessionSummaryView{
		ID:             summary.ID.String(),
		SubsidiaryID:   summary.SubsidiaryID,
		State:          summary.State,
		ScanBuffer:     summary.ScanBuffer,
		ValidCount:     summary.ValidCount,
		InvalidCount:   summary.InvalidCount,
		OfflineCount:   summary.OfflineCount,
		RejectedFormat: summary.RejectedFormat,
	})
}

// IngestScan handles POST /api/v1/sessions/:id/scans. The committed codes go
// straight into batch validation and the classification outcome comes back.
func (s *Server) IngestScan(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	var req ingestScanRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ingestCmd, err := commands.NewIngestScanCommand(sessionID, req.Text, req.Pasted)
	if err != nil {
		return badRequest(ctx, "Invalid scan data: "+err.Error())
	}

	codes, err := s.ingestScanHandler.Handle(ctx.Request().Context(), ingestCmd)
	if err != nil {
		return mapError(ctx, err)
	}

	validateCmd, err := commands.NewValidateCodesCommand(sessionID, codes)
	if err != nil {
		return badRequest(ctx, "Invalid batch: "+err.Error())
	}

	outcome, err := s.validateCodesHandler.Handle(ctx.Request().Context(), validateCmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, validationOutcomeView{
		Extracted:      codes,
		AddedValid:     outcome.AddedValid,
		AddedInvalid:   outcome.AddedInvalid,
		AddedOffline:   outcome.AddedOffline,
		Duplicates:     outcome.Duplicates,
		RejectedFormat: outcome.RejectedFormat,
	})
}

// SaveScanBuffer handles PUT /api/v1/sessions/:id/buffer. Persists the
// operator's uncommitted capture text so nothing is lost on reload.
func (s *Server) SaveScanBuffer(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	var req saveBufferRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSaveScanBufferCommand(sessionID, req.Buffer)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.saveScanBufferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetCrew handles PUT /api/v1/sessions/:id/crew. The selection may be partial;
// completeness is only enforced at finalization.
func (s *Server) SetCrew(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	var req crewRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	selection, err := req.toSelection()
	if err != nil {
		return badRequest(ctx, "Invalid crew data: "+err.Error())
	}

	cmd, err := commands.NewSetCrewCommand(sessionID, selection)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.setCrewHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCandidate handles PATCH /api/v1/sessions/:id/candidates/:trackingNumber.
func (s *Server) UpdateCandidate(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	trackingNumber, err := kernel.NewTrackingNumber(ctx.Param("trackingNumber"))
	if err != nil {
		return badRequest(ctx, "Invalid tracking number")
	}

	var req updateCandidateRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateCandidateCommand(sessionID, trackingNumber, req.Reason, req.Priority)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.updateCandidateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCandidate handles DELETE /api/v1/sessions/:id/candidates/:trackingNumber.
func (s *Server) RemoveCandidate(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	trackingNumber, err := kernel.NewTrackingNumber(ctx.Param("trackingNumber"))
	if err != nil {
		return badRequest(ctx, "Invalid tracking number")
	}

	cmd, err := commands.NewRemoveCandidateCommand(sessionID, trackingNumber)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.removeCandidateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FinalizeSession handles POST /api/v1/sessions/:id/finalization. On
// acceptance the issued folio comes back and the session is gone.
func (s *Server) FinalizeSession(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	cmd, err := commands.NewFinalizeSessionCommand(sessionID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	record, err := s.finalizeSessionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, recordView{
		ID:           record.ID().String(),
		SessionID:    record.SessionID().String(),
		Workflow:     record.Workflow().String(),
		Folio:        record.Folio(),
		PackageCount: record.PackageCount(),
		AcceptedAt:   record.AcceptedAt(),
	})
}

// ResetSession handles DELETE /api/v1/sessions/:id. Cancels the session and
// discards everything captured in it.
func (s *Server) ResetSession(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	cmd, err := commands.NewResetSessionCommand(sessionID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.resetSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RevalidateOffline handles POST /api/v1/workflows/:workflow/revalidation.
// Retries every Offline candidate of the workflow's active session once.
func (s *Server) RevalidateOffline(ctx echo.Context) error {
	workflow, err := session.WorkflowFromString(ctx.Param("workflow"))
	if err != nil {
		return badRequest(ctx, "Invalid workflow: "+ctx.Param("workflow"))
	}

	cmd, err := commands.NewRevalidateOfflineCommand(workflow)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	outcome, err := s.revalidateOfflineHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, revalidationOutcomeView{
		Reclassified: outcome.Reclassified,
		StillOffline: outcome.StillOffline,
	})
}

// GetDispatchRecord handles GET /api/v1/sessions/:id/dispatch-record. The
// session row is gone once finalization commits, so this is how a client
// recovers the folio after losing the finalization response.
func (s *Server) GetDispatchRecord(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	query, err := queries.NewGetDispatchRecordQuery(sessionID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	record, err := s.getDispatchRecordHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, recordView{
		ID:           record.ID.String(),
		SessionID:    record.SessionID.String(),
		Workflow:     record.Workflow,
		Folio:        record.Folio,
		PackageCount: record.PackageCount,
		AcceptedAt:   record.AcceptedAt,
	})
}

// GetDispatchRecords handles GET /api/v1/dispatch-records?subsidiaryId=SUB-01&limit=20.
func (s *Server) GetDispatchRecords(ctx echo.Context) error {
	limit := defaultRecordsLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := parsePositiveInt(raw)
		if err != nil {
			return badRequest(ctx, "Invalid limit: "+raw)
		}
		limit = parsed
	}

	query, err := queries.NewGetDispatchRecordsQuery(ctx.QueryParam("subsidiaryId"), limit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	records, err := s.getDispatchRecordsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]recordView, len(records))
	for i, record := range records {
		response[i] = recordView{
			ID:           record.ID.String(),
			SessionID:    record.SessionID.String(),
			Workflow:     record.Workflow,
			Folio:        record.Folio,
			PackageCount: record.PackageCount,
			AcceptedAt:   record.AcceptedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func sessionIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorView{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError translates application errors to HTTP responses. Finalization
// blockers and authority rejections are operator-correctable, so they carry
// enough detail to act on.
func mapError(ctx echo.Context, err error) error {
	var blocked *services.FinalizationBlockedError
	if errors.As(err, &blocked) {
		return ctx.JSON(http.StatusConflict, blockedView{
			Code:    http.StatusConflict,
			Message: blocked.Error(),
			Missing: blocked.Missing,
		})
	}

	var rejected *ports.SubmissionRejectedError
	if errors.As(err, &rejected) {
		return ctx.JSON(http.StatusUnprocessableEntity, errorView{
			Code:    http.StatusUnprocessableEntity,
			Message: rejected.Error(),
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorView{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusConflict, errorView{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, errorView{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}

func validityView(v candidate.Validity) string {
	return v.String()
}

func sessionViewFromAggregate(aggregate *session.Session) sessionView {
	all := aggregate.Candidates().All()
	candidates := make([]candidateView, 0, len(all))
	for _, c := range all {
		view := candidateView{
			TrackingNumber: c.TrackingNumber().String(),
			Validity:       validityView(c.Validity()),
			Reason:         c.Reason(),
			Priority:       c.Priority(),
			IsCharge:       c.IsCharge(),
			IsHighValue:    c.IsHighValue(),
		}
		if p := c.Payment(); p != nil {
			view.Payment = &paymentView{Type: p.Type(), Amount: p.Amount()}
		}
		if r := c.Recipient(); r != nil {
			view.Recipient = &recipientView{
				Name:    r.Name(),
				Address: r.Address(),
				ZipCode: r.ZipCode(),
				Phone:   r.Phone(),
			}
		}
		candidates = append(candidates, view)
	}

	return sessionView{
		ID:            aggregate.ID().String(),
		SubsidiaryID:  aggregate.SubsidiaryID(),
		Workflow:      aggregate.Workflow().String(),
		State:         aggregate.State().String(),
		ScanBuffer:    aggregate.ScanBuffer(),
		RejectedCodes: aggregate.RejectedCodes(),
		Candidates:    candidates,
		Crew:          crewViewFromSelection(aggregate.Crew()),
	}
}

func crewViewFromSelection(selection crew.Selection) crewRequest {
	view := crewRequest{
		Drivers:         make([]crewMemberView, 0, len(selection.Drivers())),
		Routes:          make([]crewMemberView, 0, len(selection.Routes())),
		OdometerReading: selection.OdometerReading(),
	}
	for _, d := range selection.Drivers() {
		view.Drivers = append(view.Drivers, crewMemberView{ID: d.ID().String(), Name: d.Name()})
	}
	if v := selection.Vehicle(); v != nil {
		view.Vehicle = &vehicleView{ID: v.ID().String(), Name: v.Name(), Plates: v.Plates()}
	}
	for _, r := range selection.Routes() {
		view.Routes = append(view.Routes, crewMemberView{ID: r.ID().String(), Name: r.Name()})
	}
	return view
}
