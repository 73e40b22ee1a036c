// Package http exposes the freight operations over a REST API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"net/http"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the freight API.
type Server struct {
	// Command handlers
	createConsolidationHandler commands.CreateConsolidationCommandHandler
	advanceStatusHandler       commands.AdvanceConsolidationStatusCommandHandler
	generateBulkInvoices       commands.GenerateBulkInvoicesCommandHandler

	// Query handlers
	resolveTariffHandler queries.ResolveTariffQueryHandler
	getHistoryHandler    queries.GetConsolidationHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createConsolidationHandler commands.CreateConsolidationCommandHandler,
	advanceStatusHandler commands.AdvanceConsolidationStatusCommandHandler,
	generateBulkInvoices commands.GenerateBulkInvoicesCommandHandler,
	resolveTariffHandler queries.ResolveTariffQueryHandler,
	getHistoryHandler queries.GetConsolidationHistoryQueryHandler,
) *Server {
	return &Server{
		createConsolidationHandler: createConsolidationHandler,
		advanceStatusHandler:       advanceStatusHandler,
		generateBulkInvoices:       generateBulkInvoices,
		resolveTariffHandler:       resolveTariffHandler,
		getHistoryHandler:          getHistoryHandler,
	}
}

// RegisterRoutes attaches the freight API routes to an echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/consolidations", s.CreateConsolidation)
	api.POST("/consolidations/:id/status", s.AdvanceConsolidationStatus)
	api.POST("/consolidations/:id/invoices", s.GenerateInvoices)
	api.GET("/consolidations/:id/history", s.GetConsolidationHistory)
	api.GET("/tariffs/quote", s.QuoteTariff)
	e.GET("/health", s.Health)
}

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewConsolidationRequest is the body of POST /consolidations.
type NewConsolidationRequest struct {
	Code          string   `json:"code"`
	OriginID      string   `json:"originId"`
	DestinationID string   `json:"destinationId"`
	ParcelIDs     []string `json:"parcelIds"`
	Actor         string   `json:"actor"`
}

// ConsolidationCreatedResponse is the body of a successful creation.
type ConsolidationCreatedResponse struct {
	ID string `json:"id"`
}

// StatusUpdateRequest is the body of POST /consolidations/:id/status.
// Label carries the operator-facing status label text; City and Comment are
// optional audit data.
type StatusUpdateRequest struct {
	Label          string `json:"label"`
	City           string `json:"city"`
	Comment        string `json:"comment"`
	NotifyEmail    bool   `json:"notifyEmail"`
	NotifyWhatsapp bool   `json:"notifyWhatsapp"`
	Actor          string `json:"actor"`
}

// BillingOutcomeResponse is one per-client result of a bulk billing run.
type BillingOutcomeResponse struct {
	ClientID  string `json:"clientId,omitempty"`
	InvoiceID string `json:"invoiceId,omitempty"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

// HistoryEventResponse is one audit event of a consolidation.
type HistoryEventResponse struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	City           string    `json:"city,omitempty"`
	Comment        string    `json:"comment,omitempty"`
	NotifyEmail    bool      `json:"notifyEmail"`
	NotifyWhatsapp bool      `json:"notifyWhatsapp"`
	Actor          string    `json:"actor"`
	EventDate      time.Time `json:"eventDate"`
}

// TariffQuoteResponse is the body of GET /tariffs/quote.
type TariffQuoteResponse struct {
	TierID     string  `json:"tierId"`
	Service    string  `json:"service"`
	ChargeType string  `json:"chargeType"`
	Rate       float64 `json:"rate"`
	Amount     float64 `json:"amount"`
	Fallback   bool    `json:"fallback"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateConsolidation handles POST /api/v1/consolidations.
// Groups the selected parcels into a new master shipment.
func (s *Server) CreateConsolidation(ctx echo.Context) error {
	var req NewConsolidationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	originID, err := kernel.UUIDFromString(req.OriginID)
	if err != nil {
		return badRequest(ctx, "Invalid origin ID: "+err.Error())
	}
	destinationID, err := kernel.UUIDFromString(req.DestinationID)
	if err != nil {
		return badRequest(ctx, "Invalid destination ID: "+err.Error())
	}

	parcelIDs := make([]kernel.UUID, 0, len(req.ParcelIDs))
	for _, raw := range req.ParcelIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "Invalid parcel ID "+raw+": "+idErr.Error())
		}
		parcelIDs = append(parcelIDs, id)
	}

	consolidationID := kernel.NewUUID()
	cmd, err := commands.NewCreateConsolidationCommand(
		consolidationID, req.Code, originID, destinationID, parcelIDs, req.Actor, time.Now().UTC())
	if err != nil {
		return badRequest(ctx, "Invalid consolidation data: "+err.Error())
	}

	if err = s.createConsolidationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ConsolidationCreatedResponse{ID: consolidationID.String()})
}

// AdvanceConsolidationStatus handles POST /api/v1/consolidations/:id/status.
// Records the audit event and cascades the label to the member parcels.
func (s *Server) AdvanceConsolidationStatus(ctx echo.Context) error {
	consolidationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid consolidation ID: "+err.Error())
	}

	var req StatusUpdateRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAdvanceConsolidationStatusCommand(
		consolidationID, req.Label, req.City, req.Comment,
		req.NotifyEmail, req.NotifyWhatsapp, req.Actor, time.Now().UTC())
	if err != nil {
		return badRequest(ctx, "Invalid status update: "+err.Error())
	}

	if err = s.advanceStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GenerateInvoices handles POST /api/v1/consolidations/:id/invoices.
// Runs the bulk billing pass and returns the per-client outcomes.
func (s *Server) GenerateInvoices(ctx echo.Context) error {
	consolidationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid consolidation ID: "+err.Error())
	}

	cmd, err := commands.NewGenerateBulkInvoicesCommand(consolidationID, time.Now().UTC())
	if err != nil {
		return badRequest(ctx, "Invalid billing request: "+err.Error())
	}

	outcomes, err := s.generateBulkInvoices.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]BillingOutcomeResponse, 0, len(outcomes))
	for _, outcome := range outcomes {
		item := BillingOutcomeResponse{
			Status: outcome.Status.String(),
			Reason: outcome.Reason,
		}
		if outcome.ClientID != nil {
			item.ClientID = outcome.ClientID.String()
		}
		if outcome.InvoiceID != nil {
			item.InvoiceID = outcome.InvoiceID.String()
		}
		response = append(response, item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetConsolidationHistory handles GET /api/v1/consolidations/:id/history.
func (s *Server) GetConsolidationHistory(ctx echo.Context) error {
	consolidationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid consolidation ID: "+err.Error())
	}

	query, err := queries.NewGetConsolidationHistoryQuery(consolidationID)
	if err != nil {
		return badRequest(ctx, "Invalid history request: "+err.Error())
	}

	events, err := s.getHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]HistoryEventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, HistoryEventResponse{
			ID:             event.EventID.String(),
			Label:          event.LabelText,
			City:           event.City,
			Comment:        event.Comment,
			NotifyEmail:    event.NotifyEmail,
			NotifyWhatsapp: event.NotifyWhatsApp,
			Actor:          event.Actor,
			EventDate:      event.EventDate,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// QuoteTariff handles GET /api/v1/tariffs/quote.
// Query parameters: originId, weight (pounds), packages.
func (s *Server) QuoteTariff(ctx echo.Context) error {
	originID, err := kernel.UUIDFromString(ctx.QueryParam("originId"))
	if err != nil {
		return badRequest(ctx, "Invalid origin ID: "+err.Error())
	}

	var weight float64
	var packages int
	if err = echo.QueryParamsBinder(ctx).
		Float64("weight", &weight).
		Int("packages", &packages).
		BindError(); err != nil {
		return badRequest(ctx, "Invalid quote parameters")
	}
	if packages == 0 {
		packages = 1
	}

	query, err := queries.NewResolveTariffQuery(originID, weight, packages)
	if err != nil {
		return badRequest(ctx, "Invalid quote request: "+err.Error())
	}

	quote, err := s.resolveTariffHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveTariffs) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "No active tariff tiers for this origin",
			})
		}
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TariffQuoteResponse{
		TierID:     quote.TierID.String(),
		Service:    quote.Service,
		ChargeType: quote.ChargeType,
		Rate:       quote.Rate,
		Amount:     quote.Amount,
		Fallback:   quote.Fallback,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain error classes onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectAlreadyExists), errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
