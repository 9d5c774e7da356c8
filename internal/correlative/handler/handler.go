package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	correlativeModel "correlativos/internal/correlative/models"
	"correlativos/internal/platform/metrics"
	"correlativos/internal/platform/middleware"
	dErrors "correlativos/pkg/domain-errors"
	"correlativos/pkg/platform/httputil"
	"correlativos/pkg/requestcontext"
)

// Service defines the interface for correlative operations.
type Service interface {
	Allocate(ctx context.Context, activityTypeID int64, year int, issuedBy int64) (*correlativeModel.IssuanceRecord, error)
	Preview(ctx context.Context, activityTypeID int64, year int) (*correlativeModel.PreviewResponse, error)
	History(ctx context.Context, activityTypeID int64, year int) (*correlativeModel.HistoryResponse, error)
}

// Handler handles the correlative endpoints.
type Handler struct {
	logger      *slog.Logger
	correlative Service
	metrics     *metrics.Metrics
}

// New creates a new correlative Handler.
func New(correlative Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:      logger,
		correlative: correlative,
		metrics:     metrics,
	}
}

// Register registers the correlative routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	correlativeRouter := chi.NewRouter()
	correlativeRouter.Use(middleware.Recovery(h.logger))
	correlativeRouter.Use(middleware.RequestID)
	correlativeRouter.Use(middleware.RequestTime)
	correlativeRouter.Use(middleware.Logger(h.logger))
	correlativeRouter.Use(middleware.Timeout(30 * time.Second))
	correlativeRouter.Use(middleware.ContentTypeJSON)
	correlativeRouter.Use(middleware.Latency(h.metrics))
	correlativeRouter.Use(middleware.Identity(h.logger))
	correlativeRouter.Get("/correlativos", h.handlePreview)
	correlativeRouter.Post("/correlativos", h.handleAllocate)
	correlativeRouter.Get("/correlativos/historial", h.handleHistory)

	r.Mount("/", correlativeRouter)
}

// handlePreview reports the current and next number without consuming one.
func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	activityTypeID, err := queryInt64(r, "tipoActividadId")
	if err != nil {
		h.logger.WarnContext(ctx, "invalid preview request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	resp, err := h.correlative.Preview(ctx, activityTypeID, h.resolveYear(r))
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to preview correlative")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// handleAllocate consumes the next number for the requested activity type and
// returns the issued code. The acting user comes from the payload, falling
// back to the identity resolved by the middleware.
func (h *Handler) handleAllocate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var allocReq correlativeModel.AllocateRequest
	if err := json.NewDecoder(r.Body).Decode(&allocReq); err != nil {
		h.logger.WarnContext(ctx, "invalid allocate request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	allocReq.Normalize(requestcontext.UserID(ctx))
	if err := allocReq.Validate(); err != nil {
		h.logger.WarnContext(ctx, "invalid allocate request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.correlative.Allocate(ctx, allocReq.TipoActividadID, h.resolveYear(r), allocReq.UsuarioID)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to allocate correlative")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, correlativeModel.FromRecord(rec))
}

// handleHistory lists every code issued for an activity type in a given year.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	activityTypeID, err := queryInt64(r, "tipoActividadId")
	if err != nil {
		h.logger.WarnContext(ctx, "invalid history request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	year := h.resolveYear(r)
	if raw := r.URL.Query().Get("año"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil || year <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "año must be a positive integer"))
			return
		}
	}

	resp, err := h.correlative.History(ctx, activityTypeID, year)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to list correlative history")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// writeServiceError maps domain errors onto the wire, logging unexpected ones.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	switch {
	case dErrors.HasCode(err, dErrors.CodeNotFound),
		dErrors.HasCode(err, dErrors.CodeValidation),
		dErrors.HasCode(err, dErrors.CodeBadRequest),
		dErrors.HasCode(err, dErrors.CodeInvalidConfig):
		h.logger.WarnContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
	case dErrors.HasCode(err, dErrors.CodeConflict), dErrors.HasCode(err, dErrors.CodeTimeout):
		h.logger.WarnContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
	default:
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, msg))
	}
}

// resolveYear derives the issuance year from the request clock. Sequences are
// keyed by this year; there is no cross-year carry-over.
func (h *Handler) resolveYear(r *http.Request) int {
	return requestcontext.Now(r.Context()).UTC().Year()
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, dErrors.New(dErrors.CodeValidation, name+" query parameter is required")
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, dErrors.New(dErrors.CodeValidation, name+" must be a positive integer")
	}
	return v, nil
}
