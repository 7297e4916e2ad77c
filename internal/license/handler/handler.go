// Package handler wires the license endpoints to the license service.
// Handlers decode, delegate and encode; the pipeline and workflow engine own
// every business decision.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ftf/internal/license/models"
	id "ftf/pkg/domain"
	dErrors "ftf/pkg/domain-errors"
	"ftf/pkg/platform/httputil"
	"ftf/pkg/requestcontext"
)

// Service defines the license operations the handler exposes.
type Service interface {
	Validate(ctx context.Context, req *models.LicenseRequest) (*models.ValidationResult, error)
	Create(ctx context.Context, req *models.LicenseRequest) (*models.ValidationResult, error)
	Get(ctx context.Context, requestID id.RequestID) (*models.LicenseRequest, error)
	Transition(ctx context.Context, requestID id.RequestID, to models.Status, comment string) (*models.LicenseRequest, error)
	AvailableTransitions(ctx context.Context, requestID id.RequestID) ([]models.Status, error)
	History(ctx context.Context, requestID id.RequestID) ([]models.StatusHistoryEntry, error)
}

// Handler wires license endpoints to the license service.
type Handler struct {
	service Service
	logger  *slog.Logger

	// requireActor guards the transition endpoint; nil leaves it open,
	// which only integration tests should do.
	requireActor func(http.Handler) http.Handler
}

type Option func(h *Handler)

// WithActorMiddleware guards status transitions behind actor authentication.
func WithActorMiddleware(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.requireActor = mw
	}
}

// New constructs a license handler with its dependencies.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service: service,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts license endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/licenses", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Post("/validate", h.HandleValidate)
		r.Get("/{requestID}", h.HandleGet)
		r.Get("/{requestID}/transitions", h.HandleAvailableTransitions)
		r.Get("/{requestID}/history", h.HandleHistory)

		r.Group(func(r chi.Router) {
			if h.requireActor != nil {
				r.Use(h.requireActor)
			}
			r.Post("/{requestID}/transition", h.HandleTransition)
		})
	})
}

// HandleValidate handles POST /licenses/validate requests. The pipeline runs
// in full; nothing is persisted.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	body, ok := httputil.DecodeAndPrepare[LicenseRequestBody](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Validate(ctx, body.ToModel())
	if err != nil {
		h.logger.ErrorContext(ctx, "license validation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleCreate handles POST /licenses requests. A request that fails the
// pipeline comes back with the full error list and persists nothing.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	body, ok := httputil.DecodeAndPrepare[LicenseRequestBody](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	req := body.ToModel()
	result, err := h.service.Create(ctx, req)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) && result != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, FromResult(result))
			return
		}
		h.logger.ErrorContext(ctx, "license creation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "license request created",
		"request_id", requestID,
		"license_request_id", req.ID.String(),
		"license_type", string(req.Type),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, &CreateResponse{
		Request:    FromRequest(req),
		Validation: FromResult(result),
	})
}

// HandleGet handles GET /licenses/{requestID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	licenseID, ok := h.pathRequestID(w, r)
	if !ok {
		return
	}

	req, err := h.service.Get(ctx, licenseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRequest(req))
}

// HandleTransition handles POST /licenses/{requestID}/transition requests.
func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	licenseID, ok := h.pathRequestID(w, r)
	if !ok {
		return
	}

	body, ok := httputil.DecodeAndPrepare[TransitionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	req, err := h.service.Transition(ctx, licenseID, body.ParsedStatus(), body.Comment)
	if err != nil {
		h.logger.WarnContext(ctx, "license transition refused",
			"request_id", requestID,
			"license_request_id", licenseID.String(),
			"to_status", body.Status,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "license request transitioned",
		"request_id", requestID,
		"license_request_id", licenseID.String(),
		"to_status", string(req.Status),
	)

	httputil.WriteJSON(w, http.StatusOK, FromRequest(req))
}

// HandleAvailableTransitions handles GET /licenses/{requestID}/transitions.
func (h *Handler) HandleAvailableTransitions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	licenseID, ok := h.pathRequestID(w, r)
	if !ok {
		return
	}

	req, err := h.service.Get(ctx, licenseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	transitions, err := h.service.AvailableTransitions(ctx, licenseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp := &TransitionsResponse{
		Status:      string(req.Status),
		Transitions: make([]string, 0, len(transitions)),
	}
	for _, t := range transitions {
		resp.Transitions = append(resp.Transitions, string(t))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleHistory handles GET /licenses/{requestID}/history.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	licenseID, ok := h.pathRequestID(w, r)
	if !ok {
		return
	}

	entries, err := h.service.History(ctx, licenseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromHistory(entries))
}

func (h *Handler) pathRequestID(w http.ResponseWriter, r *http.Request) (id.RequestID, bool) {
	licenseID, err := id.ParseRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request id must be a UUID"))
		return id.RequestID{}, false
	}
	return licenseID, true
}
