// Package service orchestrates license request intake, validation and
// workflow transitions. Handlers stay thin; every business decision funnels
// through here.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ftf/internal/license/metrics"
	"ftf/internal/license/models"
	"ftf/internal/license/ports"
	"ftf/internal/license/validation"
	"ftf/internal/license/workflow"
	id "ftf/pkg/domain"
	dErrors "ftf/pkg/domain-errors"
	"ftf/pkg/platform/audit"
	"ftf/pkg/platform/sentinel"
	"ftf/pkg/requestcontext"
)

// Service exposes the license module's operations.
type Service struct {
	orchestrator *validation.Orchestrator
	engine       *workflow.Engine
	requests     ports.RequestStore

	logger         *slog.Logger
	auditPublisher ports.AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(orchestrator *validation.Orchestrator, engine *workflow.Engine, requests ports.RequestStore, opts ...Option) *Service {
	s := &Service{
		orchestrator: orchestrator,
		engine:       engine,
		requests:     requests,
		logger:       slog.Default(),
		tracer:       otel.Tracer("ftf/license"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate runs the full pipeline against the request without persisting
// anything. The derived category and division come back on the result.
func (s *Service) Validate(ctx context.Context, req *models.LicenseRequest) (*models.ValidationResult, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	ctx, span := s.tracer.Start(ctx, "license.Validate",
		trace.WithAttributes(attribute.String("license.type", string(req.Type))))
	defer span.End()

	start := time.Now()
	result := s.orchestrator.Validate(ctx, req)
	s.observeValidation(start, result)

	if !result.IsValid() {
		span.SetStatus(codes.Error, "validation rejected")
		s.emitValidationOutcome(ctx, req, result)
	}
	return result, nil
}

// Create validates the request and, when clean, admits it into the workflow
// in the initial status. An invalid request returns the result alongside a
// CodeValidation error; nothing is persisted.
func (s *Service) Create(ctx context.Context, req *models.LicenseRequest) (*models.ValidationResult, error) {
	ctx, span := s.tracer.Start(ctx, "license.Create",
		trace.WithAttributes(attribute.String("license.type", string(req.Type))))
	defer span.End()

	start := time.Now()
	result := s.orchestrator.Validate(ctx, req)
	s.observeValidation(start, result)

	if !result.IsValid() {
		span.SetStatus(codes.Error, "validation rejected")
		s.emitValidationOutcome(ctx, req, result)
		return result, dErrors.New(dErrors.CodeValidation, strings.Join(result.Errors, "; "))
	}

	now := requestcontext.Now(ctx)
	if req.ID.IsNil() {
		req.ID = id.NewRequestID()
	}
	req.Status = models.StatusInitial
	req.CreatedAt = now
	req.UpdatedAt = now

	if err := s.requests.Save(ctx, req); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "license request already exists")
		}
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "save license request")
	}

	s.incrementCreated()
	s.emit(ctx, audit.Event{
		RequestID: req.ID,
		ActorID:   actorLabel(ctx),
		Action:    string(audit.EventRequestCreated),
		ToStatus:  string(models.StatusInitial),
	})
	s.logger.Info("license request created",
		"request_id", req.ID.String(),
		"team_id", req.TeamID.String(),
		"type", string(req.Type),
		"category", string(req.Category))
	return result, nil
}

// Get loads one request by id.
func (s *Service) Get(ctx context.Context, requestID id.RequestID) (*models.LicenseRequest, error) {
	req, err := s.requests.Load(ctx, requestID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "license request not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load license request")
	}
	return req, nil
}

// Transition moves the request through the workflow.
func (s *Service) Transition(ctx context.Context, requestID id.RequestID, to models.Status, comment string) (*models.LicenseRequest, error) {
	ctx, span := s.tracer.Start(ctx, "license.Transition",
		trace.WithAttributes(
			attribute.String("license.request_id", requestID.String()),
			attribute.String("license.to_status", string(to))))
	defer span.End()

	start := time.Now()
	req, err := s.engine.Transition(ctx, requestID, to, comment)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, dErrors.Message(err))
		return nil, err
	}
	s.observeTransition(start)
	return req, nil
}

// AvailableTransitions reports the legal target statuses for the request.
func (s *Service) AvailableTransitions(ctx context.Context, requestID id.RequestID) ([]models.Status, error) {
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return workflow.AvailableTransitions(req.Status), nil
}

// History returns the append-only transition trail for the request.
func (s *Service) History(ctx context.Context, requestID id.RequestID) ([]models.StatusHistoryEntry, error) {
	return s.engine.History(ctx, requestID)
}

func (s *Service) emitValidationOutcome(ctx context.Context, req *models.LicenseRequest, result *models.ValidationResult) {
	event := audit.Event{
		RequestID: req.ID,
		ActorID:   actorLabel(ctx),
		Action:    string(audit.EventValidationRejected),
		Reason:    strings.Join(result.Errors, "; "),
	}
	s.emit(ctx, event)

	for _, msg := range result.Errors {
		if msg == validation.MsgRosterFull {
			s.emit(ctx, audit.Event{
				RequestID: req.ID,
				ActorID:   actorLabel(ctx),
				Action:    string(audit.EventQuotaCeilingReached),
				Reason:    msg,
			})
		}
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	event.CorrelationID = requestcontext.RequestID(ctx)
	event.UserAgent = requestcontext.UserAgent(ctx)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.Warn("audit emit failed", "action", event.Action, "error", err)
	}
}

func (s *Service) observeValidation(start time.Time, result *models.ValidationResult) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveValidation(start)
	s.metrics.IncrementValidation(result.IsValid())
}

func (s *Service) observeTransition(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveTransition(start)
	}
}

func (s *Service) incrementCreated() {
	if s.metrics != nil {
		s.metrics.IncrementRequestCreated()
	}
}

func actorLabel(ctx context.Context) string {
	actor := requestcontext.ActorID(ctx)
	if actor.IsNil() {
		return "system"
	}
	return actor.String()
}
