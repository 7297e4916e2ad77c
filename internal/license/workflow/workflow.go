// Package workflow is the status state machine for license requests. The
// transition table is data, not code: legality questions are answered without
// touching a store, and Transition is the single write path that moves a
// request and appends its history entry in one transactional boundary.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ftf/internal/license/metrics"
	"ftf/internal/license/models"
	"ftf/internal/license/ports"
	id "ftf/pkg/domain"
	dErrors "ftf/pkg/domain-errors"
	"ftf/pkg/platform/audit"
	"ftf/pkg/platform/sentinel"
	"ftf/pkg/requestcontext"
)

var transitions = map[models.Status][]models.Status{
	models.StatusInitial:   {models.StatusPending, models.StatusValidated, models.StatusRejected},
	models.StatusPending:   {models.StatusValidated, models.StatusRejected},
	models.StatusValidated: {models.StatusPrinted, models.StatusRejected},
}

// AvailableTransitions returns the legal target statuses from the given
// status. Terminal statuses return an empty slice. Pure: no store access.
func AvailableTransitions(from models.Status) []models.Status {
	targets := transitions[from]
	out := make([]models.Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransition reports whether from→to is a legal move. A same-state move
// is always legal and treated as a no-op by Transition.
func CanTransition(from, to models.Status) bool {
	if from == to {
		return true
	}
	for _, target := range transitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// Engine performs transitions against the stores. The status write and the
// history append happen inside one TxRunner boundary; audit emission happens
// after commit and never fails the transition.
type Engine struct {
	requests ports.RequestStore
	history  ports.HistoryStore
	tx       ports.TxRunner
	audit    ports.AuditPublisher
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(e *Engine)

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func NewEngine(requests ports.RequestStore, history ports.HistoryStore, tx ports.TxRunner, auditPub ports.AuditPublisher, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		requests: requests,
		history:  history,
		tx:       tx,
		audit:    auditPub,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Transition moves the request to the target status. It returns CodeNotFound
// for unknown ids, CodeConflict for an illegal move or a concurrent write on
// the same request, and the updated request on success. A same-state request
// returns the request untouched, with no history entry.
func (e *Engine) Transition(ctx context.Context, requestID id.RequestID, to models.Status, comment string) (*models.LicenseRequest, error) {
	if !to.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown target status: "+string(to))
	}

	req, err := e.requests.Load(ctx, requestID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "license request not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load license request")
	}

	from := req.Status
	if from == to {
		return req, nil
	}
	if !CanTransition(from, to) {
		return nil, dErrors.New(dErrors.CodeConflict,
			fmt.Sprintf("illegal transition from %s to %s", from, to))
	}

	now := requestcontext.Now(ctx)
	actor := actorLabel(ctx)
	entry := models.StatusHistoryEntry{
		ID:         id.NewHistoryID(),
		RequestID:  requestID,
		FromStatus: from,
		ToStatus:   to,
		ActorID:    actor,
		Comment:    comment,
		CreatedAt:  now,
	}

	err = e.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := e.requests.UpdateStatus(ctx, requestID, from, to); err != nil {
			switch {
			case errors.Is(err, sentinel.ErrNotFound):
				return dErrors.New(dErrors.CodeNotFound, "license request not found")
			case errors.Is(err, sentinel.ErrConflict):
				return dErrors.New(dErrors.CodeConflict, "request status changed concurrently")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "update request status")
		}
		if err := e.history.Append(ctx, entry); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "append status history")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	req.Status = to
	req.UpdatedAt = now

	if e.metrics != nil {
		e.metrics.IncrementTransition(string(from), string(to))
	}
	e.emit(ctx, req, from, to, actor, comment)
	return req, nil
}

// History returns the append-only transition trail, oldest first.
func (e *Engine) History(ctx context.Context, requestID id.RequestID) ([]models.StatusHistoryEntry, error) {
	if _, err := e.requests.Load(ctx, requestID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "license request not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load license request")
	}
	entries, err := e.history.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list status history")
	}
	return entries, nil
}

func (e *Engine) emit(ctx context.Context, req *models.LicenseRequest, from, to models.Status, actor, comment string) {
	action := audit.EventStatusTransition
	switch to {
	case models.StatusValidated:
		action = audit.EventRequestValidated
	case models.StatusRejected:
		action = audit.EventRequestRejected
	}

	event := audit.Event{
		RequestID:     req.ID,
		ActorID:       actor,
		Action:        string(action),
		FromStatus:    string(from),
		ToStatus:      string(to),
		Reason:        comment,
		CorrelationID: requestcontext.RequestID(ctx),
		UserAgent:     requestcontext.UserAgent(ctx),
	}
	if err := e.audit.Emit(ctx, event); err != nil {
		e.logger.Warn("audit emit failed",
			"request_id", req.ID.String(),
			"action", string(action),
			"error", err)
	}
}

func actorLabel(ctx context.Context) string {
	actor := requestcontext.ActorID(ctx)
	if actor.IsNil() {
		return "system"
	}
	return actor.String()
}
