package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "ftf/pkg/domain"
	audit "ftf/pkg/platform/audit"
	txcontext "ftf/pkg/platform/tx"
)

// Store implements audit.Store using the transactional outbox pattern. Events
// are written to the outbox table inside the caller's transaction (when one is
// carried in context) and relayed to Kafka by the outbox worker; the worker
// also materializes them into audit_events for querying.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Payload is the JSON structure relayed to Kafka and materialized into
// audit_events. Field names are stable; the consumer depends on them.
type Payload struct {
	ID            string `json:"ID"`
	Category      string `json:"Category"`
	Timestamp     string `json:"Timestamp"`
	RequestID     string `json:"RequestID,omitempty"`
	ActorID       string `json:"ActorID,omitempty"`
	Action        string `json:"Action"`
	FromStatus    string `json:"FromStatus,omitempty"`
	ToStatus      string `json:"ToStatus,omitempty"`
	Reason        string `json:"Reason,omitempty"`
	CorrelationID string `json:"CorrelationID,omitempty"`
	UserAgent     string `json:"UserAgent,omitempty"`
}

// Append writes an audit event to the outbox table.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.New()
	category := audit.AuditEvent(event.Action).Category()

	payload := Payload{
		ID:            eventID.String(),
		Category:      string(category),
		Timestamp:     event.Timestamp.Format(time.RFC3339Nano),
		ActorID:       event.ActorID,
		Action:        event.Action,
		FromStatus:    event.FromStatus,
		ToStatus:      event.ToStatus,
		Reason:        event.Reason,
		CorrelationID: event.CorrelationID,
		UserAgent:     event.UserAgent,
	}
	if !event.RequestID.IsNil() {
		payload.RequestID = event.RequestID.String()
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	aggregateType := "audit"
	aggregateID := eventID.String()
	if !event.RequestID.IsNil() {
		aggregateType = "license_request"
		aggregateID = event.RequestID.String()
	}

	query := `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		eventID,
		aggregateType,
		aggregateID,
		event.Action,
		payloadBytes,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// Materialize inserts a relayed event into audit_events for querying. It is
// idempotent so the worker can retry without duplicating rows.
func (s *Store) Materialize(ctx context.Context, eventID uuid.UUID, p Payload) error {
	query := `
		INSERT INTO audit_events
			(id, category, occurred_at, request_id, actor_id, action,
			 from_status, to_status, reason, correlation_id, user_agent)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, NULLIF($5, ''), $6,
			NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''))
		ON CONFLICT (id) DO NOTHING
	`
	occurredAt, err := time.Parse(time.RFC3339Nano, p.Timestamp)
	if err != nil {
		occurredAt = time.Now()
	}
	_, err = s.execer(ctx).ExecContext(ctx, query,
		eventID, p.Category, occurredAt, p.RequestID, p.ActorID, p.Action,
		p.FromStatus, p.ToStatus, p.Reason, p.CorrelationID, p.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("materialize audit event: %w", err)
	}
	return nil
}

// ListByRequest returns the materialized events for one request, oldest first.
func (s *Store) ListByRequest(ctx context.Context, requestID id.RequestID) ([]audit.Event, error) {
	query := `
		SELECT category, occurred_at,
			COALESCE(actor_id, ''), action,
			COALESCE(from_status, ''), COALESCE(to_status, ''),
			COALESCE(reason, ''), COALESCE(correlation_id, ''), COALESCE(user_agent, '')
		FROM audit_events
		WHERE request_id = $1
		ORDER BY occurred_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(requestID))
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		event := audit.Event{RequestID: requestID}
		var category string
		if err := rows.Scan(&category, &event.Timestamp, &event.ActorID, &event.Action,
			&event.FromStatus, &event.ToStatus, &event.Reason,
			&event.CorrelationID, &event.UserAgent); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		events = append(events, event)
	}
	return events, rows.Err()
}

// PendingOutbox returns up to limit unrelayed outbox rows, oldest first.
func (s *Store) PendingOutbox(ctx context.Context, limit int) ([]OutboxEntry, error) {
	query := `
		SELECT id, event_type, payload
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("select outbox: %w", err)
	}
	defer rows.Close()

	var entries []OutboxEntry
	for rows.Next() {
		var e OutboxEntry
		if err := rows.Scan(&e.ID, &e.EventType, &e.Payload); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MarkPublished stamps an outbox row as relayed.
func (s *Store) MarkPublished(ctx context.Context, entryID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE outbox SET published_at = $1 WHERE id = $2`, time.Now(), entryID)
	if err != nil {
		return fmt.Errorf("mark outbox entry published: %w", err)
	}
	return nil
}

// OutboxEntry is one unrelayed audit event.
type OutboxEntry struct {
	ID        uuid.UUID
	EventType string
	Payload   []byte
}
