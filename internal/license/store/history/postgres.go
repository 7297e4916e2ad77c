package history

import (
	"context"
	"database/sql"
	"fmt"

	"ftf/internal/license/models"
	id "ftf/pkg/domain"
	txcontext "ftf/pkg/platform/tx"
)

// PostgresStore persists history entries in PostgreSQL. Appends pick up the
// transaction carried in context so they commit atomically with the status
// update that caused them.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, entry models.StatusHistoryEntry) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO status_history (id, request_id, from_status, to_status, actor_id, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID.String(),
		entry.RequestID.String(),
		string(entry.FromStatus),
		string(entry.ToStatus),
		entry.ActorID,
		entry.Comment,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert status history: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByRequest(ctx context.Context, requestID id.RequestID) ([]models.StatusHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, request_id, from_status, to_status, actor_id, comment, created_at
		FROM status_history
		WHERE request_id = $1
		ORDER BY created_at ASC`,
		requestID.String())
	if err != nil {
		return nil, fmt.Errorf("list status history: %w", err)
	}
	defer rows.Close()

	var entries []models.StatusHistoryEntry
	for rows.Next() {
		var (
			entry          models.StatusHistoryEntry
			entryID, reqID string
			from, to       string
		)
		if err := rows.Scan(&entryID, &reqID, &from, &to, &entry.ActorID, &entry.Comment, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan status history: %w", err)
		}
		hid, err := id.ParseHistoryID(entryID)
		if err != nil {
			return nil, fmt.Errorf("parse history id: %w", err)
		}
		rid, err := id.ParseRequestID(reqID)
		if err != nil {
			return nil, fmt.Errorf("parse request id: %w", err)
		}
		entry.ID = hid
		entry.RequestID = rid
		entry.FromStatus = models.Status(from)
		entry.ToStatus = models.Status(to)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status history: %w", err)
	}
	return entries, nil
}
