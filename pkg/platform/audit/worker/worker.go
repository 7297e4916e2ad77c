// Package worker relays audit events from the postgres outbox to Kafka and
// materializes them into the queryable audit_events table. Running the relay
// outside the request path keeps transitions fast and makes audit delivery
// at-least-once: rows are only marked published after the produce succeeds,
// and materialization is idempotent.
package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	pgstore "ftf/pkg/platform/audit/store/postgres"
)

// Producer is the Kafka surface the relay needs.
type Producer interface {
	Produce(ctx context.Context, key string, value []byte) error
}

type Worker struct {
	store    *pgstore.Store
	producer Producer
	logger   *slog.Logger
	interval time.Duration
	batch    int
}

type Option func(*Worker)

// WithInterval overrides the poll interval (default 2s).
func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithBatchSize overrides how many outbox rows are relayed per poll.
func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batch = n
		}
	}
}

func NewWorker(store *pgstore.Store, producer Producer, logger *slog.Logger, opts ...Option) *Worker {
	w := &Worker{
		store:    store,
		producer: producer,
		logger:   logger,
		interval: 2 * time.Second,
		batch:    100,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run polls the outbox until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.relayOnce(ctx); err != nil {
				w.logger.WarnContext(ctx, "outbox relay pass failed", "error", err)
			}
		}
	}
}

func (w *Worker) relayOnce(ctx context.Context) error {
	entries, err := w.store.PendingOutbox(ctx, w.batch)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if w.producer != nil {
			if err := w.producer.Produce(ctx, entry.EventType, entry.Payload); err != nil {
				// Leave the row unpublished; the next pass retries.
				w.logger.WarnContext(ctx, "audit produce failed",
					"outbox_id", entry.ID, "event_type", entry.EventType, "error", err)
				continue
			}
		}

		var payload pgstore.Payload
		if err := json.Unmarshal(entry.Payload, &payload); err != nil {
			w.logger.ErrorContext(ctx, "malformed outbox payload, skipping",
				"outbox_id", entry.ID, "error", err)
		} else if err := w.store.Materialize(ctx, entry.ID, payload); err != nil {
			w.logger.WarnContext(ctx, "audit materialize failed",
				"outbox_id", entry.ID, "error", err)
			continue
		}

		if err := w.store.MarkPublished(ctx, entry.ID); err != nil {
			w.logger.WarnContext(ctx, "mark published failed",
				"outbox_id", entry.ID, "error", err)
		}
	}
	return nil
}
