// Package publisher fans audit events out to a store, synchronously by
// default or through a buffered channel when async mode is enabled. Emit never
// blocks domain logic on a slow sink in async mode; overflow falls back to a
// synchronous append so events are not dropped.
package publisher

import (
	"context"
	"sync"
	"time"

	id "ftf/pkg/domain"
	audit "ftf/pkg/platform/audit"
)

type Publisher struct {
	store audit.Store

	inbox  chan audit.Event
	done   chan struct{}
	wg     sync.WaitGroup
	closed sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous publishing with the given buffer size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.inbox = make(chan audit.Event, size)
		}
	}
}

// NewPublisher builds a publisher over the given store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store: store,
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for {
		select {
		case event := <-p.inbox:
			// Detached context: the emitting request may be gone already.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = p.store.Append(ctx, event)
			cancel()
		case <-p.done:
			// Flush what is left before exiting.
			for {
				select {
				case event := <-p.inbox:
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					_ = p.store.Append(ctx, event)
					cancel()
				default:
					return
				}
			}
		}
	}
}

// Emit records an audit event. Events without a timestamp are stamped here;
// categories are always derived from the action.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Category = audit.AuditEvent(event.Action).Category()

	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}
	select {
	case p.inbox <- event:
		return nil
	default:
		// Buffer full: append inline rather than dropping the event.
		return p.store.Append(ctx, event)
	}
}

// List returns the persisted events for a request.
func (p *Publisher) List(ctx context.Context, requestID id.RequestID) ([]audit.Event, error) {
	return p.store.ListByRequest(ctx, requestID)
}

// Close stops the async drain goroutine after flushing buffered events.
func (p *Publisher) Close() {
	p.closed.Do(func() {
		close(p.done)
		p.wg.Wait()
	})
}
