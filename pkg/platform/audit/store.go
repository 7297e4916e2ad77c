package audit

import (
	"context"

	id "ftf/pkg/domain"
)

// Store persists audit events. Implementations must treat appended events as
// immutable.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByRequest(ctx context.Context, requestID id.RequestID) ([]Event, error)
}
