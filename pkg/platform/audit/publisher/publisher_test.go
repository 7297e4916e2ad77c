package publisher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "ftf/pkg/domain"
	audit "ftf/pkg/platform/audit"
	"ftf/pkg/platform/audit/store/memory"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	requestID := id.NewRequestID()
	event := audit.Event{
		RequestID: requestID,
		Action:    string(audit.EventRequestCreated),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.List(context.Background(), requestID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventRequestCreated), events[0].Action)
	assert.Equal(t, audit.CategoryCompliance, events[0].Category)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))

	requestID := id.NewRequestID()
	event := audit.Event{
		RequestID: requestID,
		Action:    string(audit.EventStatusTransition),
		FromStatus: "VALIDATED",
		ToStatus:   "PRINTED",
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	// Close flushes the buffer.
	pub.Close()

	events, err := pub.List(context.Background(), requestID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "PRINTED", events[0].ToStatus)
}

func TestPublisher_AsyncOverflowFallsBackToSync(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	requestID := id.NewRequestID()
	for i := 0; i < 20; i++ {
		err := pub.Emit(context.Background(), audit.Event{
			RequestID: requestID,
			Action:    string(audit.EventValidationRejected),
		})
		require.NoError(t, err)
	}
	pub.Close()

	// May be interleaved between drain and inline appends, but nothing drops.
	require.Eventually(t, func() bool {
		events, err := store.ListByRequest(context.Background(), requestID)
		return err == nil && len(events) == 20
	}, time.Second, 10*time.Millisecond)
}
