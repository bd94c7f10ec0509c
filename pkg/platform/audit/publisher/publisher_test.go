package publisher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "facet/pkg/platform/audit"
	"facet/pkg/platform/audit/store/memory"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	event := audit.Event{
		OwnerID:   "alice",
		VisitorID: "anonymous",
		Action:    string(audit.EventProfileViewed),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := store.ListByOwner(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventProfileViewed), events[0].Action)
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))

	event := audit.Event{
		OwnerID:   "alice",
		VisitorID: "bob",
		Action:    string(audit.EventVisibilityDenied),
		Property:  "address",
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	// Close flushes the buffer before returning.
	pub.Close()

	events, err := store.ListByOwner(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventVisibilityDenied), events[0].Action)
	assert.Equal(t, "address", events[0].Property)
}

func TestPublisher_EnrichesEvents(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	err := pub.Emit(context.Background(), audit.Event{
		OwnerID: "alice",
		Action:  string(audit.EventVisibilityDenied),
	})
	require.NoError(t, err)

	events, err := store.ListByOwner(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
	assert.WithinDuration(t, time.Now(), events[0].Timestamp, time.Minute)
	assert.Equal(t, audit.CategorySecurity, events[0].Category)
}
