package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariselli/hoofprint/internal/storage/resilient"
	"github.com/mariselli/hoofprint/pkg/types"
)

// failingRemote errors on every call, simulating an unreachable backend.
type failingRemote struct{}

var errRemoteDown = errors.New("remote unreachable")

func (f *failingRemote) UpsertLead(context.Context, *types.Lead) error    { return errRemoteDown }
func (f *failingRemote) GetLead(context.Context, string) (*types.Lead, error) {
	return nil, errRemoteDown
}
func (f *failingRemote) ListLeads(context.Context) ([]types.Lead, error) { return nil, errRemoteDown }
func (f *failingRemote) UpdateLeadStatus(context.Context, []string, types.LeadStatus) error {
	return errRemoteDown
}
func (f *failingRemote) UpsertContact(context.Context, *types.Contact) error { return errRemoteDown }
func (f *failingRemote) GetContact(context.Context, string) (*types.Contact, error) {
	return nil, errRemoteDown
}
func (f *failingRemote) ListContacts(context.Context) ([]types.Contact, error) {
	return nil, errRemoteDown
}
func (f *failingRemote) UpsertEvent(context.Context, *types.EquineEvent) error { return errRemoteDown }
func (f *failingRemote) GetEvent(context.Context, string) (*types.EquineEvent, error) {
	return nil, errRemoteDown
}
func (f *failingRemote) ListEvents(context.Context) ([]types.EquineEvent, error) {
	return nil, errRemoteDown
}
func (f *failingRemote) AppendEntry(context.Context, *types.MemoryEntry) error { return errRemoteDown }
func (f *failingRemote) ListEntriesByEntity(context.Context, string) ([]types.MemoryEntry, error) {
	return nil, errRemoteDown
}
func (f *failingRemote) ListRecentEntries(context.Context, int) ([]types.MemoryEntry, error) {
	return nil, errRemoteDown
}
func (f *failingRemote) Close() error { return nil }

func TestAppendAssignsIdentityAndTimestamp(t *testing.T) {
	store := New(resilient.New(nil))

	stored := store.Append(context.Background(), types.MemoryEntry{
		EntityID: "lead-1",
		Type:     "action",
		Category: types.CategoryAction,
		Content:  "called about saddle fitting",
	})

	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.Timestamp.IsZero())
}

func TestFallbackDurability(t *testing.T) {
	// Remote fails on every call; append-then-read must still round-trip
	// through the local mirror.
	store := New(resilient.New(&failingRemote{}))
	ctx := context.Background()

	stored := store.Append(ctx, types.MemoryEntry{
		EntityID: "lead-1",
		Type:     "outreach",
		Content:  "sent intro email",
	})

	entries, err := store.ListForEntity(ctx, "lead-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, stored.ID, entries[0].ID)
	assert.Equal(t, "sent intro email", entries[0].Content)
}

func TestListForEntityAscendingOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	store := NewWithClock(resilient.New(nil), func() time.Time {
		clock = clock.Add(time.Hour)
		return clock
	})
	ctx := context.Background()

	store.Append(ctx, types.MemoryEntry{EntityID: "e", Content: "first"})
	store.Append(ctx, types.MemoryEntry{EntityID: "e", Content: "second"})
	store.Append(ctx, types.MemoryEntry{EntityID: "other", Content: "noise"})

	entries, err := store.ListForEntity(ctx, "e")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Content)
	assert.Equal(t, "second", entries[1].Content)
}

func TestListRecentNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	store := NewWithClock(resilient.New(nil), func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	ctx := context.Background()

	store.Append(ctx, types.MemoryEntry{EntityID: "a", Content: "older"})
	store.Append(ctx, types.MemoryEntry{EntityID: "b", Content: "newer"})

	entries, err := store.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "newer", entries[0].Content)
}
