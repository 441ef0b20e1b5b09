package resilient

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariselli/hoofprint/internal/storage"
	"github.com/mariselli/hoofprint/pkg/types"
)

var errRemoteDown = errors.New("remote unavailable")

// flakyRemote fails every call while failing is set and records call counts.
type flakyRemote struct {
	mu      sync.Mutex
	failing bool
	calls   int
	leads   map[string]types.Lead
}

func newFlakyRemote() *flakyRemote {
	return &flakyRemote{leads: make(map[string]types.Lead)}
}

func (r *flakyRemote) tick() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failing {
		return errRemoteDown
	}
	return nil
}

func (r *flakyRemote) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *flakyRemote) UpsertLead(_ context.Context, lead *types.Lead) error {
	if err := r.tick(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads[lead.ID] = *lead
	return nil
}

func (r *flakyRemote) GetLead(_ context.Context, id string) (*types.Lead, error) {
	if err := r.tick(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &lead, nil
}

func (r *flakyRemote) ListLeads(_ context.Context) ([]types.Lead, error) {
	if err := r.tick(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (r *flakyRemote) UpdateLeadStatus(_ context.Context, _ []string, _ types.LeadStatus) error {
	return r.tick()
}

func (r *flakyRemote) UpsertContact(_ context.Context, _ *types.Contact) error { return r.tick() }
func (r *flakyRemote) GetContact(_ context.Context, _ string) (*types.Contact, error) {
	return nil, r.tick()
}
func (r *flakyRemote) ListContacts(_ context.Context) ([]types.Contact, error) {
	return nil, r.tick()
}
func (r *flakyRemote) UpsertEvent(_ context.Context, _ *types.EquineEvent) error { return r.tick() }
func (r *flakyRemote) GetEvent(_ context.Context, _ string) (*types.EquineEvent, error) {
	return nil, r.tick()
}
func (r *flakyRemote) ListEvents(_ context.Context) ([]types.EquineEvent, error) {
	return nil, r.tick()
}
func (r *flakyRemote) AppendEntry(_ context.Context, _ *types.MemoryEntry) error { return r.tick() }
func (r *flakyRemote) ListEntriesByEntity(_ context.Context, _ string) ([]types.MemoryEntry, error) {
	return nil, r.tick()
}
func (r *flakyRemote) ListRecentEntries(_ context.Context, _ int) ([]types.MemoryEntry, error) {
	return nil, r.tick()
}
func (r *flakyRemote) Close() error { return nil }

func TestWrite_SurvivesRemoteFailure(t *testing.T) {
	remote := newFlakyRemote()
	remote.failing = true
	store := New(remote)
	ctx := context.Background()

	lead := &types.Lead{ID: "l1", Name: "Kit Rowan", CompanyName: "Rowan Arenas"}
	require.NoError(t, store.UpsertLead(ctx, lead), "remote failure must never surface on write")

	// Read falls back to the mirror.
	got, err := store.GetLead(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "Kit Rowan", got.Name)
}

func TestRead_PrefersRemote(t *testing.T) {
	remote := newFlakyRemote()
	store := New(remote)
	ctx := context.Background()

	lead := &types.Lead{ID: "l1", Name: "Kit Rowan", CompanyName: "Rowan Arenas"}
	require.NoError(t, store.UpsertLead(ctx, lead))

	// Change the remote copy out of band; a healthy remote wins the read.
	remote.mu.Lock()
	changed := remote.leads["l1"]
	changed.Name = "Kit R. Rowan"
	remote.leads["l1"] = changed
	remote.mu.Unlock()

	got, err := store.GetLead(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "Kit R. Rowan", got.Name)
}

func TestNilRemote_MirrorOnly(t *testing.T) {
	store := New(nil)
	ctx := context.Background()

	require.NoError(t, store.AppendEntry(ctx, &types.MemoryEntry{ID: "e1", EntityID: "x", Content: "note"}))
	entries, err := store.ListEntriesByEntity(ctx, "x")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.NoError(t, store.Close())
}

func TestBreaker_StopsCallingDeadRemote(t *testing.T) {
	remote := newFlakyRemote()
	remote.failing = true
	store := New(remote)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, _ = store.ListLeads(ctx)
	}

	// Three consecutive failures trip the breaker; later calls short-circuit.
	assert.Equal(t, 3, remote.callCount())
}

func TestAppendThenReadWithDeadRemote(t *testing.T) {
	remote := newFlakyRemote()
	remote.failing = true
	store := New(remote)
	ctx := context.Background()

	entry := &types.MemoryEntry{ID: "e1", EntityID: "lead-9", Content: "called about demo"}
	require.NoError(t, store.AppendEntry(ctx, entry))

	entries, err := store.ListEntriesByEntity(ctx, "lead-9")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "called about demo", entries[0].Content)
}
