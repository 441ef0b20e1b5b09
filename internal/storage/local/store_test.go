package local

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariselli/hoofprint/internal/storage"
	"github.com/mariselli/hoofprint/pkg/types"
)

func TestLeadRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	lead := &types.Lead{ID: "l1", Name: "Kit Rowan", CompanyName: "Rowan Arenas"}
	require.NoError(t, store.UpsertLead(ctx, lead))

	got, err := store.GetLead(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "Kit Rowan", got.Name)

	_, err = store.GetLead(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetLead_ReturnsCopy(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.UpsertLead(ctx, &types.Lead{ID: "l1", Name: "Kit Rowan", CompanyName: "Rowan Arenas"}))

	got, err := store.GetLead(ctx, "l1")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := store.GetLead(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "Kit Rowan", again.Name, "callers must not reach the stored record")
}

func TestListLeads_NewestFirst(t *testing.T) {
	store := New()
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.UpsertLead(ctx, &types.Lead{ID: "old", Name: "a", CompanyName: "c", DiscoveredAt: base}))
	require.NoError(t, store.UpsertLead(ctx, &types.Lead{ID: "new", Name: "b", CompanyName: "c", DiscoveredAt: base.AddDate(0, 0, 3)}))

	leads, err := store.ListLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "new", leads[0].ID)
}

func TestUpdateLeadStatus_OnlyListedIDs(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.UpsertLead(ctx, &types.Lead{ID: "a", Name: "a", CompanyName: "c", Status: types.StatusDiscovered}))
	require.NoError(t, store.UpsertLead(ctx, &types.Lead{ID: "b", Name: "b", CompanyName: "c", Status: types.StatusDiscovered}))

	require.NoError(t, store.UpdateLeadStatus(ctx, []string{"a"}, types.StatusIgnored))

	a, _ := store.GetLead(ctx, "a")
	b, _ := store.GetLead(ctx, "b")
	assert.Equal(t, types.StatusIgnored, a.Status)
	assert.Equal(t, types.StatusDiscovered, b.Status)
}

func TestEntries_OrderBothWays(t *testing.T) {
	store := New()
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"e1", "e2", "e3"} {
		require.NoError(t, store.AppendEntry(ctx, &types.MemoryEntry{
			ID:        id,
			EntityID:  "lead-1",
			Content:   id,
			Timestamp: base.AddDate(0, 0, i),
		}))
	}

	asc, err := store.ListEntriesByEntity(ctx, "lead-1")
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, "e1", asc[0].ID)
	assert.Equal(t, "e3", asc[2].ID)

	desc, err := store.ListRecentEntries(ctx, 2)
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, "e3", desc[0].ID)
}

func TestIsolatedInstances(t *testing.T) {
	ctx := context.Background()
	a, b := New(), New()

	require.NoError(t, a.UpsertContact(ctx, &types.Contact{ID: "c1", FirstName: "Ada"}))

	contacts, err := b.ListContacts(ctx)
	require.NoError(t, err)
	assert.Empty(t, contacts, "stores must not share state")
}
