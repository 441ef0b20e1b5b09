package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariselli/hoofprint/internal/crm"
	"github.com/mariselli/hoofprint/internal/decision"
	"github.com/mariselli/hoofprint/internal/memory"
	"github.com/mariselli/hoofprint/internal/storage/local"
	"github.com/mariselli/hoofprint/pkg/types"
)

func newContactFixture(t *testing.T) (*ContactHandlers, *crm.Repository, *memory.Store) {
	t.Helper()
	store := local.New()
	repo := crm.New(store)
	mem := memory.New(store)
	return NewContactHandlers(repo, mem), repo, mem
}

func TestExportCSV(t *testing.T) {
	h, repo, _ := newContactFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveContact(ctx, &types.Contact{
		FirstName:   "Sol",
		LastName:    "Madsen",
		CompanyName: "Madsen Saddlery",
		Email:       "sol@madsen.example",
		Categories:  []string{"Tack", "Retail"},
		Scoring:     types.Scoring{Overall: 62},
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/contacts/export", nil)
	rec := httptest.NewRecorder()
	h.ExportCSV(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "contacts.csv")

	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one contact")
	assert.Equal(t, "first_name", rows[0][0])
	assert.Equal(t, "Sol", rows[1][0])
	assert.Equal(t, "Tack;Retail", rows[1][11])
	assert.Equal(t, "62", rows[1][10])
}

func TestGetSafety_RecentOutreachVetoes(t *testing.T) {
	h, repo, mem := newContactFixture(t)
	ctx := context.Background()

	contact := &types.Contact{ID: "c1", FirstName: "Sol", LastName: "Madsen", CompanyName: "Madsen Saddlery"}
	require.NoError(t, repo.SaveContact(ctx, contact))
	mem.Append(ctx, types.MemoryEntry{
		EntityID: "c1",
		Type:     "outreach",
		Content:  "Sent intro email",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/contacts/c1/safety", nil)
	req.SetPathValue("id", "c1")
	rec := httptest.NewRecorder()
	h.GetSafety(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var safety decision.Safety
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &safety))
	assert.False(t, safety.Safe)
	assert.NotEmpty(t, safety.Reason)
}

func TestGetSafety_UnknownContact(t *testing.T) {
	h, _, _ := newContactFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/contacts/nope/safety", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.GetSafety(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetContext_FreshContact(t *testing.T) {
	h, repo, _ := newContactFixture(t)
	ctx := context.Background()

	contact := &types.Contact{ID: "c1", FirstName: "Sol", LastName: "Madsen", CompanyName: "Madsen Saddlery"}
	require.NoError(t, repo.SaveContact(ctx, contact))

	req := httptest.NewRequest(http.MethodGet, "/api/contacts/c1/context", nil)
	req.SetPathValue("id", "c1")
	rec := httptest.NewRecorder()
	h.GetContext(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ContextResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, memory.ContextFresh, resp.Context)
}
