package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariselli/hoofprint/internal/crm"
	"github.com/mariselli/hoofprint/internal/storage/local"
	"github.com/mariselli/hoofprint/pkg/types"
)

func newLeadFixture(t *testing.T) (*LeadHandlers, *crm.Repository) {
	t.Helper()
	repo := crm.NewWithClock(local.New(), func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	})
	return NewLeadHandlers(repo), repo
}

func TestPromoteLead_DuplicateGetsInfoToast(t *testing.T) {
	h, repo := newLeadFixture(t)
	ctx := context.Background()

	lead := &types.Lead{Name: "Maya Bright", CompanyName: "Bright Stables"}
	require.NoError(t, repo.SaveLead(ctx, lead))
	dup := &types.Lead{Name: "Maya Bright", CompanyName: "Bright Stables"}
	require.NoError(t, repo.SaveLead(ctx, dup))

	promote := func(id string) PromoteResponse {
		req := httptest.NewRequest(http.MethodPost, "/api/leads/"+id+"/promote", nil)
		req.SetPathValue("id", id)
		rec := httptest.NewRecorder()
		h.PromoteLead(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp PromoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	first := promote(lead.ID)
	assert.True(t, first.Promoted)
	assert.Equal(t, "success", first.Toast.Kind)

	second := promote(dup.ID)
	assert.False(t, second.Promoted)
	assert.Equal(t, "info", second.Toast.Kind)
}

func TestPromoteLead_NotFound(t *testing.T) {
	h, _ := newLeadFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/leads/nope/promote", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.PromoteLead(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBulkStatus_SavedReportsCount(t *testing.T) {
	h, repo := newLeadFixture(t)
	ctx := context.Background()

	a := &types.Lead{Name: "Pia Holm", CompanyName: "Holm Equestrian"}
	b := &types.Lead{Name: "Pia Holm", CompanyName: "Holm Equestrian"}
	require.NoError(t, repo.SaveLead(ctx, a))
	require.NoError(t, repo.SaveLead(ctx, b))

	body, _ := json.Marshal(BulkStatusRequest{IDs: []string{a.ID, b.ID}, Status: types.StatusSaved})
	req := httptest.NewRequest(http.MethodPost, "/api/leads/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.BulkStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp BulkStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Updated)
	assert.Equal(t, "success", resp.Toast.Kind)
}

func TestBulkStatus_AllDuplicatesIsInfo(t *testing.T) {
	h, repo := newLeadFixture(t)
	ctx := context.Background()

	lead := &types.Lead{Name: "Rui Costa", CompanyName: "Lusitano Line"}
	require.NoError(t, repo.SaveLead(ctx, lead))
	_, err := repo.PromoteLead(ctx, lead.ID)
	require.NoError(t, err)

	again := &types.Lead{Name: "Rui Costa", CompanyName: "Lusitano Line"}
	require.NoError(t, repo.SaveLead(ctx, again))

	body, _ := json.Marshal(BulkStatusRequest{IDs: []string{again.ID}, Status: types.StatusSaved})
	req := httptest.NewRequest(http.MethodPost, "/api/leads/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.BulkStatus(rec, req)

	var resp BulkStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Updated)
	assert.Equal(t, "info", resp.Toast.Kind)
}

func TestBulkStatus_EmptyIDs(t *testing.T) {
	h, _ := newLeadFixture(t)

	body, _ := json.Marshal(BulkStatusRequest{Status: types.StatusIgnored})
	req := httptest.NewRequest(http.MethodPost, "/api/leads/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.BulkStatus(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetInbox_EmptyIsJSONArray(t *testing.T) {
	h, _ := newLeadFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/leads/inbox", nil)
	rec := httptest.NewRecorder()
	h.GetInbox(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
