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

	"github.com/mariselli/hoofprint/internal/brain"
	"github.com/mariselli/hoofprint/internal/config"
	"github.com/mariselli/hoofprint/internal/crm"
	"github.com/mariselli/hoofprint/internal/llm"
	"github.com/mariselli/hoofprint/internal/mailer"
	"github.com/mariselli/hoofprint/internal/memory"
	"github.com/mariselli/hoofprint/internal/storage/local"
	"github.com/mariselli/hoofprint/pkg/types"
)

// stubGateway satisfies llm.Gateway with empty results so the pipeline runs
// without doing anything interesting.
type stubGateway struct{}

func (stubGateway) SearchCompanies(context.Context, string, string) ([]llm.Company, error) {
	return nil, nil
}
func (stubGateway) QualifyCompany(context.Context, llm.Company) (*llm.Qualification, error) {
	return &llm.Qualification{}, nil
}
func (stubGateway) DiscoverContacts(context.Context, llm.Company) ([]llm.ContactCandidate, error) {
	return nil, nil
}
func (stubGateway) ScoreContact(context.Context, llm.ContactCandidate, llm.Company) (types.Scoring, error) {
	return types.Scoring{}, nil
}
func (stubGateway) DiscoverEvents(context.Context, string, string, int) ([]types.EquineEvent, error) {
	return nil, nil
}
func (stubGateway) SynthesizeMissions(context.Context, string) ([]types.Mission, error) {
	return []types.Mission{{ContactName: "Jo Reims", Company: "Reims Stud", Priority: types.PriorityHigh}}, nil
}
func (stubGateway) Chat(context.Context, string, string) (string, error) { return "ok", nil }
func (stubGateway) DraftOutreach(context.Context, types.Mission, string) (string, error) {
	return "draft", nil
}

func newMissionFixture(t *testing.T) (*MissionHandlers, *memory.Store, *brain.Brain) {
	t.Helper()
	clock := func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	store := local.New()
	repo := crm.NewWithClock(store, clock)
	mem := memory.NewWithClock(store, clock)
	targets := &config.Targets{Targets: []config.Target{{Keyword: "k", Location: "l"}}}
	core := brain.NewWithClock(stubGateway{}, repo, mem, targets, config.PipelineConfig{}, nil, clock)
	return NewMissionHandlers(core, repo, mem, mailer.New(config.MailConfig{}), true), mem, core
}

func TestRecalibrate_Always202(t *testing.T) {
	h, _, core := newMissionFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/missions/recalibrate", nil)
	rec := httptest.NewRecorder()
	h.Recalibrate(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	// A second request may be dropped while the first is in flight, but the
	// acknowledgement stays 202 regardless.
	rec = httptest.NewRecorder()
	h.Recalibrate(rec, httptest.NewRequest(http.MethodPost, "/api/missions/recalibrate", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool { return !core.IsRefreshing() }, 2*time.Second, 10*time.Millisecond)
}

func TestGetDaily_NoBatchIsEmptyList(t *testing.T) {
	h, _, _ := newMissionFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/missions", nil)
	rec := httptest.NewRecorder()
	h.GetDaily(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp MissionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Missions)
	assert.Empty(t, resp.Missions)
}

func TestGetDaily_ServesTodaysBatch(t *testing.T) {
	h, _, core := newMissionFixture(t)
	require.True(t, core.RunOnce())

	req := httptest.NewRequest(http.MethodGet, "/api/missions", nil)
	rec := httptest.NewRecorder()
	h.GetDaily(rec, req)

	var resp MissionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Missions, 1)
	assert.Equal(t, "Jo Reims", resp.Missions[0].ContactName)
}

func TestPromoteMission_RequiresContactName(t *testing.T) {
	h, _, _ := newMissionFixture(t)

	body, _ := json.Marshal(OutreachRequest{Mission: types.Mission{Company: "Reims Stud"}})
	req := httptest.NewRequest(http.MethodPost, "/api/missions/promote", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Promote(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSend_FailureWritesNoMemory(t *testing.T) {
	h, mem, _ := newMissionFixture(t)

	// The fixture mailer is unconfigured, so sending fails.
	body, _ := json.Marshal(SendEmailRequest{
		ContactID: "c1",
		To:        "jo@reims.example",
		Subject:   "Hello",
		HTMLBody:  "<p>hi</p>",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/missions/outreach/send", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Send(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	entries, err := mem.ListForEntity(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, entries, "memory is appended only after a successful send")
}

func TestDraft_AlwaysReturnsText(t *testing.T) {
	h, _, _ := newMissionFixture(t)

	body, _ := json.Marshal(OutreachRequest{Mission: types.Mission{ContactName: "Jo Reims", Company: "Reims Stud"}})
	req := httptest.NewRequest(http.MethodPost, "/api/missions/outreach", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Draft(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp OutreachResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Draft)
}
