package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mariselli/hoofprint/internal/brain"
	"github.com/mariselli/hoofprint/internal/crm"
	"github.com/mariselli/hoofprint/internal/mailer"
	"github.com/mariselli/hoofprint/internal/memory"
	"github.com/mariselli/hoofprint/pkg/types"
)

// MissionHandlers contains HTTP handlers for daily missions and outreach.
type MissionHandlers struct {
	brain        *brain.Brain
	repo         *crm.Repository
	memory       *memory.Store
	mailer       *mailer.Mailer
	withReminder bool
}

// NewMissionHandlers creates a new MissionHandlers instance.
func NewMissionHandlers(b *brain.Brain, repo *crm.Repository, mem *memory.Store, m *mailer.Mailer, withReminder bool) *MissionHandlers {
	return &MissionHandlers{brain: b, repo: repo, memory: mem, mailer: m, withReminder: withReminder}
}

// GetDaily handles GET /api/missions - today's cached mission batch. A stale
// or absent batch yields an empty list; the dashboard offers recalibration.
func (h *MissionHandlers) GetDaily(w http.ResponseWriter, r *http.Request) {
	missions := h.brain.DailyCommands(r.Context())
	if missions == nil {
		missions = []types.Mission{}
	}
	respondJSON(w, http.StatusOK, MissionListResponse{
		Date:     time.Now().Format("2006-01-02"),
		Missions: missions,
	})
}

// Recalibrate handles POST /api/missions/recalibrate. The pipeline is
// fire-and-forget and a request during an in-flight run is dropped; both
// cases acknowledge with 202.
func (h *MissionHandlers) Recalibrate(w http.ResponseWriter, r *http.Request) {
	started := h.brain.Recalibrate()
	respondJSON(w, http.StatusAccepted, RecalibrateResponse{
		Started:    started,
		Refreshing: h.brain.IsRefreshing(),
	})
}

// Promote handles POST /api/missions/promote - the mission merge-or-create
// path into the CRM.
func (h *MissionHandlers) Promote(w http.ResponseWriter, r *http.Request) {
	var req OutreachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Mission.ContactName == "" {
		respondError(w, http.StatusBadRequest, "mission has no contact name", nil)
		return
	}

	contact, err := h.repo.PromoteMission(r.Context(), req.Mission, h.withReminder)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to promote mission", err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

// Draft handles POST /api/missions/outreach - an outreach draft for one
// mission. The answer is always usable text; gateway failures degrade to a
// fallback message upstream.
func (h *MissionHandlers) Draft(w http.ResponseWriter, r *http.Request) {
	var req OutreachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	draft := h.brain.DraftOutreach(r.Context(), req.Mission)
	respondJSON(w, http.StatusOK, OutreachResponse{Draft: draft})
}

// Send handles POST /api/missions/outreach/send - deliver the outreach mail.
// A memory entry is appended only after the send succeeds.
func (h *MissionHandlers) Send(w http.ResponseWriter, r *http.Request) {
	var req SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.To == "" {
		respondError(w, http.StatusBadRequest, "missing recipient", nil)
		return
	}

	if err := h.mailer.Send(req.To, req.Subject, req.HTMLBody); err != nil {
		respondError(w, http.StatusBadGateway, "failed to send email", err)
		return
	}

	if req.ContactID != "" {
		h.memory.Append(r.Context(), types.MemoryEntry{
			EntityID: req.ContactID,
			Type:     "email",
			Category: types.CategoryAction,
			Content:  "Sent outreach email: " + req.Subject,
		})
	}
	respondJSON(w, http.StatusOK, Toast{Kind: "success", Message: "Email sent"})
}
