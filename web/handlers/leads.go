package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mariselli/hoofprint/internal/crm"
	"github.com/mariselli/hoofprint/internal/storage"
	"github.com/mariselli/hoofprint/pkg/types"
)

// LeadHandlers contains HTTP handlers for the discovery log.
type LeadHandlers struct {
	repo *crm.Repository
}

// NewLeadHandlers creates a new LeadHandlers instance.
func NewLeadHandlers(repo *crm.Repository) *LeadHandlers {
	return &LeadHandlers{repo: repo}
}

// ListLeads handles GET /api/leads - the full discovery log with the derived
// save state.
func (h *LeadHandlers) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.repo.ListLeads(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list leads", err)
		return
	}
	respondJSON(w, http.StatusOK, leads)
}

// GetInbox handles GET /api/leads/inbox - the actionable subset.
func (h *LeadHandlers) GetInbox(w http.ResponseWriter, r *http.Request) {
	inbox, err := h.repo.Inbox(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load inbox", err)
		return
	}
	if inbox == nil {
		inbox = []types.Lead{}
	}
	respondJSON(w, http.StatusOK, inbox)
}

// CreateLead handles POST /api/leads - manual lead entry.
func (h *LeadHandlers) CreateLead(w http.ResponseWriter, r *http.Request) {
	var lead types.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.repo.SaveLead(r.Context(), &lead); err != nil {
		respondError(w, http.StatusBadRequest, "failed to save lead", err)
		return
	}
	respondJSON(w, http.StatusCreated, lead)
}

// GetLead handles GET /api/leads/{id}.
func (h *LeadHandlers) GetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := h.repo.GetLead(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "lead not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load lead", err)
		return
	}
	respondJSON(w, http.StatusOK, lead)
}

// PromoteLead handles POST /api/leads/{id}/promote. A duplicate is not an
// error: the response reports promoted=false with an informational toast.
func (h *LeadHandlers) PromoteLead(w http.ResponseWriter, r *http.Request) {
	promoted, err := h.repo.PromoteLead(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "lead not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to promote lead", err)
		return
	}

	resp := PromoteResponse{Promoted: promoted}
	if promoted {
		resp.Toast = Toast{Kind: "success", Message: "Lead saved to CRM"}
	} else {
		resp.Toast = Toast{Kind: "info", Message: "Already in CRM, nothing to do"}
	}
	respondJSON(w, http.StatusOK, resp)
}

// BulkStatus handles POST /api/leads/status - batch status updates. SAVED
// runs per-lead promotion with dedup; the toast kind follows the counts.
func (h *LeadHandlers) BulkStatus(w http.ResponseWriter, r *http.Request) {
	var req BulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if len(req.IDs) == 0 {
		respondError(w, http.StatusBadRequest, "no lead ids given", nil)
		return
	}

	updated, err := h.repo.BulkUpdateStatus(r.Context(), req.IDs, req.Status)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update leads", err)
		return
	}

	resp := BulkStatusResponse{Updated: updated}
	switch {
	case req.Status == types.StatusSaved && updated == 0:
		resp.Toast = Toast{Kind: "info", Message: "All selected leads were already in the CRM"}
	case req.Status == types.StatusSaved:
		resp.Toast = Toast{Kind: "success", Message: fmt.Sprintf("Saved %d of %d leads", updated, len(req.IDs))}
	default:
		resp.Toast = Toast{Kind: "success", Message: fmt.Sprintf("Updated %d leads", updated)}
	}
	respondJSON(w, http.StatusOK, resp)
}

// AddReminder handles POST /api/leads/{id}/reminders.
func (h *LeadHandlers) AddReminder(w http.ResponseWriter, r *http.Request) {
	var reminder types.Reminder
	if err := json.NewDecoder(r.Body).Decode(&reminder); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	created, err := h.repo.AddLeadReminder(r.Context(), r.PathValue("id"), reminder)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "lead not found", nil)
			return
		}
		respondError(w, http.StatusBadRequest, "failed to add reminder", err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ToggleReminder handles POST /api/leads/{id}/reminders/{rid}/toggle.
func (h *LeadHandlers) ToggleReminder(w http.ResponseWriter, r *http.Request) {
	err := h.repo.ToggleLeadReminder(r.Context(), r.PathValue("id"), r.PathValue("rid"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "reminder not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to toggle reminder", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteReminder handles DELETE /api/leads/{id}/reminders/{rid}.
func (h *LeadHandlers) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	err := h.repo.DeleteLeadReminder(r.Context(), r.PathValue("id"), r.PathValue("rid"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "reminder not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete reminder", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
