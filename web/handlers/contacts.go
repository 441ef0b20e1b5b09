package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mariselli/hoofprint/internal/crm"
	"github.com/mariselli/hoofprint/internal/decision"
	"github.com/mariselli/hoofprint/internal/memory"
	"github.com/mariselli/hoofprint/internal/storage"
	"github.com/mariselli/hoofprint/pkg/types"
)

// ContactHandlers contains HTTP handlers for the CRM contact collection.
type ContactHandlers struct {
	repo   *crm.Repository
	memory *memory.Store
}

// NewContactHandlers creates a new ContactHandlers instance.
func NewContactHandlers(repo *crm.Repository, mem *memory.Store) *ContactHandlers {
	return &ContactHandlers{repo: repo, memory: mem}
}

// ListContacts handles GET /api/contacts.
func (h *ContactHandlers) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.repo.ListContacts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list contacts", err)
		return
	}
	respondJSON(w, http.StatusOK, contacts)
}

// CreateContact handles POST /api/contacts - direct contact entry.
func (h *ContactHandlers) CreateContact(w http.ResponseWriter, r *http.Request) {
	var contact types.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.repo.SaveContact(r.Context(), &contact); err != nil {
		respondError(w, http.StatusBadRequest, "failed to save contact", err)
		return
	}
	respondJSON(w, http.StatusCreated, contact)
}

// GetContact handles GET /api/contacts/{id}.
func (h *ContactHandlers) GetContact(w http.ResponseWriter, r *http.Request) {
	contact, err := h.repo.GetContact(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "contact not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load contact", err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

// UpdateContact handles PUT /api/contacts/{id}.
func (h *ContactHandlers) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var contact types.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	contact.ID = r.PathValue("id")
	if _, err := h.repo.GetContact(r.Context(), contact.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "contact not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load contact", err)
		return
	}
	if err := h.repo.SaveContact(r.Context(), &contact); err != nil {
		respondError(w, http.StatusBadRequest, "failed to save contact", err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

// GetSafety handles GET /api/contacts/{id}/safety - the relationship safety
// evaluation over the contact's memory timeline. The result is advisory; it
// does not gate any action.
func (h *ContactHandlers) GetSafety(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.repo.GetContact(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "contact not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load contact", err)
		return
	}

	entries, err := h.memory.ListForEntity(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load timeline", err)
		return
	}
	respondJSON(w, http.StatusOK, decision.EvaluateRelationshipSafety(entries, time.Now()))
}

// GetTimeline handles GET /api/contacts/{id}/memory - the raw entry list.
func (h *ContactHandlers) GetTimeline(w http.ResponseWriter, r *http.Request) {
	entries, err := h.memory.ListForEntity(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load timeline", err)
		return
	}
	if entries == nil {
		entries = []types.MemoryEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// GetContext handles GET /api/contacts/{id}/context - the decayed context
// preview used for prompt injection.
func (h *ContactHandlers) GetContext(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	built, err := h.memory.BuildContext(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to build context", err)
		return
	}
	respondJSON(w, http.StatusOK, ContextResponse{EntityID: id, Context: built})
}

// ExportCSV handles GET /api/contacts/export - the full contact collection
// as a CSV download.
func (h *ContactHandlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.repo.ListContacts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list contacts", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.csv"`)

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{
		"first_name", "last_name", "title", "role", "company", "email",
		"linkedin", "whatsapp", "deal_stage", "temperature", "overall_score",
		"categories", "created_at",
	})
	for _, c := range contacts {
		_ = writer.Write([]string{
			c.FirstName, c.LastName, c.Title, string(c.Role), c.CompanyName,
			c.Email, c.LinkedIn, c.WhatsApp, c.DealStage, string(c.Temperature),
			strconv.Itoa(c.Scoring.Overall),
			strings.Join(c.Categories, ";"),
			c.CreatedAt.Format(time.RFC3339),
		})
	}
	writer.Flush()
}

// AddReminder handles POST /api/contacts/{id}/reminders.
func (h *ContactHandlers) AddReminder(w http.ResponseWriter, r *http.Request) {
	var reminder types.Reminder
	if err := json.NewDecoder(r.Body).Decode(&reminder); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	created, err := h.repo.AddContactReminder(r.Context(), r.PathValue("id"), reminder)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "contact not found", nil)
			return
		}
		respondError(w, http.StatusBadRequest, "failed to add reminder", err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateReminder handles PUT /api/contacts/{id}/reminders/{rid}.
func (h *ContactHandlers) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	var reminder types.Reminder
	if err := json.NewDecoder(r.Body).Decode(&reminder); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	reminder.ID = r.PathValue("rid")
	err := h.repo.UpdateContactReminder(r.Context(), r.PathValue("id"), reminder)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "reminder not found", nil)
			return
		}
		respondError(w, http.StatusBadRequest, "failed to update reminder", err)
		return
	}
	respondJSON(w, http.StatusOK, reminder)
}

// ToggleReminder handles POST /api/contacts/{id}/reminders/{rid}/toggle.
func (h *ContactHandlers) ToggleReminder(w http.ResponseWriter, r *http.Request) {
	err := h.repo.ToggleContactReminder(r.Context(), r.PathValue("id"), r.PathValue("rid"))
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

// DeleteReminder handles DELETE /api/contacts/{id}/reminders/{rid}.
func (h *ContactHandlers) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	err := h.repo.DeleteContactReminder(r.Context(), r.PathValue("id"), r.PathValue("rid"))
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
