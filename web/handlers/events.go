package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mariselli/hoofprint/internal/crm"
	"github.com/mariselli/hoofprint/internal/storage"
	"github.com/mariselli/hoofprint/pkg/types"
)

// EventHandlers contains HTTP handlers for market events.
type EventHandlers struct {
	repo *crm.Repository
}

// NewEventHandlers creates a new EventHandlers instance.
func NewEventHandlers(repo *crm.Repository) *EventHandlers {
	return &EventHandlers{repo: repo}
}

// ListEvents handles GET /api/events.
func (h *EventHandlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.ListEvents(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list events", err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// CreateEvent handles POST /api/events - manual event entry.
func (h *EventHandlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event types.EquineEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.repo.SaveEvent(r.Context(), &event); err != nil {
		respondError(w, http.StatusBadRequest, "failed to save event", err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

// GetEvent handles GET /api/events/{id}.
func (h *EventHandlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.repo.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "event not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load event", err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// UpdateEvent handles PUT /api/events/{id}.
func (h *EventHandlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var event types.EquineEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	event.ID = r.PathValue("id")
	if _, err := h.repo.GetEvent(r.Context(), event.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "event not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load event", err)
		return
	}
	if err := h.repo.SaveEvent(r.Context(), &event); err != nil {
		respondError(w, http.StatusBadRequest, "failed to save event", err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// PromoteOrganizer handles POST /api/events/{id}/promote - derive a
// discovery lead from the event organizer.
func (h *EventHandlers) PromoteOrganizer(w http.ResponseWriter, r *http.Request) {
	lead, err := h.repo.PromoteOrganizer(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "event not found", nil)
			return
		}
		respondError(w, http.StatusBadRequest, "failed to promote organizer", err)
		return
	}
	respondJSON(w, http.StatusCreated, lead)
}

// AddReminder handles POST /api/events/{id}/reminders.
func (h *EventHandlers) AddReminder(w http.ResponseWriter, r *http.Request) {
	var reminder types.Reminder
	if err := json.NewDecoder(r.Body).Decode(&reminder); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	created, err := h.repo.AddEventReminder(r.Context(), r.PathValue("id"), reminder)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "event not found", nil)
			return
		}
		respondError(w, http.StatusBadRequest, "failed to add reminder", err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ToggleReminder handles POST /api/events/{id}/reminders/{rid}/toggle.
func (h *EventHandlers) ToggleReminder(w http.ResponseWriter, r *http.Request) {
	err := h.repo.ToggleEventReminder(r.Context(), r.PathValue("id"), r.PathValue("rid"))
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

// DeleteReminder handles DELETE /api/events/{id}/reminders/{rid}.
func (h *EventHandlers) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	err := h.repo.DeleteEventReminder(r.Context(), r.PathValue("id"), r.PathValue("rid"))
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
