package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mariselli/hoofprint/internal/memory"
	"github.com/mariselli/hoofprint/pkg/types"
)

// MemoryHandlers contains HTTP handlers for the memory feed.
type MemoryHandlers struct {
	memory *memory.Store
}

// NewMemoryHandlers creates a new MemoryHandlers instance.
func NewMemoryHandlers(mem *memory.Store) *MemoryHandlers {
	return &MemoryHandlers{memory: mem}
}

// ListRecent handles GET /api/memory - the newest entries across all
// entities, newest first. Supports a limit query parameter.
func (h *MemoryHandlers) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 0)
	entries, err := h.memory.ListRecent(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list entries", err)
		return
	}
	if entries == nil {
		entries = []types.MemoryEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// Append handles POST /api/memory - record one new fact. The append never
// fails at the operator: persistence trouble is absorbed by the resilient
// store underneath.
func (h *MemoryHandlers) Append(w http.ResponseWriter, r *http.Request) {
	var req AppendMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(req.EntityID) == "" || strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "entity_id and content are required", nil)
		return
	}

	entry := h.memory.Append(r.Context(), types.MemoryEntry{
		EntityID: req.EntityID,
		Type:     req.Type,
		Category: req.Category,
		Content:  req.Content,
		Metadata: req.Metadata,
	})
	respondJSON(w, http.StatusCreated, entry)
}

// ListForEntity handles GET /api/memory/{entity} - one entity's timeline in
// ascending order.
func (h *MemoryHandlers) ListForEntity(w http.ResponseWriter, r *http.Request) {
	entries, err := h.memory.ListForEntity(r.Context(), r.PathValue("entity"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load timeline", err)
		return
	}
	if entries == nil {
		entries = []types.MemoryEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// GetContext handles GET /api/memory/{entity}/context - the decayed context
// string for prompt injection.
func (h *MemoryHandlers) GetContext(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")
	built, err := h.memory.BuildContext(r.Context(), entity)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to build context", err)
		return
	}
	respondJSON(w, http.StatusOK, ContextResponse{EntityID: entity, Context: built})
}
