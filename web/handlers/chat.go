package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mariselli/hoofprint/internal/brain"
)

// ChatHandlers contains the free-form assistant endpoint.
type ChatHandlers struct {
	brain *brain.Brain
}

// NewChatHandlers creates a new ChatHandlers instance.
func NewChatHandlers(b *brain.Brain) *ChatHandlers {
	return &ChatHandlers{brain: b}
}

// Chat handles POST /api/chat. The answer is always usable text; gateway
// failures degrade to a fixed fallback message upstream.
func (h *ChatHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		respondError(w, http.StatusBadRequest, "empty prompt", nil)
		return
	}
	respondJSON(w, http.StatusOK, ChatResponse{Answer: h.brain.Ask(r.Context(), req.Prompt)})
}
