package handlers

import (
	"github.com/mariselli/hoofprint/pkg/types"
)

// ErrorResponse is the standard error response format for the API.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Toast is the short human-readable outcome message shown by the dashboard.
// Kind is decided from counts: at least one success ⇒ success, zero
// successes ⇒ info, a failed call ⇒ error.
type Toast struct {
	Kind    string `json:"kind"` // success, info, error
	Message string `json:"message"`
}

// BulkStatusRequest is the request format for POST /api/leads/status.
type BulkStatusRequest struct {
	IDs    []string         `json:"ids"`
	Status types.LeadStatus `json:"status"`
}

// BulkStatusResponse reports how many leads were actually updated.
type BulkStatusResponse struct {
	Updated int   `json:"updated"`
	Toast   Toast `json:"toast"`
}

// PromoteResponse is the response for single-lead promotion.
type PromoteResponse struct {
	Promoted bool  `json:"promoted"`
	Toast    Toast `json:"toast"`
}

// ChatRequest is the request format for POST /api/chat.
type ChatRequest struct {
	Prompt string `json:"prompt"`
}

// ChatResponse is the assistant's answer. Always present; gateway failures
// degrade to a fixed fallback string upstream.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// OutreachRequest asks for a draft for one mission.
type OutreachRequest struct {
	Mission types.Mission `json:"mission"`
}

// OutreachResponse carries the drafted message.
type OutreachResponse struct {
	Draft string `json:"draft"`
}

// SendEmailRequest is the request format for POST /api/missions/outreach/send.
type SendEmailRequest struct {
	ContactID string `json:"contact_id"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	HTMLBody  string `json:"html_body"`
}

// AppendMemoryRequest is the request format for POST /api/memory.
type AppendMemoryRequest struct {
	EntityID string                 `json:"entity_id"`
	Type     string                 `json:"type"`
	Category types.MemoryCategory   `json:"category,omitempty"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ContextResponse is the response for GET /api/memory/{entity}/context.
type ContextResponse struct {
	EntityID string `json:"entity_id"`
	Context  string `json:"context"`
}

// MissionListResponse is the response for GET /api/missions.
type MissionListResponse struct {
	Date     string          `json:"date"`
	Missions []types.Mission `json:"missions"`
}

// RecalibrateResponse acknowledges a recalibration request. The pipeline is
// fire-and-forget; Started reports whether this request began a run, but the
// HTTP status is 202 either way.
type RecalibrateResponse struct {
	Started    bool `json:"started"`
	Refreshing bool `json:"refreshing"`
}
