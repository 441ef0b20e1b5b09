// Package llm implements the AI gateway: structured generation calls against
// an OpenAI-compatible chat-completions endpoint, with quota-aware retry and
// tolerant parsing of model output.
package llm

import (
	"context"
	"errors"

	"github.com/mariselli/hoofprint/pkg/types"
)

// ErrRateLimited marks quota/rate-limit failures, the only retryable class.
// Every other gateway error is fatal to the call that made it.
var ErrRateLimited = errors.New("llm rate limited")

// Company is a candidate business surfaced by discovery.
type Company struct {
	Name        string `json:"name"`
	Location    string `json:"location,omitempty"`
	Website     string `json:"website,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// Qualification is the enrichment result for a company.
type Qualification struct {
	Summary      string   `json:"summary"`
	Categories   []string `json:"categories,omitempty"`
	BuyingSignal string   `json:"buying_signal,omitempty"`
}

// ContactCandidate is a person surfaced by decision-maker discovery.
type ContactCandidate struct {
	Name     string     `json:"name"`
	Title    string     `json:"title,omitempty"`
	Role     types.Role `json:"role,omitempty"`
	Email    string     `json:"email,omitempty"`
	LinkedIn string     `json:"linkedin,omitempty"`
}

// Gateway is the complete intelligence surface the orchestrator depends on.
// Implementations return parsed structured records or a plain string; callers
// classify errors only into rate-limited (retryable) and everything else.
type Gateway interface {
	SearchCompanies(ctx context.Context, keyword, location string) ([]Company, error)
	QualifyCompany(ctx context.Context, company Company) (*Qualification, error)
	DiscoverContacts(ctx context.Context, company Company) ([]ContactCandidate, error)
	ScoreContact(ctx context.Context, candidate ContactCandidate, company Company) (types.Scoring, error)
	DiscoverEvents(ctx context.Context, month, country string, year int) ([]types.EquineEvent, error)
	SynthesizeMissions(ctx context.Context, pipelineContext string) ([]types.Mission, error)
	Chat(ctx context.Context, prompt, identityContext string) (string, error)
	DraftOutreach(ctx context.Context, mission types.Mission, memoryContext string) (string, error)
}
