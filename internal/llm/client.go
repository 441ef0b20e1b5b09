package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mariselli/hoofprint/pkg/types"
)

// Client talks to an OpenAI-compatible chat-completions endpoint. All HTTP
// calls go through a circuit breaker so a dead backend fails fast instead of
// stacking up timeouts.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// Config holds client configuration.
type Config struct {
	// BaseURL of the API (default: https://api.openai.com/v1).
	BaseURL string

	// APIKey sent as a Bearer token.
	APIKey string

	// Model name (default: gpt-4o-mini).
	Model string

	// Timeout per request (default: 60s; generation calls are slow).
	Timeout time.Duration
}

// NewClient creates a gateway client with defaults applied.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.openai.com/v1"
	}
	if config.Model == "" {
		config.Model = "gpt-4o-mini"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		model:   config.Model,
		client:  &http.Client{Timeout: config.Timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "LLMGateway",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Complete sends a single-prompt completion request and returns the raw text.
// Rate-limit responses are wrapped in ErrRateLimited and retried with backoff;
// other failures surface immediately.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return completeWithRetry(ctx, "complete", func() (string, error) {
		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.complete(ctx, prompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				return "", fmt.Errorf("llm circuit breaker open: %w", err)
			}
			return "", err
		}
		return result.(string), nil
	})
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("%w: status 429", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		var parsed chatResponse
		if json.Unmarshal(data, &parsed) == nil && parsed.Error != nil {
			if isQuotaMessage(parsed.Error.Message) || isQuotaMessage(parsed.Error.Code) {
				return "", fmt.Errorf("%w: %s", ErrRateLimited, parsed.Error.Message)
			}
			return "", fmt.Errorf("llm request failed (status %d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("llm request failed with status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// isQuotaMessage classifies an error string as quota/rate-limit flavored.
func isQuotaMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "quota") ||
		strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "rate_limit") ||
		strings.Contains(lower, "resource_exhausted")
}

// GetModel returns the configured model name.
func (c *Client) GetModel() string { return c.model }

// SearchCompanies lists candidate companies for a (keyword, location) target.
func (c *Client) SearchCompanies(ctx context.Context, keyword, location string) ([]Company, error) {
	response, err := c.Complete(ctx, CompanySearchPrompt(keyword, location))
	if err != nil {
		return nil, err
	}
	return ParseCompanies(response)
}

// QualifyCompany enriches a discovered company.
func (c *Client) QualifyCompany(ctx context.Context, company Company) (*Qualification, error) {
	response, err := c.Complete(ctx, QualificationPrompt(company))
	if err != nil {
		return nil, err
	}
	return ParseQualification(response)
}

// DiscoverContacts finds likely decision makers at a company.
func (c *Client) DiscoverContacts(ctx context.Context, company Company) ([]ContactCandidate, error) {
	response, err := c.Complete(ctx, ContactDiscoveryPrompt(company))
	if err != nil {
		return nil, err
	}
	return ParseContacts(response)
}

// ScoreContact produces the authority/intent/engagement triple for a contact.
// The overall score is derived by the decision engine, not the model.
func (c *Client) ScoreContact(ctx context.Context, candidate ContactCandidate, company Company) (types.Scoring, error) {
	response, err := c.Complete(ctx, ScoringPrompt(candidate, company))
	if err != nil {
		return types.Scoring{}, err
	}
	return ParseScoring(response)
}

// DiscoverEvents lists equine market events for a month/country pair.
func (c *Client) DiscoverEvents(ctx context.Context, month, country string, year int) ([]types.EquineEvent, error) {
	response, err := c.Complete(ctx, EventDiscoveryPrompt(month, country, year))
	if err != nil {
		return nil, err
	}
	return ParseEvents(response)
}

// SynthesizeMissions produces the day's suggested next actions from the
// pipeline context string.
func (c *Client) SynthesizeMissions(ctx context.Context, pipelineContext string) ([]types.Mission, error) {
	response, err := c.Complete(ctx, MissionSynthesisPrompt(pipelineContext))
	if err != nil {
		return nil, err
	}
	return ParseMissions(response)
}

// Chat is the free-form assistant path with identity context injected.
func (c *Client) Chat(ctx context.Context, prompt, identityContext string) (string, error) {
	return c.Complete(ctx, ChatPrompt(prompt, identityContext))
}

// DraftOutreach writes a personalized outreach message for a mission.
func (c *Client) DraftOutreach(ctx context.Context, mission types.Mission, memoryContext string) (string, error) {
	return c.Complete(ctx, OutreachPrompt(mission, memoryContext))
}
