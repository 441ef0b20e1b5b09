package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mariselli/hoofprint/pkg/types"
)

// extractJSON pulls the first complete JSON object out of text that may carry
// markdown fences or explanations around it, despite instructions.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return text
	}

	braceCount := 0
	inString := false
	escape := false
	for i := start; i < len(text); i++ {
		char := text[i]
		if escape {
			escape = false
			continue
		}
		switch {
		case char == '\\':
			escape = true
		case char == '"':
			inString = !inString
		case !inString && char == '{':
			braceCount++
		case !inString && char == '}':
			braceCount--
			if braceCount == 0 {
				return text[start : i+1]
			}
		}
	}
	return text[start:]
}

// ParseCompanies decodes a company-search response.
func ParseCompanies(response string) ([]Company, error) {
	var parsed struct {
		Companies []Company `json:"companies"`
	}
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse company response: %w", err)
	}
	var companies []Company
	for _, c := range parsed.Companies {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		companies = append(companies, c)
	}
	return companies, nil
}

// ParseQualification decodes a qualification response.
func ParseQualification(response string) (*Qualification, error) {
	var parsed Qualification
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse qualification response: %w", err)
	}
	return &parsed, nil
}

// ParseContacts decodes a contact-discovery response. Contacts with no name
// are dropped; unknown roles default to Influencer rather than failing.
func ParseContacts(response string) ([]ContactCandidate, error) {
	var parsed struct {
		Contacts []ContactCandidate `json:"contacts"`
	}
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse contact response: %w", err)
	}
	var contacts []ContactCandidate
	for _, c := range parsed.Contacts {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		switch c.Role {
		case types.RoleDecisionMaker, types.RoleInfluencer, types.RoleGatekeeper, types.RoleIrrelevant:
		default:
			c.Role = types.RoleInfluencer
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// ParseScoring decodes a scoring response. Missing fields decode to zero,
// which the decision engine treats as absent.
func ParseScoring(response string) (types.Scoring, error) {
	var parsed struct {
		Authority  float64 `json:"authority"`
		Intent     float64 `json:"intent"`
		Engagement float64 `json:"engagement"`
	}
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil {
		return types.Scoring{}, fmt.Errorf("failed to parse scoring response: %w", err)
	}
	return types.Scoring{
		Authority:  clampScore(parsed.Authority),
		Intent:     clampScore(parsed.Intent),
		Engagement: clampScore(parsed.Engagement),
	}, nil
}

// clampScore bounds a component score to [0, 100] before it reaches the
// decision engine, which deliberately does not validate.
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ParseEvents decodes an event-discovery response.
func ParseEvents(response string) ([]types.EquineEvent, error) {
	var parsed struct {
		Events []types.EquineEvent `json:"events"`
	}
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse event response: %w", err)
	}
	var events []types.EquineEvent
	for _, e := range parsed.Events {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// ParseMissions decodes a mission-synthesis response. Unknown priorities are
// kept as-is; the ranking engine sinks them to the bottom.
func ParseMissions(response string) ([]types.Mission, error) {
	var parsed struct {
		Missions []types.Mission `json:"missions"`
	}
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse mission response: %w", err)
	}
	var missions []types.Mission
	for _, m := range parsed.Missions {
		if strings.TrimSpace(m.ContactName) == "" && strings.TrimSpace(m.Company) == "" {
			continue
		}
		missions = append(missions, m)
	}
	return missions, nil
}
