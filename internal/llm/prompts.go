package llm

import (
	"fmt"
	"strings"

	"github.com/mariselli/hoofprint/pkg/types"
)

// Prompt builders. Each prompt states a strict JSON output schema; the
// parsers in response_parser.go tolerate the extra prose models add anyway.

// CompanySearchPrompt asks for candidate companies in a vertical/location.
func CompanySearchPrompt(keyword, location string) string {
	return fmt.Sprintf(`You are a B2B market researcher for the equine industry.
List real companies matching the segment %q in or near %q.

Respond with ONLY this JSON structure:
{"companies": [{"name": "...", "location": "...", "website": "...", "category": "...", "description": "..."}]}

Return at most 8 companies. No text outside the JSON.`, keyword, location)
}

// QualificationPrompt asks for an enrichment profile of one company.
func QualificationPrompt(company Company) string {
	return fmt.Sprintf(`Qualify the following equine-industry company as a sales prospect.

Company: %s
Location: %s
Description: %s

Respond with ONLY this JSON structure:
{"summary": "2-3 sentence qualification summary", "categories": ["..."], "buying_signal": "one observable buying signal, or empty string"}`,
		company.Name, company.Location, company.Description)
}

// ContactDiscoveryPrompt asks for likely decision makers at a company.
func ContactDiscoveryPrompt(company Company) string {
	return fmt.Sprintf(`Identify likely decision makers and influencers at %s (%s), an equine-industry company.

Respond with ONLY this JSON structure:
{"contacts": [{"name": "...", "title": "...", "role": "Decision Maker|Influencer|Gatekeeper|Irrelevant", "email": "", "linkedin": ""}]}

Return at most 5 contacts. Leave email/linkedin empty unless publicly known. No text outside the JSON.`,
		company.Name, company.Location)
}

// ScoringPrompt asks for the three component scores of a contact.
func ScoringPrompt(candidate ContactCandidate, company Company) string {
	return fmt.Sprintf(`Score this sales prospect on three 0-100 dimensions:
- authority: how much buying power their role implies
- intent: how likely their company is to buy equine software soon
- engagement: how reachable and responsive they are likely to be

Contact: %s, %s at %s

Respond with ONLY this JSON structure:
{"authority": 0, "intent": 0, "engagement": 0}`,
		candidate.Name, candidate.Title, company.Name)
}

// EventDiscoveryPrompt asks for equine market events in a month/country.
func EventDiscoveryPrompt(month, country string, year int) string {
	return fmt.Sprintf(`List equine industry events (shows, auctions, expos) taking place in %s, %s %d.

Respond with ONLY this JSON structure:
{"events": [{"name": "...", "month": %q, "year": %d, "dates": "...", "location": "...", "organizer": "...", "organizer_email": "", "organizer_phone": "", "category": "..."}]}

Return at most 6 events. No text outside the JSON.`, country, month, year, month, year)
}

// MissionSynthesisPrompt asks for the day's ranked suggested actions.
func MissionSynthesisPrompt(pipelineContext string) string {
	return fmt.Sprintf(`You are a sales strategist. Given the current discovery pipeline below,
propose today's outreach missions.

Pipeline:
%s

Respond with ONLY this JSON structure:
{"missions": [{"contact_name": "...", "role": "...", "company": "...", "priority": "Critical|High|Medium", "explanation": "...", "confidence": 0, "recommended_action": "..."}]}

Confidence is 0-100. No text outside the JSON.`, pipelineContext)
}

// ChatPrompt wraps a free-form operator prompt with assistant identity.
func ChatPrompt(prompt, identityContext string) string {
	var b strings.Builder
	b.WriteString("You are the Hoofprint sales assistant for a single operator selling software into the equine market. Be concise and concrete.\n")
	if identityContext != "" {
		b.WriteString("\nRelationship context:\n")
		b.WriteString(identityContext)
		b.WriteString("\n")
	}
	b.WriteString("\nOperator: ")
	b.WriteString(prompt)
	return b.String()
}

// OutreachPrompt asks for a personalized outreach draft for a mission.
func OutreachPrompt(mission types.Mission, memoryContext string) string {
	return fmt.Sprintf(`Draft a short, personalized outreach email.

Recipient: %s (%s) at %s
Recommended action: %s
Relationship history:
%s

Plain text only, under 150 words, no subject line.`,
		mission.ContactName, mission.Role, mission.Company, mission.RecommendedAction, memoryContext)
}
