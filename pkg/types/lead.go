package types

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LeadStatus tracks a discovery lead through its lifecycle.
// DISCOVERED leads may be promoted to SAVED (one-way in normal flow),
// set aside as IGNORED, or ARCHIVED. Enriched is a parallel pre-save state
// reached after AI qualification.
type LeadStatus string

const (
	StatusDiscovered LeadStatus = "DISCOVERED"
	StatusEnriched   LeadStatus = "Enriched"
	StatusSaved      LeadStatus = "SAVED"
	StatusIgnored    LeadStatus = "IGNORED"
	StatusArchived   LeadStatus = "ARCHIVED"
)

// Role classifies a person's buying influence at their company.
type Role string

const (
	RoleDecisionMaker Role = "Decision Maker"
	RoleInfluencer    Role = "Influencer"
	RoleGatekeeper    Role = "Gatekeeper"
	RoleIrrelevant    Role = "Irrelevant"
)

// Temperature is the perceived warmth of a relationship.
type Temperature string

const (
	TemperatureCold Temperature = "Cold"
	TemperatureWarm Temperature = "Warm"
	TemperatureHot  Temperature = "Hot"
)

// temperatureRank orders temperatures for upgrade-only transitions.
var temperatureRank = map[Temperature]int{
	TemperatureCold: 0,
	TemperatureWarm: 1,
	TemperatureHot:  2,
}

// WarmerOf returns the warmer of two temperatures. Unknown values rank
// below Cold so they never win.
func WarmerOf(a, b Temperature) Temperature {
	if temperatureRank[a] >= temperatureRank[b] {
		return a
	}
	return b
}

// ReminderType enumerates the kinds of reminders a lead, contact, or event
// can carry.
type ReminderType string

const (
	ReminderFollowUp       ReminderType = "Follow-up"
	ReminderEventCheckIn   ReminderType = "Event Check-in"
	ReminderMeeting        ReminderType = "Meeting"
	ReminderContractReview ReminderType = "Contract Review"
)

// Reminder is owned exclusively by its parent lead, contact, or event and is
// created, edited, and deleted only through the parent. IsCompleted is
// toggle-only.
type Reminder struct {
	ID          string       `json:"id"`
	Date        time.Time    `json:"date"`
	Type        ReminderType `json:"type"`
	Note        string       `json:"note,omitempty"`
	IsCompleted bool         `json:"is_completed"`
}

// Validate checks operator-entered reminder fields.
func (r Reminder) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Date, validation.Required),
		validation.Field(&r.Type, validation.Required, validation.In(
			ReminderFollowUp, ReminderEventCheckIn, ReminderMeeting, ReminderContractReview)),
	)
}

// Scoring holds the 0-100 component scores for a lead. Overall is derived by
// the decision engine, never entered directly.
type Scoring struct {
	Authority  float64 `json:"authority"`
	Intent     float64 `json:"intent"`
	Engagement float64 `json:"engagement"`
	Overall    int     `json:"overall"`
}

// Lead is a person-at-a-company prospect in the discovery log.
type Lead struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Title        string     `json:"title,omitempty"`
	Role         Role       `json:"role,omitempty"`
	CompanyID    string     `json:"company_id,omitempty"`
	CompanyName  string     `json:"company_name"`
	Email        string     `json:"email,omitempty"`
	LinkedIn     string     `json:"linkedin,omitempty"`
	WhatsApp     string     `json:"whatsapp,omitempty"`
	WhatsAppOptIn bool      `json:"whatsapp_opt_in"`
	Categories   []string   `json:"categories,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Status       LeadStatus `json:"status"`
	DealStage    string     `json:"deal_stage,omitempty"`
	Temperature  Temperature `json:"temperature,omitempty"`
	Scoring      Scoring    `json:"scoring"`
	Reminders    []Reminder `json:"reminders,omitempty"`
	Source       string     `json:"source,omitempty"`
	DiscoveredAt time.Time  `json:"discovered_at"`

	// IsSaved is a read-side join against the CRM contact collection,
	// recomputed whenever discovery leads are listed. Never stored.
	IsSaved bool `json:"is_saved"`
}

// Validate checks operator-entered lead fields.
func (l Lead) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&l.CompanyName, validation.Required, validation.Length(1, 200)),
	)
}

// Contact is a saved CRM contact. Contacts originate from lead promotion,
// event organizer promotion, or mission promotion.
type Contact struct {
	ID            string      `json:"id"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Title         string      `json:"title,omitempty"`
	Role          Role        `json:"role,omitempty"`
	CompanyName   string      `json:"company_name"`
	Email         string      `json:"email,omitempty"`
	LinkedIn      string      `json:"linkedin,omitempty"`
	WhatsApp      string      `json:"whatsapp,omitempty"`
	WhatsAppOptIn bool        `json:"whatsapp_opt_in"`
	Categories    []string    `json:"categories,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	DealStage     string      `json:"deal_stage,omitempty"`
	Temperature   Temperature `json:"temperature,omitempty"`
	Scoring       Scoring     `json:"scoring"`
	Reminders     []Reminder  `json:"reminders,omitempty"`
	Source        string      `json:"source,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// FullName joins first and last name for display.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// SplitName splits a display name into (first, last). The first token is the
// first name; everything after it is the last name. Single-token names get an
// empty last name.
func SplitName(name string) (string, string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
