package types

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// EquineEvent is a discoverable market event (show, auction, expo). Events are
// independent top-level entities; the organizer can be promoted to a lead via
// an explicit action, never automatically.
type EquineEvent struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Month          string     `json:"month,omitempty"`
	Year           int        `json:"year,omitempty"`
	Dates          string     `json:"dates,omitempty"`
	Location       string     `json:"location,omitempty"`
	Organizer      string     `json:"organizer,omitempty"`
	OrganizerEmail string     `json:"organizer_email,omitempty"`
	OrganizerPhone string     `json:"organizer_phone,omitempty"`
	Category       string     `json:"category,omitempty"`
	Reminders      []Reminder `json:"reminders,omitempty"`
	DiscoveredAt   time.Time  `json:"discovered_at"`
}

// Validate checks operator-entered event fields.
func (e EquineEvent) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required, validation.Length(1, 300)),
	)
}
