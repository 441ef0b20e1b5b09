// Package crm implements the discovery-lead and contact repository: listing
// with derived save state, promotion with duplicate suppression, and the
// mission merge-or-create path.
package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mariselli/hoofprint/internal/storage"
	"github.com/mariselli/hoofprint/pkg/types"
)

// DealStageStrategic is assigned to every contact touched by mission
// promotion.
const DealStageStrategic = "Strategic"

const noteDateLayout = "02 Jan 2006"

// Repository mediates all lead, contact, and event access. It owns the
// duplicate-detection rules; the backing store is plain CRUD.
type Repository struct {
	store storage.Store
	now   func() time.Time
}

// New creates a repository over the given store.
func New(store storage.Store) *Repository {
	return NewWithClock(store, time.Now)
}

// NewWithClock creates a repository with an injected clock for tests.
func NewWithClock(store storage.Store, now func() time.Time) *Repository {
	return &Repository{store: store, now: now}
}

// SaveLead creates or updates a lead, assigning an ID and discovery time on
// first save.
func (r *Repository) SaveLead(ctx context.Context, lead *types.Lead) error {
	if err := lead.Validate(); err != nil {
		return err
	}
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.Status == "" {
		lead.Status = types.StatusDiscovered
	}
	if lead.DiscoveredAt.IsZero() {
		lead.DiscoveredAt = r.now()
	}
	return r.store.UpsertLead(ctx, lead)
}

// GetLead retrieves a single lead by ID.
func (r *Repository) GetLead(ctx context.Context, id string) (*types.Lead, error) {
	return r.store.GetLead(ctx, id)
}

// ListLeads returns all discovery leads with IsSaved recomputed against the
// current contact collection. IsSaved is never stored; it reflects whatever
// the CRM holds at read time.
func (r *Repository) ListLeads(ctx context.Context) ([]types.Lead, error) {
	leads, err := r.store.ListLeads(ctx)
	if err != nil {
		return nil, err
	}
	contacts, err := r.store.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range leads {
		leads[i].IsSaved = findDuplicateContact(&leads[i], contacts) != nil
	}
	return leads, nil
}

// Inbox returns the actionable subset of the discovery log. It is a filtered
// view over ListLeads, not a separate collection.
func (r *Repository) Inbox(ctx context.Context) ([]types.Lead, error) {
	leads, err := r.ListLeads(ctx)
	if err != nil {
		return nil, err
	}
	var inbox []types.Lead
	for _, lead := range leads {
		if lead.Status == types.StatusDiscovered || lead.Status == types.StatusEnriched {
			inbox = append(inbox, lead)
		}
	}
	return inbox, nil
}

// PromoteLead moves a discovery lead into the CRM contact collection. A
// duplicate (matching LinkedIn URL, or exact first+last+company) is a
// business rejection: the call returns false with a nil error and nothing
// changes.
func (r *Repository) PromoteLead(ctx context.Context, id string) (bool, error) {
	lead, err := r.store.GetLead(ctx, id)
	if err != nil {
		return false, err
	}
	contacts, err := r.store.ListContacts(ctx)
	if err != nil {
		return false, err
	}
	if findDuplicateContact(lead, contacts) != nil {
		return false, nil
	}

	first, last := types.SplitName(lead.Name)
	contact := &types.Contact{
		ID:            uuid.NewString(),
		FirstName:     first,
		LastName:      last,
		Title:         lead.Title,
		Role:          lead.Role,
		CompanyName:   lead.CompanyName,
		Email:         lead.Email,
		LinkedIn:      lead.LinkedIn,
		WhatsApp:      lead.WhatsApp,
		WhatsAppOptIn: lead.WhatsAppOptIn,
		Categories:    lead.Categories,
		Notes:         lead.Notes,
		DealStage:     lead.DealStage,
		Temperature:   lead.Temperature,
		Scoring:       lead.Scoring,
		Reminders:     lead.Reminders,
		Source:        lead.Source,
		CreatedAt:     r.now(),
	}
	if err := r.store.UpsertContact(ctx, contact); err != nil {
		return false, err
	}
	if err := r.store.UpdateLeadStatus(ctx, []string{id}, types.StatusSaved); err != nil {
		return false, err
	}
	return true, nil
}

// BulkUpdateStatus applies a status to a batch of leads and returns how many
// were actually updated. Promotion to SAVED runs the individual promotion
// path per lead so the duplicate rule holds; duplicates are skipped silently.
// Any other status is a plain batch write.
func (r *Repository) BulkUpdateStatus(ctx context.Context, ids []string, status types.LeadStatus) (int, error) {
	if status == types.StatusSaved {
		saved := 0
		for _, id := range ids {
			promoted, err := r.PromoteLead(ctx, id)
			if err != nil {
				return saved, err
			}
			if promoted {
				saved++
			}
		}
		return saved, nil
	}
	if err := r.store.UpdateLeadStatus(ctx, ids, status); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// SaveContact creates or updates a contact directly.
func (r *Repository) SaveContact(ctx context.Context, contact *types.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = r.now()
	}
	return r.store.UpsertContact(ctx, contact)
}

// GetContact retrieves a single contact by ID.
func (r *Repository) GetContact(ctx context.Context, id string) (*types.Contact, error) {
	return r.store.GetContact(ctx, id)
}

// ListContacts returns all saved contacts.
func (r *Repository) ListContacts(ctx context.Context) ([]types.Contact, error) {
	return r.store.ListContacts(ctx)
}

// PromoteMission merges a mission into the CRM, or creates a contact for it.
// Lookup is by (first, last, company) parsed from the mission only; the
// LinkedIn duplicate rule from lead promotion deliberately does not apply
// here. A merge appends a dated note line, raises temperature to at least
// Warm without ever downgrading, and sets the deal stage to Strategic. When
// withReminder is set, a follow-up reminder seven days out is appended in
// both paths.
func (r *Repository) PromoteMission(ctx context.Context, mission types.Mission, withReminder bool) (*types.Contact, error) {
	first, last := types.SplitName(mission.ContactName)
	contacts, err := r.store.ListContacts(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now()
	noteLine := fmt.Sprintf("[%s] Mission (%s): %s", now.Format(noteDateLayout), mission.Priority, mission.RecommendedAction)

	var contact *types.Contact
	for i := range contacts {
		c := &contacts[i]
		if c.FirstName == first && c.LastName == last && c.CompanyName == mission.Company {
			contact = c
			break
		}
	}

	if contact != nil {
		if contact.Notes != "" {
			contact.Notes += "\n"
		}
		contact.Notes += noteLine
		contact.Temperature = types.WarmerOf(contact.Temperature, types.TemperatureWarm)
		contact.DealStage = DealStageStrategic
	} else {
		contact = &types.Contact{
			ID:          uuid.NewString(),
			FirstName:   first,
			LastName:    last,
			Role:        types.Role(mission.Role),
			CompanyName: mission.Company,
			Email:       placeholderEmail(first, last),
			Notes:       noteLine,
			DealStage:   DealStageStrategic,
			Temperature: types.TemperatureWarm,
			Source:      "Mission",
			CreatedAt:   now,
		}
	}

	if withReminder {
		contact.Reminders = append(contact.Reminders, types.Reminder{
			ID:   uuid.NewString(),
			Date: now.AddDate(0, 0, 7),
			Type: types.ReminderFollowUp,
			Note: mission.RecommendedAction,
		})
	}

	if err := r.store.UpsertContact(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// findDuplicateContact applies the lead-promotion duplicate rule: non-empty
// LinkedIn equality, or the exact case-sensitive name/company triple.
func findDuplicateContact(lead *types.Lead, contacts []types.Contact) *types.Contact {
	first, last := types.SplitName(lead.Name)
	for i := range contacts {
		c := &contacts[i]
		if lead.LinkedIn != "" && c.LinkedIn == lead.LinkedIn {
			return c
		}
		if c.FirstName == first && c.LastName == last && c.CompanyName == lead.CompanyName {
			return c
		}
	}
	return nil
}

// placeholderEmail synthesizes an obviously fake address for contacts created
// from missions, which carry no channel data.
func placeholderEmail(first, last string) string {
	local := strings.ToLower(strings.TrimSpace(first + "." + last))
	local = strings.ReplaceAll(local, " ", ".")
	local = strings.Trim(local, ".")
	if local == "" {
		local = "unknown"
	}
	return local + "@placeholder.invalid"
}
