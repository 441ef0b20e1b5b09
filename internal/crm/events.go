package crm

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mariselli/hoofprint/pkg/types"
)

// SaveEvent creates or updates a market event.
func (r *Repository) SaveEvent(ctx context.Context, event *types.EquineEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.DiscoveredAt.IsZero() {
		event.DiscoveredAt = r.now()
	}
	return r.store.UpsertEvent(ctx, event)
}

// GetEvent retrieves a single event by ID.
func (r *Repository) GetEvent(ctx context.Context, id string) (*types.EquineEvent, error) {
	return r.store.GetEvent(ctx, id)
}

// ListEvents returns all known market events.
func (r *Repository) ListEvents(ctx context.Context) ([]types.EquineEvent, error) {
	return r.store.ListEvents(ctx)
}

// PromoteOrganizer derives a discovery lead from an event's organizer. The
// derivation is explicit only; discovering an event never creates the lead by
// itself. Events with no organizer on record cannot be promoted.
func (r *Repository) PromoteOrganizer(ctx context.Context, eventID string) (*types.Lead, error) {
	event, err := r.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Organizer == "" {
		return nil, fmt.Errorf("event %q has no organizer to promote", event.Name)
	}

	lead := &types.Lead{
		ID:           uuid.NewString(),
		Name:         event.Organizer,
		Title:        "Event Organizer",
		Role:         types.RoleDecisionMaker,
		CompanyName:  event.Name,
		Email:        event.OrganizerEmail,
		WhatsApp:     event.OrganizerPhone,
		Categories:   []string{"Event Organizer"},
		Status:       types.StatusDiscovered,
		Source:       "Event: " + event.Name,
		DiscoveredAt: r.now(),
	}
	if err := r.store.UpsertLead(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}
