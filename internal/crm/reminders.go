package crm

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mariselli/hoofprint/internal/storage"
	"github.com/mariselli/hoofprint/pkg/types"
)

// Reminders are fully nested: every mutation goes through the owning lead,
// contact, or event, and persists the whole parent. The slice helpers below
// always return a fresh slice: the input aliases the stored record's backing
// array, and nothing may change until the parent upsert commits.

func cloneReminders(list []types.Reminder) []types.Reminder {
	out := make([]types.Reminder, len(list))
	copy(out, list)
	return out
}

func appendReminder(list []types.Reminder, reminder types.Reminder) ([]types.Reminder, types.Reminder) {
	if reminder.ID == "" {
		reminder.ID = uuid.NewString()
	}
	return append(cloneReminders(list), reminder), reminder
}

func replaceReminder(list []types.Reminder, reminder types.Reminder) ([]types.Reminder, error) {
	for i := range list {
		if list[i].ID == reminder.ID {
			out := cloneReminders(list)
			out[i] = reminder
			return out, nil
		}
	}
	return list, storage.ErrNotFound
}

func removeReminder(list []types.Reminder, id string) ([]types.Reminder, error) {
	for i := range list {
		if list[i].ID == id {
			out := make([]types.Reminder, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...), nil
		}
	}
	return list, storage.ErrNotFound
}

func toggleReminder(list []types.Reminder, id string) ([]types.Reminder, error) {
	for i := range list {
		if list[i].ID == id {
			out := cloneReminders(list)
			out[i].IsCompleted = !out[i].IsCompleted
			return out, nil
		}
	}
	return list, storage.ErrNotFound
}

// AddContactReminder appends a reminder to a contact.
func (r *Repository) AddContactReminder(ctx context.Context, contactID string, reminder types.Reminder) (types.Reminder, error) {
	if err := reminder.Validate(); err != nil {
		return types.Reminder{}, err
	}
	contact, err := r.store.GetContact(ctx, contactID)
	if err != nil {
		return types.Reminder{}, err
	}
	contact.Reminders, reminder = appendReminder(contact.Reminders, reminder)
	if err := r.store.UpsertContact(ctx, contact); err != nil {
		return types.Reminder{}, err
	}
	return reminder, nil
}

// UpdateContactReminder replaces a contact's reminder by ID.
func (r *Repository) UpdateContactReminder(ctx context.Context, contactID string, reminder types.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return err
	}
	contact, err := r.store.GetContact(ctx, contactID)
	if err != nil {
		return err
	}
	if contact.Reminders, err = replaceReminder(contact.Reminders, reminder); err != nil {
		return fmt.Errorf("reminder %s: %w", reminder.ID, err)
	}
	return r.store.UpsertContact(ctx, contact)
}

// DeleteContactReminder removes a contact's reminder by ID.
func (r *Repository) DeleteContactReminder(ctx context.Context, contactID, reminderID string) error {
	contact, err := r.store.GetContact(ctx, contactID)
	if err != nil {
		return err
	}
	if contact.Reminders, err = removeReminder(contact.Reminders, reminderID); err != nil {
		return fmt.Errorf("reminder %s: %w", reminderID, err)
	}
	return r.store.UpsertContact(ctx, contact)
}

// ToggleContactReminder flips a reminder's completion state.
func (r *Repository) ToggleContactReminder(ctx context.Context, contactID, reminderID string) error {
	contact, err := r.store.GetContact(ctx, contactID)
	if err != nil {
		return err
	}
	if contact.Reminders, err = toggleReminder(contact.Reminders, reminderID); err != nil {
		return fmt.Errorf("reminder %s: %w", reminderID, err)
	}
	return r.store.UpsertContact(ctx, contact)
}

// AddLeadReminder appends a reminder to a discovery lead.
func (r *Repository) AddLeadReminder(ctx context.Context, leadID string, reminder types.Reminder) (types.Reminder, error) {
	if err := reminder.Validate(); err != nil {
		return types.Reminder{}, err
	}
	lead, err := r.store.GetLead(ctx, leadID)
	if err != nil {
		return types.Reminder{}, err
	}
	lead.Reminders, reminder = appendReminder(lead.Reminders, reminder)
	if err := r.store.UpsertLead(ctx, lead); err != nil {
		return types.Reminder{}, err
	}
	return reminder, nil
}

// UpdateLeadReminder replaces a lead's reminder by ID.
func (r *Repository) UpdateLeadReminder(ctx context.Context, leadID string, reminder types.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return err
	}
	lead, err := r.store.GetLead(ctx, leadID)
	if err != nil {
		return err
	}
	if lead.Reminders, err = replaceReminder(lead.Reminders, reminder); err != nil {
		return fmt.Errorf("reminder %s: %w", reminder.ID, err)
	}
	return r.store.UpsertLead(ctx, lead)
}

// ToggleLeadReminder flips a lead reminder's completion state.
func (r *Repository) ToggleLeadReminder(ctx context.Context, leadID, reminderID string) error {
	lead, err := r.store.GetLead(ctx, leadID)
	if err != nil {
		return err
	}
	if lead.Reminders, err = toggleReminder(lead.Reminders, reminderID); err != nil {
		return fmt.Errorf("reminder %s: %w", reminderID, err)
	}
	return r.store.UpsertLead(ctx, lead)
}

// DeleteLeadReminder removes a lead's reminder by ID.
func (r *Repository) DeleteLeadReminder(ctx context.Context, leadID, reminderID string) error {
	lead, err := r.store.GetLead(ctx, leadID)
	if err != nil {
		return err
	}
	if lead.Reminders, err = removeReminder(lead.Reminders, reminderID); err != nil {
		return fmt.Errorf("reminder %s: %w", reminderID, err)
	}
	return r.store.UpsertLead(ctx, lead)
}

// AddEventReminder appends a reminder to an event.
func (r *Repository) AddEventReminder(ctx context.Context, eventID string, reminder types.Reminder) (types.Reminder, error) {
	if err := reminder.Validate(); err != nil {
		return types.Reminder{}, err
	}
	event, err := r.store.GetEvent(ctx, eventID)
	if err != nil {
		return types.Reminder{}, err
	}
	event.Reminders, reminder = appendReminder(event.Reminders, reminder)
	if err := r.store.UpsertEvent(ctx, event); err != nil {
		return types.Reminder{}, err
	}
	return reminder, nil
}

// UpdateEventReminder replaces an event's reminder by ID.
func (r *Repository) UpdateEventReminder(ctx context.Context, eventID string, reminder types.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return err
	}
	event, err := r.store.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Reminders, err = replaceReminder(event.Reminders, reminder); err != nil {
		return fmt.Errorf("reminder %s: %w", reminder.ID, err)
	}
	return r.store.UpsertEvent(ctx, event)
}

// DeleteEventReminder removes an event's reminder by ID.
func (r *Repository) DeleteEventReminder(ctx context.Context, eventID, reminderID string) error {
	event, err := r.store.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Reminders, err = removeReminder(event.Reminders, reminderID); err != nil {
		return fmt.Errorf("reminder %s: %w", reminderID, err)
	}
	return r.store.UpsertEvent(ctx, event)
}

// ToggleEventReminder flips an event reminder's completion state.
func (r *Repository) ToggleEventReminder(ctx context.Context, eventID, reminderID string) error {
	event, err := r.store.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Reminders, err = toggleReminder(event.Reminders, reminderID); err != nil {
		return fmt.Errorf("reminder %s: %w", reminderID, err)
	}
	return r.store.UpsertEvent(ctx, event)
}
