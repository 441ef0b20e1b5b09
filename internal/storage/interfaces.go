// Package storage provides composable store interfaces for the Hoofprint
// system. Interfaces are small and per-record-family so backends can be
// implemented independently and composed behind the resilient wrapper.
package storage

import (
	"context"
	"errors"

	"github.com/mariselli/hoofprint/pkg/types"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// LeadStore persists discovery leads.
type LeadStore interface {
	// UpsertLead creates or replaces a lead by ID.
	UpsertLead(ctx context.Context, lead *types.Lead) error

	// GetLead retrieves a lead by ID. Returns ErrNotFound if absent.
	GetLead(ctx context.Context, id string) (*types.Lead, error)

	// ListLeads returns all leads ordered by discovery time descending.
	ListLeads(ctx context.Context) ([]types.Lead, error)

	// UpdateLeadStatus sets the status on every lead in ids.
	UpdateLeadStatus(ctx context.Context, ids []string, status types.LeadStatus) error
}

// ContactStore persists saved CRM contacts.
type ContactStore interface {
	UpsertContact(ctx context.Context, contact *types.Contact) error
	GetContact(ctx context.Context, id string) (*types.Contact, error)
	ListContacts(ctx context.Context) ([]types.Contact, error)
}

// EventStore persists market events.
type EventStore interface {
	UpsertEvent(ctx context.Context, event *types.EquineEvent) error
	GetEvent(ctx context.Context, id string) (*types.EquineEvent, error)
	ListEvents(ctx context.Context) ([]types.EquineEvent, error)
}

// EntryStore persists memory entries. Entries are append-only; there is no
// update or delete path.
type EntryStore interface {
	// AppendEntry records a fully formed entry (ID and timestamp assigned by
	// the caller).
	AppendEntry(ctx context.Context, entry *types.MemoryEntry) error

	// ListEntriesByEntity returns an entity's entries in ascending timestamp
	// order.
	ListEntriesByEntity(ctx context.Context, entityID string) ([]types.MemoryEntry, error)

	// ListRecentEntries returns the newest entries across all entities,
	// newest first, capped at limit.
	ListRecentEntries(ctx context.Context, limit int) ([]types.MemoryEntry, error)
}

// Store is the full persistence surface the repositories and memory store
// build on.
type Store interface {
	LeadStore
	ContactStore
	EventStore
	EntryStore

	// Close releases any resources held by the store.
	Close() error
}
