// Package local implements an in-process mirror store backed by plain maps.
// It is the fallback arena for the resilient store and the storage engine for
// tests. State is owned by the instance — nothing is global — so tests can
// construct isolated stores.
package local

import (
	"context"
	"sort"
	"sync"

	"github.com/mariselli/hoofprint/internal/storage"
	"github.com/mariselli/hoofprint/pkg/types"
)

// Store keeps all records in memory. All methods are safe for concurrent use
// and never fail, which is what makes it a usable arena of last resort.
type Store struct {
	mu       sync.RWMutex
	leads    map[string]types.Lead
	contacts map[string]types.Contact
	events   map[string]types.EquineEvent
	entries  []types.MemoryEntry
}

// New creates an empty local store.
func New() *Store {
	return &Store{
		leads:    make(map[string]types.Lead),
		contacts: make(map[string]types.Contact),
		events:   make(map[string]types.EquineEvent),
	}
}

func (s *Store) UpsertLead(_ context.Context, lead *types.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[lead.ID] = *lead
	return nil
}

func (s *Store) GetLead(_ context.Context, id string) (*types.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lead, ok := s.leads[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &lead, nil
}

func (s *Store) ListLeads(_ context.Context) ([]types.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	leads := make([]types.Lead, 0, len(s.leads))
	for _, l := range s.leads {
		leads = append(leads, l)
	}
	sort.Slice(leads, func(i, j int) bool {
		if leads[i].DiscoveredAt.Equal(leads[j].DiscoveredAt) {
			return leads[i].ID < leads[j].ID
		}
		return leads[i].DiscoveredAt.After(leads[j].DiscoveredAt)
	})
	return leads, nil
}

func (s *Store) UpdateLeadStatus(_ context.Context, ids []string, status types.LeadStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if lead, ok := s.leads[id]; ok {
			lead.Status = status
			s.leads[id] = lead
		}
	}
	return nil
}

func (s *Store) UpsertContact(_ context.Context, contact *types.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[contact.ID] = *contact
	return nil
}

func (s *Store) GetContact(_ context.Context, id string) (*types.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contact, ok := s.contacts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &contact, nil
}

func (s *Store) ListContacts(_ context.Context) ([]types.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contacts := make([]types.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		contacts = append(contacts, c)
	}
	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].CreatedAt.Equal(contacts[j].CreatedAt) {
			return contacts[i].ID < contacts[j].ID
		}
		return contacts[i].CreatedAt.After(contacts[j].CreatedAt)
	})
	return contacts, nil
}

func (s *Store) UpsertEvent(_ context.Context, event *types.EquineEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = *event
	return nil
}

func (s *Store) GetEvent(_ context.Context, id string) (*types.EquineEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &event, nil
}

func (s *Store) ListEvents(_ context.Context) ([]types.EquineEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]types.EquineEvent, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].DiscoveredAt.Equal(events[j].DiscoveredAt) {
			return events[i].ID < events[j].ID
		}
		return events[i].DiscoveredAt.After(events[j].DiscoveredAt)
	})
	return events, nil
}

func (s *Store) AppendEntry(_ context.Context, entry *types.MemoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *Store) ListEntriesByEntity(_ context.Context, entityID string) ([]types.MemoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []types.MemoryEntry
	for _, e := range s.entries {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (s *Store) ListRecentEntries(_ context.Context, limit int) ([]types.MemoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.MemoryEntry, len(s.entries))
	copy(out, s.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close is a no-op; the local store holds no external resources.
func (s *Store) Close() error { return nil }
