// Package resilient composes a remote store with an in-process mirror so that
// persistence failures never reach callers. Writes land in the mirror
// unconditionally and are mirrored to the remote backend best-effort; reads
// try the remote first and fall back to the mirror. Within a process the
// mirror is ground truth — a failed remote write is logged, never rolled back,
// never surfaced.
package resilient

import (
	"context"
	"log"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mariselli/hoofprint/internal/storage"
	"github.com/mariselli/hoofprint/internal/storage/local"
	"github.com/mariselli/hoofprint/pkg/types"
)

// Store wraps an optional remote storage.Store with a local mirror. A nil
// remote degrades to mirror-only operation.
type Store struct {
	mirror  *local.Store
	remote  storage.Store
	breaker *gobreaker.CircuitBreaker
}

// New creates a resilient store over remote. The circuit breaker trips after
// three consecutive remote failures and retries after thirty seconds, so a
// dead backend stops adding latency to every call.
func New(remote storage.Store) *Store {
	return &Store{
		mirror: local.New(),
		remote: remote,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "RemoteStore",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

// Mirror exposes the local arena, mainly for tests.
func (s *Store) Mirror() *local.Store { return s.mirror }

// tryRemote runs fn against the remote backend through the circuit breaker.
// Returns false when there is no remote, the breaker is open, or fn failed.
func (s *Store) tryRemote(op string, fn func() error) bool {
	if s.remote == nil {
		return false
	}
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if err != nil {
		log.Printf("Storage: remote %s failed, serving local mirror: %v", op, err)
		return false
	}
	return true
}

func (s *Store) UpsertLead(ctx context.Context, lead *types.Lead) error {
	if err := s.mirror.UpsertLead(ctx, lead); err != nil {
		return err
	}
	s.tryRemote("upsert lead", func() error { return s.remote.UpsertLead(ctx, lead) })
	return nil
}

func (s *Store) GetLead(ctx context.Context, id string) (*types.Lead, error) {
	var lead *types.Lead
	ok := s.tryRemote("get lead", func() error {
		var err error
		lead, err = s.remote.GetLead(ctx, id)
		return err
	})
	if ok {
		return lead, nil
	}
	return s.mirror.GetLead(ctx, id)
}

func (s *Store) ListLeads(ctx context.Context) ([]types.Lead, error) {
	var leads []types.Lead
	ok := s.tryRemote("list leads", func() error {
		var err error
		leads, err = s.remote.ListLeads(ctx)
		return err
	})
	if ok {
		return leads, nil
	}
	return s.mirror.ListLeads(ctx)
}

func (s *Store) UpdateLeadStatus(ctx context.Context, ids []string, status types.LeadStatus) error {
	if err := s.mirror.UpdateLeadStatus(ctx, ids, status); err != nil {
		return err
	}
	s.tryRemote("update lead status", func() error { return s.remote.UpdateLeadStatus(ctx, ids, status) })
	return nil
}

func (s *Store) UpsertContact(ctx context.Context, contact *types.Contact) error {
	if err := s.mirror.UpsertContact(ctx, contact); err != nil {
		return err
	}
	s.tryRemote("upsert contact", func() error { return s.remote.UpsertContact(ctx, contact) })
	return nil
}

func (s *Store) GetContact(ctx context.Context, id string) (*types.Contact, error) {
	var contact *types.Contact
	ok := s.tryRemote("get contact", func() error {
		var err error
		contact, err = s.remote.GetContact(ctx, id)
		return err
	})
	if ok {
		return contact, nil
	}
	return s.mirror.GetContact(ctx, id)
}

func (s *Store) ListContacts(ctx context.Context) ([]types.Contact, error) {
	var contacts []types.Contact
	ok := s.tryRemote("list contacts", func() error {
		var err error
		contacts, err = s.remote.ListContacts(ctx)
		return err
	})
	if ok {
		return contacts, nil
	}
	return s.mirror.ListContacts(ctx)
}

func (s *Store) UpsertEvent(ctx context.Context, event *types.EquineEvent) error {
	if err := s.mirror.UpsertEvent(ctx, event); err != nil {
		return err
	}
	s.tryRemote("upsert event", func() error { return s.remote.UpsertEvent(ctx, event) })
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*types.EquineEvent, error) {
	var event *types.EquineEvent
	ok := s.tryRemote("get event", func() error {
		var err error
		event, err = s.remote.GetEvent(ctx, id)
		return err
	})
	if ok {
		return event, nil
	}
	return s.mirror.GetEvent(ctx, id)
}

func (s *Store) ListEvents(ctx context.Context) ([]types.EquineEvent, error) {
	var events []types.EquineEvent
	ok := s.tryRemote("list events", func() error {
		var err error
		events, err = s.remote.ListEvents(ctx)
		return err
	})
	if ok {
		return events, nil
	}
	return s.mirror.ListEvents(ctx)
}

func (s *Store) AppendEntry(ctx context.Context, entry *types.MemoryEntry) error {
	if err := s.mirror.AppendEntry(ctx, entry); err != nil {
		return err
	}
	s.tryRemote("append entry", func() error { return s.remote.AppendEntry(ctx, entry) })
	return nil
}

func (s *Store) ListEntriesByEntity(ctx context.Context, entityID string) ([]types.MemoryEntry, error) {
	var entries []types.MemoryEntry
	ok := s.tryRemote("list entries", func() error {
		var err error
		entries, err = s.remote.ListEntriesByEntity(ctx, entityID)
		return err
	})
	if ok {
		return entries, nil
	}
	return s.mirror.ListEntriesByEntity(ctx, entityID)
}

func (s *Store) ListRecentEntries(ctx context.Context, limit int) ([]types.MemoryEntry, error) {
	var entries []types.MemoryEntry
	ok := s.tryRemote("list recent entries", func() error {
		var err error
		entries, err = s.remote.ListRecentEntries(ctx, limit)
		return err
	})
	if ok {
		return entries, nil
	}
	return s.mirror.ListRecentEntries(ctx, limit)
}

func (s *Store) Close() error {
	if s.remote != nil {
		return s.remote.Close()
	}
	return nil
}
