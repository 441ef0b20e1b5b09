// Package memory implements the append-only per-entity memory log and the
// decayed context builder used for prompt injection.
package memory

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mariselli/hoofprint/internal/storage"
	"github.com/mariselli/hoofprint/pkg/types"
)

// DefaultRecentLimit caps the global recent-entries feed.
const DefaultRecentLimit = 100

// Store owns MemoryEntry lifecycle: entries are appended once with an assigned
// ID and timestamp and never change afterwards. Persistence goes through the
// resilient store, so appends never fail the caller.
type Store struct {
	backend storage.EntryStore
	now     func() time.Time
}

// New creates a memory store over backend.
func New(backend storage.EntryStore) *Store {
	return &Store{backend: backend, now: time.Now}
}

// NewWithClock creates a memory store with an injected clock for tests.
func NewWithClock(backend storage.EntryStore, now func() time.Time) *Store {
	return &Store{backend: backend, now: now}
}

// Append assigns a fresh ID and the current timestamp to entry, records it,
// and returns the stored entry. A persistence failure is logged, not
// returned — the caller always gets a usable entry back.
func (s *Store) Append(ctx context.Context, entry types.MemoryEntry) types.MemoryEntry {
	entry.ID = uuid.NewString()
	entry.Timestamp = s.now()

	if err := s.backend.AppendEntry(ctx, &entry); err != nil {
		log.Printf("Memory: append for entity %s failed (entry kept in-process): %v", entry.EntityID, err)
	}
	return entry
}

// ListForEntity returns all entries for entityID in ascending timestamp order.
func (s *Store) ListForEntity(ctx context.Context, entityID string) ([]types.MemoryEntry, error) {
	return s.backend.ListEntriesByEntity(ctx, entityID)
}

// ListRecent returns the newest entries across all entities, newest first.
// A limit of zero or less uses DefaultRecentLimit.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]types.MemoryEntry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.backend.ListRecentEntries(ctx, limit)
}
