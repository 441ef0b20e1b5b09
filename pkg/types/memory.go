// Package types defines the core data structures for the Hoofprint
// relationship-intelligence system: memory entries, discovery leads, CRM
// contacts, market events, and daily missions.
package types

import "time"

// MemoryCategory classifies a memory entry within the fixed vocabulary the
// decision and context layers understand. The zero value means "unspecified".
type MemoryCategory string

const (
	CategoryAction       MemoryCategory = "ACTION"
	CategorySystem       MemoryCategory = "SYSTEM"
	CategoryEngagement   MemoryCategory = "ENGAGEMENT"
	CategoryTrustSignal  MemoryCategory = "TRUST_SIGNAL"
	CategoryCulturalNote MemoryCategory = "CULTURAL_NOTE"
	CategoryBuyingCycle  MemoryCategory = "BUYING_CYCLE"
)

// Reserved system entity identifiers. Memory entries may belong to a real
// lead/event ID or to one of these pseudo-entities. The set is closed and is
// part of the memory store's contract.
const (
	// SystemEntityPipeline owns status entries emitted by the background
	// recalibration pipeline.
	SystemEntityPipeline = "sys:pipeline"

	// SystemEntityMissions owns the serialized daily mission batches.
	// Only the orchestrator reads or writes entries for this entity.
	SystemEntityMissions = "sys:daily-missions"
)

// MemoryEntry is an immutable timestamped fact about an entity. Entries are
// created once via the memory store's append operation and never mutated or
// deleted; ordering within an entity is creation-time order.
type MemoryEntry struct {
	ID        string                 `json:"id"`
	EntityID  string                 `json:"entity_id"`
	Type      string                 `json:"type"` // action, decision, outreach, status, command, email
	Category  MemoryCategory         `json:"category,omitempty"`
	Content   string                 `json:"content"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// IsPermanentCategory reports whether c is exempt from context decay.
// Trust signals, cultural notes, and buying-cycle notes are kept regardless
// of age when building prompt context.
func IsPermanentCategory(c MemoryCategory) bool {
	switch c {
	case CategoryTrustSignal, CategoryCulturalNote, CategoryBuyingCycle:
		return true
	}
	return false
}
