package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mariselli/hoofprint/pkg/types"
)

// DecayWindowDays is the age threshold beyond which non-permanent entries are
// excluded from context summaries. Permanent categories (trust signals,
// cultural notes, buying-cycle notes) are kept regardless of age.
const DecayWindowDays = 90

// Sentinel context strings for empty and fully-decayed timelines.
const (
	ContextFresh    = "Fresh relationship: no interaction history on record."
	ContextOutdated = "Historical data outdated: all non-permanent memories are older than the decay window."
)

const contextDateLayout = "02 Jan 2006"

// BuildContext compresses an entity's timeline into a single bounded string
// for prompt injection. Given a fixed now this is a pure read plus a pure
// string transform; the only time dependency is the decay cutoff.
func (s *Store) BuildContext(ctx context.Context, entityID string) (string, error) {
	entries, err := s.ListForEntity(ctx, entityID)
	if err != nil {
		return "", err
	}
	return RenderContext(entries, s.now()), nil
}

// RenderContext applies the decay filter and formats the surviving entries,
// one line per entry, in their original ascending order.
func RenderContext(entries []types.MemoryEntry, now time.Time) string {
	if len(entries) == 0 {
		return ContextFresh
	}

	cutoff := now.Add(-DecayWindowDays * 24 * time.Hour)
	var lines []string
	for _, e := range entries {
		if !types.IsPermanentCategory(e.Category) && e.Timestamp.Before(cutoff) {
			continue
		}
		category := string(e.Category)
		if category == "" {
			category = "NOTE"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", e.Timestamp.Format(contextDateLayout), category, e.Content))
	}

	if len(lines) == 0 {
		return ContextOutdated
	}
	return strings.Join(lines, "\n")
}
