package memory

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mariselli/hoofprint/pkg/types"
)

func agedEntry(now time.Time, days int, category types.MemoryCategory, content string) types.MemoryEntry {
	return types.MemoryEntry{
		ID:        fmt.Sprintf("m-%d", days),
		EntityID:  "lead-1",
		Category:  category,
		Content:   content,
		Timestamp: now.Add(-time.Duration(days) * 24 * time.Hour),
	}
}

func TestRenderContext_FreshRelationship(t *testing.T) {
	got := RenderContext(nil, time.Now())
	if got != ContextFresh {
		t.Errorf("expected fresh sentinel, got %q", got)
	}
}

func TestRenderContext_PermanentCategorySurvivesDecay(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	entries := []types.MemoryEntry{
		agedEntry(now, 400, types.CategoryCulturalNote, "prefers meetings in German"),
		agedEntry(now, 200, types.CategoryAction, "demo at Equitana"),
	}

	got := RenderContext(entries, now)

	if !strings.Contains(got, "CULTURAL_NOTE: prefers meetings in German") {
		t.Errorf("cultural note missing from context: %q", got)
	}
	if strings.Contains(got, "demo at Equitana") {
		t.Errorf("200-day-old action should have decayed out: %q", got)
	}
	wantDate := now.Add(-400 * 24 * time.Hour).Format("02 Jan 2006")
	if !strings.HasPrefix(got, "["+wantDate+"]") {
		t.Errorf("line should start with bracketed date %q, got %q", wantDate, got)
	}
}

func TestRenderContext_AllDecayedSentinel(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	entries := []types.MemoryEntry{
		agedEntry(now, 120, types.CategoryAction, "old call"),
		agedEntry(now, 91, types.CategoryEngagement, "old reply"),
	}

	if got := RenderContext(entries, now); got != ContextOutdated {
		t.Errorf("expected outdated sentinel, got %q", got)
	}
}

func TestRenderContext_RecentEntriesKeepOrder(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	entries := []types.MemoryEntry{
		agedEntry(now, 30, types.CategoryAction, "first"),
		agedEntry(now, 10, types.CategoryEngagement, "second"),
	}

	got := RenderContext(entries, now)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}
	if !strings.HasSuffix(lines[0], "first") || !strings.HasSuffix(lines[1], "second") {
		t.Errorf("original order not preserved: %q", got)
	}
}

func TestRenderContext_UnspecifiedCategoryRendersAsNote(t *testing.T) {
	now := time.Now()
	entries := []types.MemoryEntry{agedEntry(now, 1, "", "plain observation")}

	got := RenderContext(entries, now)
	if !strings.Contains(got, "NOTE: plain observation") {
		t.Errorf("unspecified category should render as NOTE, got %q", got)
	}
}
