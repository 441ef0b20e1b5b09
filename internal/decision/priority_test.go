package decision

import (
	"testing"

	"github.com/mariselli/hoofprint/pkg/types"
)

func TestCalculateLeadPriority_WeightedSum(t *testing.T) {
	got := CalculateLeadPriority(types.Scoring{Authority: 80, Intent: 60, Engagement: 40})
	if got != 62 {
		t.Errorf("expected 62 (30+24+8), got %d", got)
	}
}

func TestCalculateLeadPriority_ZeroDefaults(t *testing.T) {
	if got := CalculateLeadPriority(types.Scoring{}); got != 0 {
		t.Errorf("empty scoring should yield 0, got %d", got)
	}
	if got := CalculateLeadPriority(types.Scoring{Intent: 100}); got != 50 {
		t.Errorf("intent-only 100 should yield 50, got %d", got)
	}
}

func TestCalculateLeadPriority_RoundsHalfUp(t *testing.T) {
	// 0.5*51 + 0.3*0 + 0.2*0 = 25.5 -> 26
	if got := CalculateLeadPriority(types.Scoring{Intent: 51}); got != 26 {
		t.Errorf("expected 26, got %d", got)
	}
}

func TestCalculateLeadPriority_TotalOverOutOfRange(t *testing.T) {
	// The engine does not clamp; it propagates the arithmetic.
	if got := CalculateLeadPriority(types.Scoring{Intent: 200}); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
	if got := CalculateLeadPriority(types.Scoring{Authority: -100}); got != -30 {
		t.Errorf("expected -30, got %d", got)
	}
}
