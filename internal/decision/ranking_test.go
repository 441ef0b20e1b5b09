package decision

import (
	"testing"

	"github.com/mariselli/hoofprint/pkg/types"
)

func TestRankMissions_Determinism(t *testing.T) {
	input := []types.Mission{
		{ContactName: "a", Priority: types.PriorityMedium, Confidence: 90},
		{ContactName: "b", Priority: types.PriorityCritical, Confidence: 10},
		{ContactName: "c", Priority: types.PriorityHigh, Confidence: 50},
		{ContactName: "d", Priority: types.PriorityHigh, Confidence: 80},
	}

	ranked := RankMissions(input)

	wantOrder := []string{"b", "d", "c", "a"}
	for i, want := range wantOrder {
		if ranked[i].ContactName != want {
			t.Errorf("position %d: expected %q, got %q", i, want, ranked[i].ContactName)
		}
	}
}

func TestRankMissions_DoesNotMutateInput(t *testing.T) {
	input := []types.Mission{
		{ContactName: "a", Priority: types.PriorityMedium, Confidence: 90},
		{ContactName: "b", Priority: types.PriorityCritical, Confidence: 10},
	}

	_ = RankMissions(input)

	if input[0].ContactName != "a" || input[1].ContactName != "b" {
		t.Error("input slice was reordered")
	}
}

func TestRankMissions_TruncatesToMaxVisible(t *testing.T) {
	input := make([]types.Mission, MaxVisibleMissions+10)
	for i := range input {
		input[i] = types.Mission{Priority: types.PriorityMedium, Confidence: float64(i)}
	}

	ranked := RankMissions(input)
	if len(ranked) != MaxVisibleMissions {
		t.Errorf("expected %d missions, got %d", MaxVisibleMissions, len(ranked))
	}
}

func TestRankMissions_UnknownPrioritySinks(t *testing.T) {
	input := []types.Mission{
		{ContactName: "x", Priority: "Urgentish", Confidence: 99},
		{ContactName: "y", Priority: types.PriorityMedium, Confidence: 1},
	}

	ranked := RankMissions(input)
	if ranked[0].ContactName != "y" {
		t.Error("unknown priority should rank below Medium")
	}
}
