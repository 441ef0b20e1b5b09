package decision

import (
	"sort"

	"github.com/mariselli/hoofprint/pkg/types"
)

// MaxVisibleMissions caps the ranked mission list shown to the operator.
const MaxVisibleMissions = 33

// priorityWeight maps mission priority buckets to sortable weights.
// Unknown priorities sink to the bottom.
func priorityWeight(p types.MissionPriority) int {
	switch p {
	case types.PriorityCritical:
		return 3
	case types.PriorityHigh:
		return 2
	case types.PriorityMedium:
		return 1
	}
	return 0
}

// RankMissions returns a new slice sorted by priority weight descending, ties
// broken by confidence descending, stable otherwise, truncated to
// MaxVisibleMissions. The input slice is never mutated.
func RankMissions(missions []types.Mission) []types.Mission {
	ranked := make([]types.Mission, len(missions))
	copy(ranked, missions)

	sort.SliceStable(ranked, func(i, j int) bool {
		wi, wj := priorityWeight(ranked[i].Priority), priorityWeight(ranked[j].Priority)
		if wi != wj {
			return wi > wj
		}
		return ranked[i].Confidence > ranked[j].Confidence
	})

	if len(ranked) > MaxVisibleMissions {
		ranked = ranked[:MaxVisibleMissions]
	}
	return ranked
}
