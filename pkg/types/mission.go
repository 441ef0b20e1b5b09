package types

// MissionPriority buckets a mission's urgency.
type MissionPriority string

const (
	PriorityCritical MissionPriority = "Critical"
	PriorityHigh     MissionPriority = "High"
	PriorityMedium   MissionPriority = "Medium"
)

// Mission is an ephemeral AI-synthesized next action. Missions carry no
// identity of their own; the day's ranked batch is persisted as a single
// serialized memory entry against SystemEntityMissions, keyed by date.
type Mission struct {
	ContactName       string          `json:"contact_name"`
	Role              string          `json:"role,omitempty"`
	Company           string          `json:"company"`
	Priority          MissionPriority `json:"priority"`
	Explanation       string          `json:"explanation,omitempty"`
	Confidence        float64         `json:"confidence"` // 0-100
	RecommendedAction string          `json:"recommended_action,omitempty"`
}

// MissionBatch is the serialization envelope written to memory. Date uses the
// "2006-01-02" layout; a batch is only served on its own calendar day.
type MissionBatch struct {
	Date     string    `json:"date"`
	Missions []Mission `json:"missions"`
}
