package decision

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mariselli/hoofprint/pkg/types"
)

// CooldownDays is the minimum number of days since the last outreach or
// action before further engagement is considered safe.
const CooldownDays = 7

// Safety is the outcome of a relationship-safety evaluation. Unsafe is an
// expected, common result, not an error.
type Safety struct {
	Safe   bool   `json:"safe"`
	Reason string `json:"reason"`
}

const (
	reasonTrustWarning  = "Negative trust signal on record; engagement paused pending relationship repair"
	reasonOptimalWindow = "No recent outreach and no negative signals; optimal window for engagement"
)

// EvaluateRelationshipSafety decides whether outbound engagement is currently
// safe given an entity's full memory timeline. The checks form a
// first-match-wins veto chain, in order:
//
//  1. Cooldown: the most recent entry with type "outreach" or category ACTION
//     younger than CooldownDays vetoes engagement. Elapsed days are computed
//     as ceil(|now - t| / 24h).
//  2. Trust signal: any TRUST_SIGNAL entry whose content contains "negative"
//     (case-insensitive) vetoes engagement regardless of age.
//  3. Otherwise engagement is safe.
func EvaluateRelationshipSafety(entries []types.MemoryEntry, now time.Time) Safety {
	var last *types.MemoryEntry
	for i := range entries {
		e := &entries[i]
		if e.Type != "outreach" && e.Category != types.CategoryAction {
			continue
		}
		if last == nil || e.Timestamp.After(last.Timestamp) {
			last = e
		}
	}
	if last != nil {
		elapsed := int(math.Ceil(math.Abs(now.Sub(last.Timestamp).Hours()) / 24))
		if elapsed < CooldownDays {
			return Safety{
				Safe:   false,
				Reason: fmt.Sprintf("Last touch was %d day(s) ago; wait for the %d-day cooldown before reaching out", elapsed, CooldownDays),
			}
		}
	}

	for _, e := range entries {
		if e.Category == types.CategoryTrustSignal && strings.Contains(strings.ToLower(e.Content), "negative") {
			return Safety{Safe: false, Reason: reasonTrustWarning}
		}
	}

	return Safety{Safe: true, Reason: reasonOptimalWindow}
}
