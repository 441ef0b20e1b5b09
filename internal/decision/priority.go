// Package decision implements the deterministic policy layer: lead priority
// scoring, relationship-safety evaluation, and mission ranking. Everything in
// this package is pure and synchronous; "decline to act" outcomes are returned
// as values, never as errors.
package decision

import (
	"math"

	"github.com/mariselli/hoofprint/pkg/types"
)

// Component weights for the overall lead priority score.
const (
	intentWeight     = 0.5
	authorityWeight  = 0.3
	engagementWeight = 0.2
)

// CalculateLeadPriority computes the overall 0-100 priority from component
// scores. Missing components are zero; out-of-range inputs are propagated
// through the arithmetic rather than rejected — callers clamp upstream.
// Rounds half away from zero.
func CalculateLeadPriority(s types.Scoring) int {
	overall := s.Intent*intentWeight + s.Authority*authorityWeight + s.Engagement*engagementWeight
	return int(math.Round(overall))
}
