package graph

import "github.com/obelus-labs/veritas-core/internal/model"

// consensus implements the cross-source agreement formula: best_confidence
// + 0.10 (if |V| >= 2) + 0.05 * min(|V|-2, 4) (if |V| >= 3), clamped to 1.0,
// where V is the set of distinct source ids among members whose
// status_auto is supported or partial. best_status is supported if any
// member is supported, else partial if any member is partial, else
// unknown.
func consensus(members []model.Claim) (score float64, status model.ClaimStatus) {
	status = model.StatusUnknown
	best := 0.0
	sawPartial := false
	sawSupported := false
	verifiedSources := make(map[string]bool)

	for _, c := range members {
		if c.AutoConfidence > best {
			best = c.AutoConfidence
		}
		switch c.FinalStatus() {
		case model.StatusSupported:
			sawSupported = true
		case model.StatusPartial:
			sawPartial = true
		}
		if c.StatusAuto == model.AutoStatusSupported || c.StatusAuto == model.AutoStatusPartial {
			verifiedSources[c.SourceID] = true
		}
	}

	switch {
	case sawSupported:
		status = model.StatusSupported
	case sawPartial:
		status = model.StatusPartial
	}

	verifiedCount := len(verifiedSources)
	score = best
	if verifiedCount >= 2 {
		score += 0.10
	}
	if verifiedCount >= 3 {
		score += 0.05 * float64(min(verifiedCount-2, 4))
	}
	if score > 1.0 {
		score = 1.0
	}
	return score, status
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
