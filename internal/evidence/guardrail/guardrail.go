// Package guardrail derives an automatic verification status and
// confidence from a claim's best-scoring evidence result (spec.md §4.6).
// contradicted is never produced here; it is reserved for human verdicts.
package guardrail

import (
	"strings"

	"github.com/obelus-labs/veritas-core/internal/evidence/scorer"
	"github.com/obelus-labs/veritas-core/internal/model"
)

var primaryEvidenceTypes = map[string]bool{
	"paper": true, "filing": true, "gov": true, "dataset": true, "factcheck": true,
}

// Decision is the Guardrail's output (spec.md §4.6: "(status, confidence = best_score/100)").
type Decision struct {
	Status     model.AutoStatus
	Confidence float64
}

// Evaluate applies the ordered rule ladder of spec.md §4.6.
func Evaluate(bestScore int, bestEvidenceType, bestSignals string, financeClaimType scorer.FinanceClaimType) Decision {
	confidence := float64(bestScore) / 100

	if financeClaimType == scorer.FinanceGuidance {
		return Decision{Status: model.AutoStatusUnknown, Confidence: confidence}
	}
	if bestScore < 70 {
		return Decision{Status: model.AutoStatusUnknown, Confidence: confidence}
	}

	primary := primaryEvidenceTypes[bestEvidenceType]
	hasOverlap := strings.Contains(bestSignals, "token_overlap")
	hasPhrase := strings.Contains(bestSignals, "keyphrase_hit")
	hasExactNumber := strings.Contains(bestSignals, "number_exact_match")

	if bestScore >= 85 && primary && hasOverlap && (hasPhrase || hasExactNumber) {
		return Decision{Status: model.AutoStatusSupported, Confidence: confidence}
	}
	return Decision{Status: model.AutoStatusPartial, Confidence: confidence}
}
