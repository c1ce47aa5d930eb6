package guardrail

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obelus-labs/veritas-core/internal/evidence/scorer"
	"github.com/obelus-labs/veritas-core/internal/model"
)

func TestEvaluate_GuidanceAlwaysUnknown(t *testing.T) {
	d := Evaluate(95, "filing", "token_overlap:3|number_exact_match:1", scorer.FinanceGuidance)
	assert.Equal(t, model.AutoStatusUnknown, d.Status)
}

func TestEvaluate_LowScoreIsUnknown(t *testing.T) {
	d := Evaluate(40, "filing", "token_overlap:1", scorer.FinanceOther)
	assert.Equal(t, model.AutoStatusUnknown, d.Status)
}

func TestEvaluate_HighScorePrimaryWithExactNumberIsSupported(t *testing.T) {
	d := Evaluate(90, "filing", "token_overlap:3|number_exact_match:1", scorer.FinanceOther)
	assert.Equal(t, model.AutoStatusSupported, d.Status)
	assert.InDelta(t, 0.9, d.Confidence, 0.0001)
}

func TestEvaluate_HighScoreWithoutExtraSignalsIsPartial(t *testing.T) {
	d := Evaluate(90, "filing", "category_relevance:1", scorer.FinanceOther)
	assert.Equal(t, model.AutoStatusPartial, d.Status)
}

func TestEvaluate_MidRangeIsPartial(t *testing.T) {
	d := Evaluate(75, "paper", "token_overlap:2", scorer.FinanceOther)
	assert.Equal(t, model.AutoStatusPartial, d.Status)
}

func TestEvaluate_NeverProducesContradicted(t *testing.T) {
	for _, score := range []int{0, 50, 70, 85, 100} {
		d := Evaluate(score, "filing", "token_overlap:5|keyphrase_hit:2|number_exact_match:2", scorer.FinanceOther)
		assert.NotEqual(t, model.ClaimStatus(d.Status), model.StatusContradicted)
	}
}
