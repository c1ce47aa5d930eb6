package scorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obelus-labs/veritas-core/internal/model"
)

func TestScore_TokenOverlapContributes(t *testing.T) {
	res := Score(
		"Apple reported quarterly revenue of 5 billion dollars",
		model.CategoryFinance,
		"Apple Q3 earnings report",
		"Apple reported quarterly revenue growth driven by iPhone sales across all regions this year and beyond",
		"filing",
	)
	assert.Greater(t, res.Score, 0)
	assert.Contains(t, res.Signals, "token_overlap")
}

func TestScore_ClampedToHundred(t *testing.T) {
	longSnippet := strings.Repeat("Apple reported quarterly revenue of 5.5 billion dollars in iPhone sales. ", 5)
	res := Score(
		"Apple Inc reported quarterly revenue of 5.5 billion dollars",
		model.CategoryFinance,
		"Apple quarterly revenue report",
		longSnippet,
		"filing",
	)
	assert.LessOrEqual(t, res.Score, 100)
}

func TestScore_GenericTitlePenaltyApplies(t *testing.T) {
	res := Score("some unrelated claim text entirely", model.CategoryGeneral, "Introduction", "nothing in common here at all", "secondary")
	assert.Contains(t, res.Signals, "generic_title_penalty")
}

func TestScore_EvidenceTypeBoost(t *testing.T) {
	primary := Score("the same claim text", model.CategoryGeneral, "t", "s", "paper")
	secondary := Score("the same claim text", model.CategoryGeneral, "t", "s", "secondary")
	assert.Greater(t, primary.Score, secondary.Score)
}

func TestClassifyFinance(t *testing.T) {
	assert.Equal(t, FinanceGuidance, ClassifyFinance("The company expects to grow revenue next year"))
	assert.Equal(t, FinanceNumericKPI, ClassifyFinance("Revenue grew to 500 million dollars"))
	assert.Equal(t, FinanceOther, ClassifyFinance("The weather was nice today"))
}
