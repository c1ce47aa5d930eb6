package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obelus-labs/veritas-core/internal/model"
)

func TestSelect_FinanceIncludesWebAnswerFallback(t *testing.T) {
	all := []string{"market_data", "web_answer", "local_dataset", "corporate_filing", "official_publication", "economic_indicator", "encyclopedia"}
	got := Select(model.CategoryFinance, all)
	assert.Contains(t, got, "web_answer")
	assert.Equal(t, "market_data", got[0])
	assert.Contains(t, got, "local_dataset", "providers outside the category list are still appended")
}

func TestSelect_UnknownCategoryFallsBackToGeneral(t *testing.T) {
	all := []string{"encyclopedia", "fact_checker", "web_answer"}
	got := Select(model.Category("bogus"), all)
	assert.Equal(t, categoryPriority[model.CategoryGeneral], got)
}

func TestRerank_CompanyNameBoostsMarketData(t *testing.T) {
	providers := []string{"encyclopedia", "web_answer", "market_data", "corporate_filing"}
	got := Rerank("Apple Inc. reported record iPhone sales this quarter.", model.CategoryFinance, providers)
	// market_data (+10) ties encyclopedia (+4 company hit, +6 proper-noun
	// phrase) and stays behind it by original index.
	assert.Equal(t, []string{"encyclopedia", "market_data", "corporate_filing", "web_answer"}, got)
}

func TestRerank_StablePreservesOrderOnTie(t *testing.T) {
	providers := []string{"encyclopedia", "fact_checker", "web_answer"}
	got := Rerank("", model.CategoryGeneral, providers)
	assert.Equal(t, []string{"web_answer", "encyclopedia", "fact_checker"}, got,
		"web_answer takes the +6 fallback boost; equal boosts must preserve original order")
}

func TestRerank_MacroTermsBoostEconomicIndicator(t *testing.T) {
	providers := []string{"economic_indicator", "encyclopedia", "web_answer"}
	got := Rerank("Unemployment fell to 4 percent last month according to the Fed.", model.CategoryLabor, providers)
	assert.Equal(t, "economic_indicator", got[0])
}
