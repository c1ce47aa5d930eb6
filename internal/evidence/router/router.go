// Package router selects and reranks candidate evidence providers for a
// claim (spec.md §4.4): select(category) reads a fixed per-category
// priority list, rerank(claim_text, category, providers) boosts providers
// whose signal sets match the claim.
package router

import (
	_ "embed"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/obelus-labs/veritas-core/internal/model"
)

//go:embed priority.yaml
var priorityYAML []byte

// categoryPriority is the fixed per-category provider priority list
// (spec.md §4.4, "a fixed per-category priority list"), loaded once from
// the embedded priority.yaml asset. Every leaf ends with the universal
// web-answer fallback.
var categoryPriority = loadCategoryPriority()

func loadCategoryPriority() map[model.Category][]string {
	var raw map[string][]string
	if err := yaml.Unmarshal(priorityYAML, &raw); err != nil {
		panic("router: invalid embedded priority.yaml: " + err.Error())
	}
	out := make(map[model.Category][]string, len(raw))
	for k, v := range raw {
		out[model.Category(k)] = v
	}
	return out
}

// Select reads category's fixed priority list, appending every name in
// allProviderNames not already present, in registry order.
func Select(category model.Category, allProviderNames []string) []string {
	priority := categoryPriority[category]
	if priority == nil {
		priority = categoryPriority[model.CategoryGeneral]
	}

	inList := make(map[string]bool, len(priority))
	ordered := make([]string, len(priority))
	copy(ordered, priority)
	for _, n := range priority {
		inList[n] = true
	}
	for _, n := range allProviderNames {
		if !inList[n] {
			ordered = append(ordered, n)
			inList[n] = true
		}
	}
	return ordered
}

var (
	percentRe       = regexp.MustCompile(`(?i)\bpercent\b|%`)
	yearIn1500s     = regexp.MustCompile(`\b(1[5-9]\d{2})\b`)
	properNounPhrase = regexp.MustCompile(`\b([A-Z][a-zA-Z]*(?:\s+[A-Z][a-zA-Z]*)+)\b`)
	companyEntity   = regexp.MustCompile(`\b([A-Z][\w&.]*(?:\s+[A-Z][\w&.]*)*\s+(?:Inc|Corp|Corporation|LLC|Ltd|Co)\.?)\b`)
)

// sharedTermRules is the (term-set, provider, single-hit-boost, double-hit-boost)
// table driving the repeated ">=2 terms -> +N, 1 term -> +N/2" rules
// (spec.md §4.4, the drug/labor/budget/spending/demographics/international
// /patent/institutional bullet).
type termRule struct {
	terms    map[string]bool
	provider string
	oneHit   int
	twoHit   int
}

var sharedTermRules = []termRule{
	{drugTerms, "drug_fda", 5, 10},
	{laborTerms, "labor_statistics", 5, 10},
	{budgetTerms, "budget_publications", 5, 10},
	{spendingTerms, "federal_spending", 5, 10},
	{demographicsTerms, "demographics", 5, 10},
	{internationalTerms, "international_indicators", 5, 10},
	{patentTerms, "patents", 5, 10},
	{institutionalTerms, "official_publication", 5, 10},
	{factcheckTerms, "fact_checker", 5, 10},
}

// Rerank computes an integer boost per provider in providers by scanning
// claimText for the fixed signal sets, then stable-sorts by (-boost,
// original_index) (spec.md §4.4).
func Rerank(claimText string, category model.Category, providers []string) []string {
	lower := strings.ToLower(claimText)
	boosts := make(map[string]int, len(providers))
	for _, p := range providers {
		boosts[p] = 0
	}

	if companyEntity.MatchString(claimText) || hasCompanyName(claimText) {
		boosts["market_data"] += 10
		boosts["corporate_filing"] += 5
		boosts["encyclopedia"] += 4
	}

	if countHits(lower, academicTerms) >= 2 {
		boosts["preprint"] += 8
		boosts["academic_paper"] += 4
	}

	if countHits(lower, healthTerms) >= 2 {
		boosts["biomedical_literature"] += 8
	}

	if countHits(lower, macroTerms) >= 1 {
		boosts["economic_indicator"] += 10
		if percentRe.MatchString(claimText) {
			boosts["economic_indicator"] += 5
		}
	}

	if properNounPhrase.MatchString(claimText) {
		boosts["encyclopedia"] += 6
		boosts["official_publication"] += 8
		if yearIn1500s.MatchString(claimText) {
			boosts["official_publication"] += 5
		}
	}

	for _, rule := range sharedTermRules {
		hits := countHits(lower, rule.terms)
		switch {
		case hits >= 2:
			boosts[rule.provider] += rule.twoHit
		case hits == 1:
			boosts[rule.provider] += rule.oneHit
		}
	}

	maxOther := 0
	for name, b := range boosts {
		if name == "web_answer" {
			continue
		}
		if b > maxOther {
			maxOther = b
		}
	}
	if maxOther <= 5 {
		boosts["web_answer"] += 6
	}

	ordered := make([]string, len(providers))
	copy(ordered, providers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return boosts[ordered[i]] > boosts[ordered[j]]
	})
	return ordered
}

func countHits(lowerText string, terms map[string]bool) int {
	hits := 0
	for t := range terms {
		if strings.Contains(lowerText, t) {
			hits++
		}
	}
	return hits
}

func hasCompanyName(text string) bool {
	lower := strings.ToLower(text)
	for name := range companyNameHints {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}
