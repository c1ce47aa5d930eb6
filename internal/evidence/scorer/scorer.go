// Package scorer implements the weighted-contribution evidence scorer
// (spec.md §4.5): every rule contributes a clamped sub-score, the sum is
// clamped to [0, 100], and a pipe-joined signals string records which
// rules fired.
package scorer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/obelus-labs/veritas-core/internal/claim"
	"github.com/obelus-labs/veritas-core/internal/model"
	"github.com/obelus-labs/veritas-core/internal/textnorm"
)

var (
	properNounPhraseRe = regexp.MustCompile(`\b[A-Z][a-zA-Z]*(?:\s+[A-Z][a-zA-Z]*)+\b`)
	integerTokenRe      = regexp.MustCompile(`\b\d+\b`)
	decimalTokenRe      = regexp.MustCompile(`\b\d[\d,]*\.\d+\b`)
)

var genericTitleWords = map[string]bool{
	"introduction": true, "abstract": true, "summary": true, "chapter": true,
	"overview": true, "preface": true, "contents": true, "index": true,
}

var primaryEvidenceTypes = map[string]bool{
	"paper": true, "filing": true, "gov": true, "dataset": true, "factcheck": true,
}

// Result is the Scorer's output (spec.md §4.5: "Returns (score, signals)").
type Result struct {
	Score   int
	Signals string
}

// Score evaluates one evidence result against a claim, following spec.md
// §4.5's contribution table.
func Score(claimText string, category model.Category, title, snippet, evidenceType string) Result {
	var signals []string
	total := 0

	claimNorm := textnorm.Normalize(claimText)
	evidenceNorm := textnorm.Normalize(title + " " + snippet)
	claimTokens := textnorm.Words(claimNorm)
	claimTokenSet := textnorm.WordSet(claimNorm)
	evidenceTokenSet := textnorm.WordSet(evidenceNorm)

	if len(claimTokenSet) > 0 {
		overlap := 0
		for t := range claimTokenSet {
			if _, ok := evidenceTokenSet[t]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			sub := min(30, int(60*float64(overlap)/float64(len(claimTokenSet))))
			if sub > 0 {
				total += sub
				signals = append(signals, fmt.Sprintf("token_overlap:%d", overlap))
			}
		}
	}

	claimEntities := properNounPhraseRe.FindAllString(claimText, -1)
	if len(claimEntities) > 0 {
		matched := 0
		for _, ent := range claimEntities {
			if strings.Contains(title+" "+snippet, ent) {
				matched++
			}
		}
		if matched > 0 {
			total += min(15, 5*matched)
			signals = append(signals, fmt.Sprintf("named_entity:%d", matched))
		}
	}

	claimInts := integerTokenRe.FindAllString(claimText, -1)
	if len(claimInts) > 0 {
		evidenceInts := make(map[string]bool)
		for _, n := range integerTokenRe.FindAllString(title+" "+snippet, -1) {
			evidenceInts[n] = true
		}
		matched := 0
		seen := make(map[string]bool)
		for _, n := range claimInts {
			if seen[n] {
				continue
			}
			seen[n] = true
			if evidenceInts[n] {
				matched++
			}
		}
		if matched > 0 {
			total += min(10, 5*matched)
			signals = append(signals, fmt.Sprintf("small_integer_match:%d", matched))
		}
	}

	if len(snippet) > 200 {
		claimDecimals := filterTrivialNumbers(decimalTokenRe.FindAllString(claimText, -1))
		if len(claimDecimals) > 0 {
			evidenceDecimals := make(map[string]bool)
			for _, n := range filterTrivialNumbers(decimalTokenRe.FindAllString(title+" "+snippet, -1)) {
				evidenceDecimals[n] = true
			}
			matched := 0
			seen := make(map[string]bool)
			for _, n := range claimDecimals {
				if seen[n] {
					continue
				}
				seen[n] = true
				if evidenceDecimals[n] {
					matched++
				}
			}
			if matched > 0 {
				total += min(20, 8*matched)
				signals = append(signals, fmt.Sprintf("number_exact_match:%d", matched))
			}
		}
	}

	catTerms := claim.CategoryTerms(category)
	if len(catTerms) > 0 {
		lowerEvidence := strings.ToLower(title + " " + snippet)
		matched := 0
		for _, term := range catTerms {
			if strings.Contains(lowerEvidence, term) {
				matched++
			}
		}
		if matched > 0 {
			total += min(10, 3*matched)
			signals = append(signals, fmt.Sprintf("category_relevance:%d", matched))
		}
	}

	switch {
	case primaryEvidenceTypes[evidenceType]:
		total += 15
		signals = append(signals, "evidence_type_primary")
	case evidenceType == "secondary":
		total += 5
		signals = append(signals, "evidence_type_secondary")
	}

	claimBigrams := bigrams(claimTokens)
	if len(claimBigrams) > 0 {
		evidenceBigramSet := make(map[string]bool)
		for _, bg := range bigrams(textnorm.Words(evidenceNorm)) {
			evidenceBigramSet[bg] = true
		}
		matched := 0
		seen := make(map[string]bool)
		for _, bg := range claimBigrams {
			if seen[bg] {
				continue
			}
			seen[bg] = true
			if evidenceBigramSet[bg] {
				matched++
			}
		}
		if matched > 0 {
			total += min(10, 5*matched)
			signals = append(signals, fmt.Sprintf("keyphrase_hit:%d", matched))
		}
	}

	titleTokens := textnorm.Words(textnorm.Normalize(title))
	if len(titleTokens) < 5 {
		for _, w := range titleTokens {
			if genericTitleWords[w] {
				total -= 10
				signals = append(signals, "generic_title_penalty")
				break
			}
		}
	}

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return Result{Score: total, Signals: strings.Join(signals, "|")}
}

// filterTrivialNumbers drops single-digit and common-year-adjacent decimal
// fragments (e.g. "1.0") that would otherwise produce spurious exact-number
// matches (spec.md §4.5, "after filtering trivial numbers").
func filterTrivialNumbers(raw []string) []string {
	var out []string
	for _, r := range raw {
		cleaned := strings.ReplaceAll(r, ",", "")
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			continue
		}
		if v < 10 {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}

func bigrams(tokens []string) []string {
	if len(tokens) < 2 {
		return nil
	}
	out := make([]string, 0, len(tokens)-1)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// FinanceClaimType classifies a claim for the Guardrail (spec.md §4.5,
// "Finance claim typing").
type FinanceClaimType string

const (
	FinanceNumericKPI FinanceClaimType = "numeric_kpi"
	FinanceGuidance   FinanceClaimType = "guidance"
	FinanceOther      FinanceClaimType = "other"
)

var forwardLookingVerbs = []string{
	"will", "expects to", "plans to", "anticipates", "projects", "forecasts",
	"intends to", "is expected to", "guidance", "outlook",
}

var financeTerms = []string{
	"revenue", "profit", "earnings", "margin", "ebitda", "dividend",
	"valuation", "share price", "market cap",
}

func ClassifyFinance(claimText string) FinanceClaimType {
	lower := strings.ToLower(claimText)

	hasForwardVerb := false
	for _, v := range forwardLookingVerbs {
		if strings.Contains(lower, v) {
			hasForwardVerb = true
			break
		}
	}
	if hasForwardVerb {
		return FinanceGuidance
	}

	hasDigit := integerTokenRe.MatchString(claimText)
	hasFinanceTerm := false
	for _, t := range financeTerms {
		if strings.Contains(lower, t) {
			hasFinanceTerm = true
			break
		}
	}
	if hasDigit && hasFinanceTerm {
		return FinanceNumericKPI
	}
	return FinanceOther
}
