package provider

import (
	"regexp"
	"sort"
	"strings"

	"github.com/obelus-labs/veritas-core/internal/textnorm"
)

// stopwords excluded when building a provider search query from claim text.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"of": true, "in": true, "on": true, "at": true, "to": true, "for": true,
	"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "it": true, "its": true, "this": true,
	"that": true, "these": true, "those": true, "has": true, "have": true,
	"had": true, "will": true, "would": true, "could": true, "should": true,
	"as": true, "from": true, "than": true, "more": true, "about": true,
}

// buildSearchQuery extracts up to maxTerms significant, non-stopword tokens
// from claim text, longest-first, joined by spaces — the shared query
// shape every provider's upstream search call is built from.
func buildSearchQuery(claimText string, maxTerms int) string {
	tokens := textnorm.Words(textnorm.Normalize(claimText))
	var sig []string
	for _, t := range tokens {
		if len(t) < 3 || stopwords[t] {
			continue
		}
		sig = append(sig, t)
	}
	sort.SliceStable(sig, func(i, j int) bool { return len(sig[i]) > len(sig[j]) })

	seen := make(map[string]bool, len(sig))
	var out []string
	for _, t := range sig {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) >= maxTerms {
			break
		}
	}
	return strings.Join(out, " ")
}

// properNounEntities returns the multi-word capitalised phrases in text,
// in order of first appearance, used to build entity-scoped queries.
func properNounEntities(text string) []string {
	matches := properNounPhraseRe2.FindAllString(text, -1)
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

var properNounPhraseRe2 = regexp.MustCompile(`\b([A-Z][a-zA-Z]*(?:\s+[A-Z][a-zA-Z]*)+)\b`)

// decimalNumberRe captures decimal/financial number tokens from claim and
// evidence text, mirroring internal/claim's scorer-facing rule.
var decimalNumberRe = regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d+)?\b`)
