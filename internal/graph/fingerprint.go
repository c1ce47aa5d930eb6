// Package graph implements the cross-source Knowledge Graph: fingerprint →
// block → union-find cluster → consensus score (spec.md §4.8).
package graph

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/obelus-labs/veritas-core/internal/claim"
	"github.com/obelus-labs/veritas-core/internal/model"
	"github.com/obelus-labs/veritas-core/internal/textnorm"
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "is": true, "was": true, "are": true, "were": true, "be": true,
	"it": true, "its": true, "this": true, "that": true, "by": true, "as": true,
	"from": true, "has": true, "have": true, "had": true, "will": true,
}

var moneyRe = regexp.MustCompile(`(?i)\$?\s*([\d,]+(?:\.\d+)?)\s*(billion|trillion|million)?`)
var bareNumberRe = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)

// expandNumbers parses every decimal/currency figure in text and expands it
// per spec.md §4.8's unit arithmetic: "$5.5 billion" adds 5500 (millions);
// "$14 trillion" adds 14000 and 14000000; "$X million" adds X.
func expandNumbers(text string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(v float64) {
		s := trimFloat(v)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, m := range moneyRe.FindAllStringSubmatch(text, -1) {
		numStr := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			continue
		}
		switch strings.ToLower(m[2]) {
		case "million":
			add(v)
		case "billion":
			add(v * 1000)
		case "trillion":
			add(v * 1000)
			add(v * 1000 * 1000)
		}
	}

	for _, m := range bareNumberRe.FindAllString(text, -1) {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		add(v)
	}
	return out
}

func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

// Fingerprint computes S = tokens(claim) - stopwords ∪ numbers(claim) ∪
// category_terms(category)∩tokens, returned both as the canonical sorted
// |-joined string and as a set for Jaccard comparisons (spec.md §4.8).
func Fingerprint(c model.Claim) (string, map[string]struct{}) {
	norm := textnorm.Normalize(c.Text)
	tokens := textnorm.Words(norm)

	set := make(map[string]struct{})
	for _, t := range tokens {
		if !stopwords[t] {
			set[t] = struct{}{}
		}
	}
	for _, n := range expandNumbers(c.Text) {
		set[n] = struct{}{}
	}

	tokenSet := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = true
	}
	for _, term := range claim.CategoryTerms(c.Category) {
		if strings.Contains(term, " ") {
			continue // category terms are matched against whole tokens only here
		}
		if tokenSet[term] {
			set[term] = struct{}{}
		}
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "|"), set
}

// Numbers extracts the numeric members of a fingerprint set, used to build
// blocking keys.
func Numbers(fingerprint map[string]struct{}) []string {
	var nums []string
	for k := range fingerprint {
		if _, err := strconv.ParseFloat(k, 64); err == nil {
			nums = append(nums, k)
		}
	}
	sort.Strings(nums)
	return nums
}
