// Package companyname normalizes and matches company/entity names, used by
// the market-data and filing evidence providers to decide whether a claim
// names the same company as a candidate ticker or filer.
package companyname

import (
	"regexp"
	"strings"

	"github.com/obelus-labs/veritas-core/internal/textnorm"
)

// legalSuffixes lists common legal entity suffixes to strip during name
// normalization.
var legalSuffixes = []string{
	" LLC", " L.L.C.", " L.L.C",
	" INC", " INC.", " INCORPORATED",
	" CORP", " CORP.", " CORPORATION",
	" LTD", " LTD.", " LIMITED",
	" CO", " CO.", " COMPANY",
	" PLC", " P.L.C.",
	" HOLDINGS", " GROUP",
}

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// Normalize standardizes an entity name for matching: uppercase, strip one
// trailing legal suffix, remove punctuation, collapse whitespace.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.ToUpper(name)

	for _, suffix := range legalSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}

	name = strings.NewReplacer(
		",", "",
		".", "",
		"'", "",
		"\"", "",
		"&", "AND",
		"-", " ",
	).Replace(name)

	name = multiSpaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// matchThreshold is the minimum token-overlap ratio for two normalized
// names to be considered the same entity.
const matchThreshold = 0.6

// Match reports whether a and b plausibly name the same company: either
// one normalized name contains the other, or their token-overlap ratio
// clears matchThreshold.
func Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return textnorm.SimilarityRatio(na, nb) >= matchThreshold
}

// FindKnownMatch returns the first entry of candidates that Match(claimText
// mention, candidate) accepts, and whether any matched.
func FindKnownMatch(name string, candidates []string) (string, bool) {
	for _, c := range candidates {
		if Match(name, c) {
			return c, true
		}
	}
	return "", false
}
