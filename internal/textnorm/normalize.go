// Package textnorm normalises claim text for hashing and fingerprinting.
//
// Normalisation must be idempotent (spec.md §8 "Laws") and stable across
// runs: the same input text always yields the same normalised form, and
// re-normalising already-normalised text is a no-op.
package textnorm

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	lowerCaser  = cases.Lower(language.Und)
	punctRe     = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	multiSpaceRe = regexp.MustCompile(`\s+`)
)

// Normalize lowercases, strips punctuation, and collapses whitespace —
// the canonical form claim hashes are computed over.
func Normalize(text string) string {
	lower := lowerCaser.String(strings.TrimSpace(text))
	stripped := punctRe.ReplaceAllString(lower, " ")
	collapsed := multiSpaceRe.ReplaceAllString(stripped, " ")
	return strings.TrimSpace(collapsed)
}

// HashGlobal computes claim_hash_global = H(normalise(text)): identifies
// the same text across sources.
func HashGlobal(text string) string {
	sum := sha256.Sum256([]byte(Normalize(text)))
	return hex.EncodeToString(sum[:])
}

// HashLocal computes claim_hash = H(source_id ‖ normalise(text)):
// deduplicates within a source.
func HashLocal(sourceID, text string) string {
	sum := sha256.Sum256([]byte(sourceID + "\x00" + Normalize(text)))
	return hex.EncodeToString(sum[:])
}

// Words splits normalised text into its whitespace-delimited tokens.
func Words(normalised string) []string {
	if normalised == "" {
		return nil
	}
	return strings.Fields(normalised)
}

// WordSet returns the distinct token set of normalised text.
func WordSet(normalised string) map[string]struct{} {
	words := Words(normalised)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// SimilarityRatio computes a Levenshtein-free, SequenceMatcher-like ratio:
// 2*matches / (len(a)+len(b)) over token multisets, used for the
// within-source approximate-dedup pass (spec.md §4.2 step 7, ratio >= 0.85).
func SimilarityRatio(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		if na == nb {
			return 1
		}
		return 0
	}
	if na == nb {
		return 1
	}
	wa, wb := Words(na), Words(nb)
	counts := make(map[string]int, len(wa))
	for _, w := range wa {
		counts[w]++
	}
	matches := 0
	for _, w := range wb {
		if counts[w] > 0 {
			counts[w]--
			matches++
		}
	}
	total := len(wa) + len(wb)
	if total == 0 {
		return 0
	}
	return 2 * float64(matches) / float64(total)
}

// JaccardSets computes |A∩B| / |A∪B| over two string sets, 0 if either is
// empty (spec.md §4.8 "Similarity is Jaccard over the two sets").
func JaccardSets(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// IsCapitalized reports whether token begins with an uppercase letter — used by
// the subject-anchor and named-entity heuristics.
func IsCapitalized(token string) bool {
	for _, r := range token {
		return unicode.IsUpper(r)
	}
	return false
}
