package assist

import (
	"regexp"
	"strings"
)

var (
	numberTokenRe        = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
	namedEntityRe        = regexp.MustCompile(`\b([A-Z][a-zA-Z]*(?:\s+[A-Z][a-zA-Z]*)+)\b`)
	capitalizedTokenRe   = regexp.MustCompile(`\b[A-Z][a-zA-Z]*\b`)
	acronymRe            = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	yearRe               = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	currencySymbolRe     = regexp.MustCompile(`[$€£¥]`)
)

var measurableTerms = []string{
	"percent", "million", "billion", "trillion", "rate", "index",
	"margin", "ratio", "average", "median", "per capita", "basis points",
}

var personalOpinionPhrases = []string{
	"i think", "i believe", "in my opinion", "we feel", "it seems to me",
	"i guess", "personally,", "if you ask me",
}

// Verifiability scores how amenable a claim is to evidence lookup
// (spec.md §4.7): digits contribute, named entities and capitalised tokens
// reward specificity, opinion language and numberless/entityless claims
// are penalised. Clamped to [0, 100].
func Verifiability(text string) int {
	score := 0

	numbers := numberTokenRe.FindAllString(text, -1)
	score += len(numbers) * 10

	entities := namedEntityRe.FindAllString(text, -1)
	score += capInt(len(entities)*10, 20)

	capitalized := capitalizedTokenRe.FindAllString(text, -1)
	score += capInt(len(capitalized)*3, 10)

	acronyms := acronymRe.FindAllString(text, -1)
	score += capInt(len(acronyms)*5, 10)

	measurableHits := 0
	lower := strings.ToLower(text)
	for _, term := range measurableTerms {
		if strings.Contains(lower, term) {
			measurableHits++
		}
	}
	score += capInt(measurableHits*5, 15)

	if yearRe.MatchString(text) {
		score += 10
	}
	if currencySymbolRe.MatchString(text) {
		score += 10
	}

	for _, phrase := range personalOpinionPhrases {
		if strings.Contains(lower, phrase) {
			score -= 15
			break
		}
	}

	if len(numbers) == 0 && len(entities) == 0 {
		score -= 20
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func capInt(v, max int) int {
	if v > max {
		return max
	}
	return v
}
