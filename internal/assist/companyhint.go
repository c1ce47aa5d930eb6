package assist

import "regexp"

// companyEntityRe is a loose heuristic for "Something Inc/Corp/LLC"-style
// company names, used to populate provider.Context.CompanyName so a
// provider can narrow its query (spec.md §4.3 item 5).
var companyEntityRe = regexp.MustCompile(`\b([A-Z][\w&.]*(?:\s+[A-Z][\w&.]*)*\s+(?:Inc|Corp|Corporation|LLC|Ltd|Co)\.?)\b`)

// extractYearRe pulls the first four-digit year mentioned in a claim, used
// to populate provider.Context.ClaimYear.
var extractYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

func companyHint(text string) string {
	m := companyEntityRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

func claimYear(text string) int {
	m := extractYearRe.FindString(text)
	if m == "" {
		return 0
	}
	year := 0
	for _, r := range m {
		year = year*10 + int(r-'0')
	}
	return year
}
