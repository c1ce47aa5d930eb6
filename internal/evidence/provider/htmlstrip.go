package provider

import (
	"regexp"
	"strings"
)

var (
	scriptStyleRe = regexp.MustCompile(`(?is)<(script|style|head)[^>]*>.*?</\s*(script|style|head)\s*>`)
	tagRe         = regexp.MustCompile(`(?s)<[^>]+>`)
	multiSpaceRe2 = regexp.MustCompile(`[ \t]+`)
	multiBlankRe  = regexp.MustCompile(`\n\s*\n+`)
)

// stripHTML removes script/style/head blocks and all remaining tags,
// collapsing whitespace — the "scripts/styles/head stripped" step of the
// corporate-filing-search algorithm (spec.md §4.3 item 5).
func stripHTML(html string) string {
	noBlocks := scriptStyleRe.ReplaceAllString(html, " ")
	noTags := tagRe.ReplaceAllString(noBlocks, " ")
	noTags = strings.NewReplacer("&nbsp;", " ", "&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'").Replace(noTags)
	collapsed := multiSpaceRe2.ReplaceAllString(noTags, " ")
	collapsed = multiBlankRe.ReplaceAllString(collapsed, "\n")
	return strings.TrimSpace(collapsed)
}

// bestWindow finds the maxChars-wide substring of text maximising
// scoreFn(window), sliding in stepChars increments (spec.md §4.3 item 5:
// "the 4000-character window maximising a score of...").
func bestWindow(text string, maxChars, stepChars int, scoreFn func(window string) float64) string {
	if len(text) <= maxChars {
		return text
	}
	bestStart := 0
	bestScore := -1.0
	for start := 0; start+maxChars <= len(text); start += stepChars {
		window := text[start : start+maxChars]
		if s := scoreFn(window); s > bestScore {
			bestScore = s
			bestStart = start
		}
	}
	return text[bestStart : bestStart+maxChars]
}
