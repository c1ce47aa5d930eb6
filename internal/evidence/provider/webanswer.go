package provider

import (
	"context"
	"net/url"
	"regexp"
)

var webAnswerSkipAcronyms = map[string]bool{
	"I": true, "A": true, "THE": true, "AND": true, "BUT": true, "FOR": true,
	"NOT": true, "WAS": true, "HAS": true, "CEO": true, "CFO": true, "CTO": true,
	"COO": true, "IPO": true, "Q1": true, "Q2": true, "Q3": true, "Q4": true, "FY": true,
}

var acronymRe = regexp.MustCompile(`\b[A-Z]{2,6}\b`)

// webAnswerQueries extracts candidate queries for an instant-answer style
// lookup, best-first: multi-word proper nouns first, then acronyms.
func webAnswerQueries(claimText string) []string {
	var queries []string
	for _, ent := range properNounEntities(claimText) {
		queries = append(queries, ent)
	}
	for _, acr := range acronymRe.FindAllString(claimText, -1) {
		if !webAnswerSkipAcronyms[acr] {
			queries = append(queries, acr)
		}
	}
	return queries
}

type instantAnswerResponse struct {
	Heading      string `json:"Heading"`
	AbstractText string `json:"AbstractText"`
	AbstractURL  string `json:"AbstractURL"`
}

// WebAnswer is the universal fallback provider (spec.md §4.4: "leaves
// always include a universal web-answer fallback"), not one of the 17
// numbered providers but required by the Router's boost rules.
type WebAnswer struct {
	c *client
}

func NewWebAnswer(cfg Config) *WebAnswer {
	return &WebAnswer{c: newClient(oneSecondInterval, cfg.userAgent(), cfg.logger().Named("web_answer"))}
}

func (p *WebAnswer) Name() string         { return "web_answer" }
func (p *WebAnswer) EvidenceType() string { return "secondary" }

func (p *WebAnswer) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	for _, q := range webAnswerQueries(claimText) {
		var resp instantAnswerResponse
		err := p.c.getJSON(ctx, "https://api.duckduckgo.com/", url.Values{
			"q":      {q},
			"format": {"json"},
			"no_html": {"1"},
		}, nil, &resp)
		if err != nil || resp.AbstractText == "" {
			continue
		}
		return []Result{{
			URL:          resp.AbstractURL,
			Title:        resp.Heading,
			SourceName:   "duckduckgo",
			EvidenceType: p.EvidenceType(),
			Snippet:      resp.AbstractText,
		}}
	}
	return nil
}
