package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// factCheckTermsShared mirrors internal/claim's factcheckTerms set.
var factCheckTermsShared = map[string]bool{
	"fact-check": true, "fact check": true, "debunked": true, "hoax": true,
	"misleading": true, "false claim": true, "viral": true, "rumor": true,
}

// factCheckRaw mirrors the Fact Check Explorer's nested-array response
// shape: [[ "cluster", [[ "claim_text", [...], [[publisher, url, rating,...]] ]] ]].
// It is decoded loosely into []any and walked defensively, since
// the format is undocumented and implementation-defined.
type factCheckRaw = []any

// FactCheckAggregator parses the fact-check provider's nested array format:
// each result carries the original claim, the reviewer's rating, publisher,
// and URL (spec.md §4.3 item 10).
type FactCheckAggregator struct {
	c *client
}

func NewFactCheckAggregator(cfg Config) *FactCheckAggregator {
	return &FactCheckAggregator{c: newClient(oneSecondInterval, cfg.userAgent(), cfg.logger().Named("factcheck"))}
}

func (p *FactCheckAggregator) Name() string         { return "fact_checker" }
func (p *FactCheckAggregator) EvidenceType() string { return "factcheck" }

func (p *FactCheckAggregator) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	query := buildSearchQuery(claimText, 10)
	if query == "" {
		return nil
	}

	body, err := p.c.getText(ctx, "https://toolbox.google.com/factcheck/api/search", url.Values{
		"query": {query},
		"num":   {fmt.Sprint(maxResults)},
	}, nil)
	if err != nil {
		return nil
	}

	var raw factCheckRaw
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil
	}

	var out []Result
	walkFactCheckClusters(raw, func(claim, rating, publisher, link string) {
		if link == "" || len(out) >= maxResults {
			return
		}
		out = append(out, Result{
			URL:          link,
			Title:        fmt.Sprintf("%s — rated %q by %s", claim, rating, publisher),
			SourceName:   publisher,
			EvidenceType: p.EvidenceType(),
			Snippet:      fmt.Sprintf("Claim: %q. Rating: %s. Publisher: %s.", claim, rating, publisher),
		})
	})
	return out
}

// walkFactCheckClusters defensively descends the undocumented nested-array
// response, invoking emit for every (claim, rating, publisher, url) tuple
// it can extract.
func walkFactCheckClusters(node any, emit func(claim, rating, publisher, link string)) {
	arr, ok := node.([]any)
	if !ok {
		return
	}

	var claim, rating, publisher, link string
	for _, el := range arr {
		switch v := el.(type) {
		case string:
			if claim == "" {
				claim = v
			}
			if looksLikeURL(v) {
				link = v
			} else if rating == "" && v != claim {
				rating = v
			}
		case []any:
			walkFactCheckClusters(v, emit)
		}
	}
	if link != "" && claim != "" {
		emit(claim, rating, publisher, link)
	}
}

func looksLikeURL(s string) bool {
	return len(s) > 8 && (s[:7] == "http://" || s[:8] == "https://")
}
