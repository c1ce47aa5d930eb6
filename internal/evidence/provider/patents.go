package provider

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

// patentTermsShared is internal/claim's patentTerms set plus "trademark".
var patentTermsShared = map[string]bool{
	"patent": true, "patented": true, "intellectual property": true,
	"invention": true, "uspto": true, "trademark": true,
}

type patentsViewResponse struct {
	Patents []struct {
		PatentID    string `json:"patent_id"`
		PatentTitle string `json:"patent_title"`
		PatentDate  string `json:"patent_date"`
	} `json:"patents"`
}

// Patents uses PatentsView when an API key is configured, else returns a
// reference link (spec.md §4.3 item 17).
type Patents struct {
	c      *client
	apiKey string
}

func NewPatents(cfg Config) *Patents {
	return &Patents{
		c:      newClient(oneSecondInterval, cfg.userAgent(), cfg.logger().Named("patents")),
		apiKey: cfg.PatentsViewKey,
	}
}

func (p *Patents) Name() string         { return "patents" }
func (p *Patents) EvidenceType() string { return "gov" }

func (p *Patents) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	lower := strings.ToLower(claimText)
	hits := 0
	for term := range patentTermsShared {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	if hits == 0 {
		return nil
	}

	assignee := pctx.CompanyName
	if assignee == "" {
		if entities := properNounEntities(claimText); len(entities) > 0 {
			assignee = entities[0]
		}
	}
	if assignee == "" {
		return nil
	}

	if p.apiKey == "" {
		return []Result{{
			URL:          "https://patents.google.com/?assignee=" + url.QueryEscape(assignee),
			Title:        "Patent reference search for " + assignee,
			SourceName:   "patentsview",
			EvidenceType: p.EvidenceType(),
			Snippet:      "No PatentsView API key configured; reference link to Google Patents' assignee search.",
		}}
	}

	query, _ := json.Marshal(map[string]any{"_text_any": map[string]string{"assignees.assignee_organization": assignee}})
	var resp patentsViewResponse
	err := p.c.getJSON(ctx, "https://search.patentsview.org/api/v1/patent/", url.Values{
		"q": {string(query)},
		"f": {`["patent_id","patent_title","patent_date"]`},
	}, map[string]string{"X-Api-Key": p.apiKey}, &resp)
	if err != nil || len(resp.Patents) == 0 {
		return nil
	}

	var out []Result
	for _, pt := range resp.Patents {
		if len(out) >= maxResults {
			break
		}
		out = append(out, Result{
			URL:          "https://patents.google.com/patent/US" + pt.PatentID,
			Title:        pt.PatentTitle,
			SourceName:   "patentsview",
			EvidenceType: p.EvidenceType(),
			Snippet:      pt.PatentTitle + " (granted " + pt.PatentDate + ", assignee " + assignee + ")",
		})
	}
	return out
}
