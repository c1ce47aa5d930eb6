package provider

import (
	"context"
	"net/url"
	"strings"
)

// budgetTermsShared extends internal/claim's budgetTerms set with surplus,
// CBO, and entitlement-program terms.
var budgetTermsShared = map[string]bool{
	"budget": true, "deficit": true, "appropriations": true,
	"federal spending": true, "national debt": true, "fiscal year": true,
	"surplus": true, "cbo": true, "congressional budget": true,
	"social security": true, "medicare": true, "medicaid": true, "entitlement": true,
}

type govInfoResponse struct {
	Results []struct {
		Title       string `json:"title"`
		PackageID   string `json:"packageId"`
		DateIssued  string `json:"dateIssued"`
	} `json:"results"`
}

// BudgetPublications searches budget documents via the GovInfo full-text
// API, using GovInfo's DEMO_KEY when no API key is configured, and falls
// back to a CBO search-URL reference when the request fails or returns no
// results (spec.md §4.3 item 13).
type BudgetPublications struct {
	c      *client
	apiKey string
}

func NewBudgetPublications(cfg Config) *BudgetPublications {
	key := cfg.GovInfoKey
	if key == "" {
		key = "DEMO_KEY"
	}
	return &BudgetPublications{
		c:      newClient(oneSecondInterval, cfg.userAgent(), cfg.logger().Named("budget")),
		apiKey: key,
	}
}

func (p *BudgetPublications) Name() string         { return "budget_publications" }
func (p *BudgetPublications) EvidenceType() string { return "gov" }

func (p *BudgetPublications) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	lower := strings.ToLower(claimText)
	hits := 0
	for term := range budgetTermsShared {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	if hits == 0 {
		return nil
	}

	query := buildSearchQuery(claimText, 6)
	if query == "" {
		return nil
	}

	var resp govInfoResponse
	err := p.c.getJSON(ctx, "https://api.govinfo.gov/search", url.Values{
		"query":  {query},
		"api_key": {p.apiKey},
	}, nil, &resp)
	if err != nil || len(resp.Results) == 0 {
		return []Result{{
			URL:          "https://www.cbo.gov/search?search_api_fulltext=" + url.QueryEscape(query),
			Title:        "CBO publications search: " + query,
			SourceName:   "cbo",
			EvidenceType: p.EvidenceType(),
			Snippet:      "Reference link to CBO's own publication search; no structured match was available.",
		}}
	}

	var out []Result
	for _, r := range resp.Results {
		if len(out) >= maxResults {
			break
		}
		if r.PackageID == "" {
			continue
		}
		out = append(out, Result{
			URL:          "https://www.govinfo.gov/app/details/" + r.PackageID,
			Title:        r.Title,
			SourceName:   "govinfo",
			EvidenceType: p.EvidenceType(),
			Snippet:      r.Title + " (" + r.DateIssued + ")",
		})
	}
	return out
}
