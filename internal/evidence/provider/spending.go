package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// spendingTermsShared mirrors internal/claim's spendingTerms set.
var spendingTermsShared = map[string]bool{
	"contract": true, "federal contract": true, "grant": true,
	"procurement": true, "award": true, "spending bill": true,
}

type usaSpendingRequest struct {
	Filters struct {
		Keywords      []string `json:"keywords"`
		TimePeriod    []struct {
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
		} `json:"time_period"`
	} `json:"filters"`
	Fields []string `json:"fields"`
	Limit  int      `json:"limit"`
}

type usaSpendingResponse struct {
	Results []struct {
		AwardID         string  `json:"Award ID"`
		RecipientName   string  `json:"Recipient Name"`
		AwardAmount     float64 `json:"Award Amount"`
		AwardingAgency  string  `json:"Awarding Agency"`
	} `json:"results"`
}

// FederalSpending POSTs a keyword-plus-date-range query to the USAspending
// API; each award becomes one result (spec.md §4.3 item 14).
type FederalSpending struct {
	c *client
}

func NewFederalSpending(cfg Config) *FederalSpending {
	return &FederalSpending{c: newClient(oneSecondInterval, cfg.userAgent(), cfg.logger().Named("federal_spending"))}
}

func (p *FederalSpending) Name() string         { return "federal_spending" }
func (p *FederalSpending) EvidenceType() string { return "gov" }

func (p *FederalSpending) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	lower := strings.ToLower(claimText)
	hits := 0
	for term := range spendingTermsShared {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	if hits == 0 {
		return nil
	}

	keywords := buildSearchQuery(claimText, 5)
	if keywords == "" {
		return nil
	}

	year := pctx.ClaimYear
	if year == 0 {
		year = pctx.SourceYear
	}
	startDate, endDate := "2000-10-01", "2025-09-30"
	if year > 0 {
		startDate = fmt.Sprintf("%d-01-01", year-1)
		endDate = fmt.Sprintf("%d-12-31", year+1)
	}

	var reqBody usaSpendingRequest
	reqBody.Filters.Keywords = strings.Split(keywords, " ")
	reqBody.Filters.TimePeriod = []struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}{{StartDate: startDate, EndDate: endDate}}
	reqBody.Fields = []string{"Award ID", "Recipient Name", "Award Amount", "Awarding Agency"}
	reqBody.Limit = maxResults

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil
	}

	body, err := p.c.postJSON(ctx, "https://api.usaspending.gov/api/v2/search/spending_by_award/", payload)
	if err != nil {
		return nil
	}

	var resp usaSpendingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}

	var out []Result
	for _, a := range resp.Results {
		if len(out) >= maxResults {
			break
		}
		out = append(out, Result{
			URL:          "https://www.usaspending.gov/award/" + a.AwardID,
			Title:        a.RecipientName + " — " + a.AwardingAgency,
			SourceName:   "usaspending",
			EvidenceType: p.EvidenceType(),
			Snippet:      fmt.Sprintf("%s awarded $%.2f by %s (award %s).", a.RecipientName, a.AwardAmount, a.AwardingAgency, a.AwardID),
		})
	}
	return out
}
