package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// drugEndpoints maps claim keywords to the best OpenFDA endpoint among the
// four families (spec.md §4.3 item 11).
var drugEndpoints = []struct {
	keyword  string
	endpoint string
}{
	{"adverse", "/drug/event.json"},
	{"side effect", "/drug/event.json"},
	{"recall", "/food/enforcement.json"},
	{"recalled", "/food/enforcement.json"},
	{"approved", "/drug/drugsfda.json"},
	{"approval", "/drug/drugsfda.json"},
	{"fda approved", "/drug/drugsfda.json"},
	{"label", "/drug/label.json"},
	{"warning", "/drug/label.json"},
}

func pickOpenFDAEndpoint(claimText string) string {
	lower := strings.ToLower(claimText)
	for _, e := range drugEndpoints {
		if strings.Contains(lower, e.keyword) {
			return e.endpoint
		}
	}
	return "/drug/event.json"
}

// drugTermsShared mirrors internal/claim's drugTerms set.
var drugTermsShared = map[string]bool{
	"drug": true, "fda": true, "approval": true, "recall": true,
	"adverse event": true, "clinical trial": true, "dosage": true,
}

type openFDAResponse struct {
	Results []json.RawMessage `json:"results"`
}

// DrugFDA queries one of four OpenFDA endpoint families chosen by claim
// keywords (spec.md §4.3 item 11).
type DrugFDA struct {
	c *client
}

func NewDrugFDA(cfg Config) *DrugFDA {
	return &DrugFDA{c: newClient(oneSecondInterval, cfg.userAgent(), cfg.logger().Named("drug_fda"))}
}

func (p *DrugFDA) Name() string         { return "drug_fda" }
func (p *DrugFDA) EvidenceType() string { return "gov" }

func (p *DrugFDA) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	lower := strings.ToLower(claimText)
	hits := 0
	for term := range drugTermsShared {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	if hits == 0 {
		return nil
	}

	endpoint := pickOpenFDAEndpoint(claimText)
	query := buildSearchQuery(claimText, 4)
	if query == "" {
		return nil
	}

	var resp openFDAResponse
	err := p.c.getJSON(ctx, "https://api.fda.gov"+endpoint, url.Values{
		"search": {strings.ReplaceAll(query, " ", "+")},
		"limit":  {fmt.Sprint(maxResults)},
	}, nil, &resp)
	if err != nil || len(resp.Results) == 0 {
		return nil
	}

	var out []Result
	for i, raw := range resp.Results {
		if i >= maxResults {
			break
		}
		out = append(out, Result{
			URL:          "https://open.fda.gov" + endpoint,
			Title:        "OpenFDA result " + fmt.Sprint(i+1),
			SourceName:   "openfda",
			EvidenceType: p.EvidenceType(),
			Snippet:      string(raw),
		})
	}
	return out
}
