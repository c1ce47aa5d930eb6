package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// fredSeriesMap is the fixed phrase -> (series id, description) map
// (spec.md §4.3 item 9).
var fredSeriesMap = map[string][2]string{
	"gdp":                      {"GDP", "Gross Domestic Product"},
	"real gdp":                 {"GDPC1", "Real Gross Domestic Product"},
	"inflation":                {"CPIAUCSL", "Consumer Price Index for All Urban Consumers"},
	"cpi":                      {"CPIAUCSL", "Consumer Price Index for All Urban Consumers"},
	"consumer price index":     {"CPIAUCSL", "Consumer Price Index for All Urban Consumers"},
	"core inflation":           {"CPILFESL", "CPI Less Food and Energy"},
	"unemployment":             {"UNRATE", "Unemployment Rate"},
	"unemployment rate":        {"UNRATE", "Unemployment Rate"},
	"nonfarm payroll":          {"PAYEMS", "All Employees, Total Nonfarm"},
	"payrolls":                 {"PAYEMS", "All Employees, Total Nonfarm"},
	"labor force":              {"CLF16OV", "Civilian Labor Force Level"},
	"participation rate":       {"CIVPART", "Labor Force Participation Rate"},
	"interest rate":            {"FEDFUNDS", "Federal Funds Effective Rate"},
	"federal funds rate":       {"FEDFUNDS", "Federal Funds Effective Rate"},
	"treasury yield":           {"DGS10", "10-Year Treasury Constant Maturity Rate"},
	"recession":                {"USREC", "NBER-based Recession Indicators"},
}

type fredObservationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// EconomicIndicatorCatalogue matches a claim against a fixed phrase ->
// series map and produces one result per matched series, embedding a rich
// snippet of recent observations (spec.md §4.3 item 9).
type EconomicIndicatorCatalogue struct {
	c *client
}

func NewEconomicIndicatorCatalogue(cfg Config) *EconomicIndicatorCatalogue {
	return &EconomicIndicatorCatalogue{c: newClient(oneSecondInterval, cfg.userAgent(), cfg.logger().Named("indicator"))}
}

func (p *EconomicIndicatorCatalogue) Name() string         { return "economic_indicator" }
func (p *EconomicIndicatorCatalogue) EvidenceType() string { return "dataset" }

func (p *EconomicIndicatorCatalogue) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	lower := strings.ToLower(claimText)

	seen := make(map[string]bool)
	var out []Result
	for phrase, series := range fredSeriesMap {
		if !strings.Contains(lower, phrase) {
			continue
		}
		seriesID, desc := series[0], series[1]
		if seen[seriesID] {
			continue
		}
		seen[seriesID] = true

		var resp fredObservationsResponse
		err := p.c.getJSON(ctx, "https://api.stlouisfed.org/fred/series/observations", url.Values{
			"series_id":          {seriesID},
			"file_type":          {"json"},
			"sort_order":         {"desc"},
			"limit":              {"3"},
		}, nil, &resp)
		if err != nil || len(resp.Observations) == 0 {
			continue
		}

		var obs []string
		for _, o := range resp.Observations {
			obs = append(obs, fmt.Sprintf("%s=%s", o.Date, o.Value))
		}

		out = append(out, Result{
			URL:          "https://fred.stlouisfed.org/series/" + seriesID,
			Title:        desc + " (" + seriesID + ")",
			SourceName:   "fred",
			EvidenceType: p.EvidenceType(),
			Snippet:      desc + ": " + strings.Join(obs, ", "),
		})
		if len(out) >= maxResults {
			break
		}
	}
	return out
}
