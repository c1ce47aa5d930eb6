package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// blsSeriesMap is the fixed keyword -> (series id, description) map
// (spec.md §4.3 item 12).
var blsSeriesMap = map[string][2]string{
	"unemployment rate": {"LNS14000000", "Unemployment Rate, Seasonally Adjusted"},
	"unemployment":      {"LNS14000000", "Unemployment Rate, Seasonally Adjusted"},
	"nonfarm payroll":   {"CES0000000001", "Total Nonfarm Employment, Seasonally Adjusted"},
	"payrolls":          {"CES0000000001", "Total Nonfarm Employment, Seasonally Adjusted"},
	"cpi":               {"CUUR0000SA0", "Consumer Price Index, All Urban Consumers"},
	"consumer price":    {"CUUR0000SA0", "Consumer Price Index, All Urban Consumers"},
	"wages":             {"CES0500000003", "Average Hourly Earnings, Private Sector"},
	"hourly earnings":   {"CES0500000003", "Average Hourly Earnings, Private Sector"},
	"labor force":       {"LNS11000000", "Civilian Labor Force Level"},
	"participation rate": {"LNS11300000", "Labor Force Participation Rate"},
	"producer price":    {"WPUFD4", "Producer Price Index, Final Demand"},
}

// laborTermsShared mirrors internal/claim's laborTerms set.
var laborTermsShared = map[string]bool{
	"unemployment": true, "payroll": true, "jobs report": true,
	"labor force": true, "wages": true, "layoffs": true, "hiring": true,
}

type blsResponse struct {
	Results struct {
		Series []struct {
			SeriesID string `json:"seriesID"`
			Data     []struct {
				Year       string   `json:"year"`
				Period     string   `json:"period"`
				PeriodName string   `json:"periodName"`
				Value      string   `json:"value"`
				Footnotes  []any    `json:"footnotes"`
			} `json:"data"`
		} `json:"series"`
	} `json:"Results"`
}

// LaborStatistics matches a fixed series-id map and embeds the most recent
// observations in the snippet (spec.md §4.3 item 12).
type LaborStatistics struct {
	c *client
}

func NewLaborStatistics(cfg Config) *LaborStatistics {
	return &LaborStatistics{c: newClient(oneSecondInterval, cfg.userAgent(), cfg.logger().Named("labor"))}
}

func (p *LaborStatistics) Name() string         { return "labor_statistics" }
func (p *LaborStatistics) EvidenceType() string { return "gov" }

func (p *LaborStatistics) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	lower := strings.ToLower(claimText)

	var seriesID, desc string
	for phrase, series := range blsSeriesMap {
		if strings.Contains(lower, phrase) {
			seriesID, desc = series[0], series[1]
			break
		}
	}
	if seriesID == "" {
		return nil
	}

	var resp blsResponse
	err := p.c.getJSON(ctx, "https://api.bls.gov/publicAPI/v2/timeseries/data/"+seriesID, url.Values{}, nil, &resp)
	if err != nil || len(resp.Results.Series) == 0 {
		return nil
	}

	series := resp.Results.Series[0]
	if len(series.Data) == 0 {
		return nil
	}
	recent := series.Data
	if len(recent) > 3 {
		recent = recent[:3]
	}

	var obs []string
	for _, d := range recent {
		obs = append(obs, fmt.Sprintf("%s-%s=%s", d.Year, d.Period, d.Value))
	}

	return []Result{{
		URL:          "https://beta.bls.gov/dataViewer/view/timeseries/" + seriesID,
		Title:        desc + " (" + seriesID + ")",
		SourceName:   "bls",
		EvidenceType: p.EvidenceType(),
		Snippet:      desc + ": " + strings.Join(obs, ", "),
	}}
}
