package provider

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

type censusQuery struct {
	dataset     string
	variables   string
	description string
}

// censusQueries is the fixed keyword -> (dataset, variables) map
// (spec.md §4.3 item 15).
var censusQueries = map[string]censusQuery{
	"population": {
		dataset: "2022/acs/acs1", variables: "NAME,B01003_001E",
		description: "Total Population (ACS 1-Year Estimates)",
	},
	"median income": {
		dataset: "2022/acs/acs1", variables: "NAME,B19013_001E",
		description: "Median Household Income (ACS 1-Year Estimates)",
	},
	"household income": {
		dataset: "2022/acs/acs1", variables: "NAME,B19013_001E",
		description: "Median Household Income (ACS 1-Year Estimates)",
	},
	"poverty": {
		dataset: "2022/acs/acs1", variables: "NAME,B17001_002E",
		description: "Population Below Poverty Level (ACS 1-Year Estimates)",
	},
	"poverty rate": {
		dataset: "2022/acs/acs1", variables: "NAME,B17001_002E",
		description: "Population Below Poverty Level (ACS 1-Year Estimates)",
	},
}

// demographicsTermsShared mirrors internal/claim's demographicsTerms set.
var demographicsTermsShared = map[string]bool{
	"population": true, "census": true, "demographic": true,
	"median income": true, "poverty rate": true, "household": true,
}

var stateAbbrevs = map[string]string{
	"california": "06", "texas": "48", "new york": "36", "florida": "12",
	"illinois": "17", "pennsylvania": "42", "ohio": "39", "georgia": "13",
	"washington": "53", "massachusetts": "25",
}

var stateNameRe = regexp.MustCompile(`(?i)\b(california|texas|new york|florida|illinois|pennsylvania|ohio|georgia|washington|massachusetts)\b`)

func extractStateCode(claimText string) (code string, ok bool) {
	m := stateNameRe.FindString(claimText)
	if m == "" {
		return "", false
	}
	code, ok = stateAbbrevs[strings.ToLower(m)]
	return code, ok
}

// Demographics matches a fixed variable map and an optional state code
// extracted from claim text (spec.md §4.3 item 15).
type Demographics struct {
	c *client
}

func NewDemographics(cfg Config) *Demographics {
	return &Demographics{c: newClient(oneSecondInterval, cfg.userAgent(), cfg.logger().Named("demographics"))}
}

func (p *Demographics) Name() string         { return "demographics" }
func (p *Demographics) EvidenceType() string { return "gov" }

func (p *Demographics) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	lower := strings.ToLower(claimText)

	var q censusQuery
	var matched bool
	for phrase, query := range censusQueries {
		if strings.Contains(lower, phrase) {
			q, matched = query, true
			break
		}
	}
	if !matched {
		return nil
	}

	forCode := "us:*"
	label := "United States"
	if code, ok := extractStateCode(claimText); ok {
		forCode = "state:" + code
		label = "selected state"
	}

	var rows [][]string
	err := p.c.getJSON(ctx, "https://api.census.gov/data/"+q.dataset, url.Values{
		"get": {q.variables},
		"for": {forCode},
	}, nil, &rows)
	if err != nil || len(rows) < 2 {
		return nil
	}

	header, data := rows[0], rows[1]
	var b strings.Builder
	for i, v := range data {
		if i < len(header) {
			b.WriteString(header[i])
			b.WriteString("=")
		}
		b.WriteString(v)
		b.WriteString("; ")
	}

	return []Result{{
		URL:          "https://data.census.gov/",
		Title:        q.description + " — " + label,
		SourceName:   "census",
		EvidenceType: p.EvidenceType(),
		Snippet:      strings.TrimSpace(b.String()),
	}}
}
