package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// worldBankIndicators is the fixed keyword -> (indicator code, description)
// map (spec.md §4.3 item 16).
var worldBankIndicators = map[string][2]string{
	"gdp":                    {"NY.GDP.MKTP.CD", "GDP (current US$)"},
	"gross domestic product": {"NY.GDP.MKTP.CD", "GDP (current US$)"},
	"gdp per capita":         {"NY.GDP.PCAP.CD", "GDP per capita (current US$)"},
	"gdp growth":             {"NY.GDP.MKTP.KD.ZG", "GDP growth (annual %)"},
	"population":             {"SP.POP.TOTL", "Population, total"},
	"life expectancy":        {"SP.DYN.LE00.IN", "Life expectancy at birth (years)"},
	"co2 emissions":          {"EN.ATM.CO2E.KT", "CO2 emissions (kt)"},
	"carbon emissions":       {"EN.ATM.CO2E.KT", "CO2 emissions (kt)"},
	"trade":                  {"NE.TRD.GNFS.ZS", "Trade (% of GDP)"},
	"external debt":          {"DT.DOD.DECT.CD", "External debt stocks, total (current US$)"},
	"poverty":                {"SI.POV.DDAY", "Poverty headcount ratio at $2.15/day (% of population)"},
}

var countryCodes = map[string]string{
	"china": "CHN", "india": "IND", "brazil": "BRA", "germany": "DEU",
	"japan": "JPN", "united kingdom": "GBR", "france": "FRA", "mexico": "MEX",
	"nigeria": "NGA", "indonesia": "IDN", "united states": "USA",
}

var countryNameRe = regexp.MustCompile(`(?i)\b(china|india|brazil|germany|japan|united kingdom|france|mexico|nigeria|indonesia|united states)\b`)

func extractCountryCode(claimText string) (code string, ok bool) {
	m := countryNameRe.FindString(claimText)
	if m == "" {
		return "WLD", false
	}
	code, ok = countryCodes[strings.ToLower(m)]
	if !ok {
		code = "WLD"
	}
	return code, ok
}

type worldBankPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// InternationalIndicators matches a fixed indicator map and an optional
// country-name to country-code extraction (spec.md §4.3 item 16).
type InternationalIndicators struct {
	c *client
}

func NewInternationalIndicators(cfg Config) *InternationalIndicators {
	return &InternationalIndicators{c: newClient(oneSecondInterval, cfg.userAgent(), cfg.logger().Named("worldbank"))}
}

func (p *InternationalIndicators) Name() string         { return "international_indicators" }
func (p *InternationalIndicators) EvidenceType() string { return "dataset" }

func (p *InternationalIndicators) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	lower := strings.ToLower(claimText)

	var indicator, desc string
	for phrase, pair := range worldBankIndicators {
		if strings.Contains(lower, phrase) {
			indicator, desc = pair[0], pair[1]
			break
		}
	}
	if indicator == "" {
		return nil
	}

	code, found := extractCountryCode(claimText)
	if !found {
		code = "WLD"
	}

	body, err := p.c.getText(ctx, fmt.Sprintf("https://api.worldbank.org/v2/country/%s/indicator/%s", code, indicator), nil, nil)
	if err != nil {
		return nil
	}

	var envelope []json.RawMessage
	if err := json.Unmarshal([]byte(body), &envelope); err != nil || len(envelope) < 2 {
		return nil
	}
	var points []worldBankPoint
	if err := json.Unmarshal(envelope[1], &points); err != nil {
		return nil
	}

	for _, pt := range points {
		if pt.Value == 0 {
			continue
		}
		return []Result{{
			URL:          fmt.Sprintf("https://data.worldbank.org/indicator/%s?locations=%s", indicator, code),
			Title:        desc + " — " + code,
			SourceName:   "world_bank",
			EvidenceType: p.EvidenceType(),
			Snippet:      fmt.Sprintf("%s in %s (%s): %.2f", desc, code, pt.Date, pt.Value),
		}}
	}
	return nil
}
