package provider

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// tickerMap is a small, fixed company-name to ticker-symbol table
// (spec.md §4.3 item 7: "Resolves a ticker from a company-name table").
var tickerMap = map[string]string{
	"alphabet": "GOOG", "google": "GOOG", "meta": "META", "facebook": "META",
	"amazon": "AMZN", "microsoft": "MSFT", "apple": "AAPL", "nvidia": "NVDA",
	"tesla": "TSLA", "netflix": "NFLX", "intel": "INTC", "ibm": "IBM",
	"oracle": "ORCL", "salesforce": "CRM", "adobe": "ADBE", "qualcomm": "QCOM",
	"goldman sachs": "GS", "jpmorgan": "JPM", "jp morgan": "JPM",
	"walmart": "WMT", "disney": "DIS", "boeing": "BA", "coca-cola": "KO",
	"coca cola": "KO", "pepsico": "PEP", "visa": "V", "mastercard": "MA",
}

var explicitTickerRe = regexp.MustCompile(`\b[A-Z]{1,5}\b`)

var tickerStopwords = map[string]bool{
	"CEO": true, "CFO": true, "CTO": true, "COO": true, "IPO": true,
	"Q1": true, "Q2": true, "Q3": true, "Q4": true, "FY": true,
	"US": true, "USA": true, "GDP": true, "CPI": true, "AI": true,
}

func resolveTicker(claimText, companyHint string) string {
	lower := strings.ToLower(companyHint + " " + claimText)
	for name, ticker := range tickerMap {
		if strings.Contains(lower, name) {
			return ticker
		}
	}
	for _, tok := range explicitTickerRe.FindAllString(claimText, -1) {
		if !tickerStopwords[tok] {
			return tok
		}
	}
	return ""
}

type quoteResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				ShortName          string  `json:"shortName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"price"`
			SummaryDetail struct {
				MarketCap float64 `json:"marketCap"`
				PERatio   float64 `json:"trailingPE"`
			} `json:"summaryDetail"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// MarketData resolves a ticker and fetches structured metrics, encoding
// each as both a human-readable string and a raw number so the scorer's
// exact-number rule can fire (spec.md §4.3 item 7).
type MarketData struct {
	c *client
}

func NewMarketData(cfg Config) *MarketData {
	return &MarketData{c: newClient(oneSecondInterval, cfg.userAgent(), cfg.logger().Named("market"))}
}

func (p *MarketData) Name() string         { return "market_data" }
func (p *MarketData) EvidenceType() string { return "dataset" }

func (p *MarketData) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	ticker := resolveTicker(claimText, pctx.CompanyName)
	if ticker == "" {
		return nil
	}

	var resp quoteResponse
	err := p.c.getJSON(ctx, fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s", url.PathEscape(ticker)), url.Values{
		"modules": {"price,summaryDetail"},
	}, nil, &resp)
	if err != nil || len(resp.QuoteSummary.Result) == 0 {
		return nil
	}
	r := resp.QuoteSummary.Result[0]

	snippet := fmt.Sprintf(
		"%s (%s): price=$%.2f market_cap=%.0f pe_ratio=%.2f raw:[%.2f,%.0f,%.2f]",
		r.Price.ShortName, ticker, r.Price.RegularMarketPrice, r.SummaryDetail.MarketCap, r.SummaryDetail.PERatio,
		r.Price.RegularMarketPrice, r.SummaryDetail.MarketCap, r.SummaryDetail.PERatio,
	)

	return []Result{{
		URL:          "https://finance.yahoo.com/quote/" + ticker,
		Title:        r.Price.ShortName + " (" + ticker + ")",
		SourceName:   "market_data",
		EvidenceType: p.EvidenceType(),
		Snippet:      snippet,
	}}
}
