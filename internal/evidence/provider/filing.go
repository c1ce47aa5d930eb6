package provider

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	filingSnippetWindow = 4000
	filingSnippetStep   = 500
)

// financeTermsShared mirrors internal/claim's financeTerms set, used by the
// exhibit-window scoring rule (spec.md §4.3 item 5).
var financeTermsShared = map[string]bool{
	"revenue": true, "earnings": true, "profit": true, "margin": true,
	"guidance": true, "shares": true, "dividend": true, "quarterly": true,
	"fiscal": true, "ebitda": true, "net income": true, "cash flow": true,
}

// institutionalTermsShared extends internal/claim's institutionalTerms set
// with "sec", "enforcement", "registrant", and "rulemaking".
var institutionalTermsShared = map[string]bool{
	"securities and exchange commission": true, "federal reserve": true,
	"department of labor": true, "federal trade commission": true,
	"congressional budget office": true, "sec": true, "enforcement": true,
	"registrant": true, "rulemaking": true,
}

var xbrlViewerFileRe = regexp.MustCompile(`(?i)^r\d+\.htm$`)

type edgarSearchResponse struct {
	Hits struct {
		Hits []struct {
			Source struct {
				DisplayNames []string `json:"display_names"`
				FileType     string   `json:"file_type"`
				FileDate     string   `json:"file_date"`
				ADSH         string   `json:"_adsh"`
				CIK          []string `json:"ciks"`
			} `json:"_source"`
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

// filingSearchBase is shared by CorporateFilingSearch and
// OfficialPublicationSearch: both query the SEC EDGAR full-text search
// endpoint and fetch+cache the resulting filing text (spec.md §4.3 items 5-6).
type filingSearchBase struct {
	c     *client
	cache *diskCache
}

func newFilingSearchBase(cfg Config) filingSearchBase {
	return filingSearchBase{
		c:     newClient(threeSecondInterval, cfg.userAgent(), cfg.logger().Named("filing")),
		cache: newDiskCache(cfg.CacheDir),
	}
}

// searchEDGAR runs the shared EFTS query/fetch/score pipeline and returns
// up to maxResults results tagged with evidenceType.
func (b filingSearchBase) searchEDGAR(ctx context.Context, claimText string, maxResults int, pctx Context, evidenceType string) []Result {
	query := buildSearchQuery(claimText, 6)
	if query == "" {
		return nil
	}
	if pctx.CompanyName != "" {
		query = pctx.CompanyName + " " + query
	}

	params := url.Values{"q": {query}, "forms": {"10-K,10-Q,8-K"}}
	year := pctx.ClaimYear
	if year == 0 {
		year = pctx.SourceYear
	}
	if year > 0 {
		params.Set("dateRange", "custom")
		params.Set("startdt", strconv.Itoa(year-1)+"-01-01")
		params.Set("enddt", strconv.Itoa(year+1)+"-12-31")
	}

	var resp edgarSearchResponse
	err := b.c.getJSON(ctx, "https://efts.sec.gov/LATEST/search-index", params, map[string]string{
		"User-Agent": b.c.userAgent,
	}, &resp)
	if err != nil {
		return nil
	}

	hits := resp.Hits.Hits
	if len(hits) > 2 {
		hits = hits[:2]
	}

	claimNumbers := decimalNumberRe.FindAllString(claimText, -1)

	var out []Result
	for _, h := range hits {
		if len(h.Source.CIK) == 0 || h.Source.ADSH == "" {
			continue
		}
		cik := strings.TrimLeft(h.Source.CIK[0], "0")
		accession := strings.ReplaceAll(h.Source.ADSH, "-", "")
		indexURL := fmt.Sprintf("https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&CIK=%s&type=%s", cik, h.Source.FileType)

		primaryDoc := b.pickPrimaryDocument(ctx, cik, accession)
		if primaryDoc == "" {
			continue
		}

		text, ok := b.cache.get(primaryDoc)
		if !ok {
			raw, err := b.c.getText(ctx, primaryDoc, nil, nil)
			if err != nil {
				continue
			}
			text = stripHTML(raw)
			b.cache.put(primaryDoc, text)
		}

		snippet := bestWindow(text, filingSnippetWindow, filingSnippetStep, func(w string) float64 {
			return filingWindowScore(w, claimNumbers)
		})

		name := indexURL
		if len(h.Source.DisplayNames) > 0 {
			name = h.Source.DisplayNames[0]
		}

		var evidenceDate *time.Time
		if t, err := time.Parse("2006-01-02", h.Source.FileDate); err == nil {
			evidenceDate = &t
		}

		out = append(out, Result{
			URL:          primaryDoc,
			Title:        name,
			SourceName:   "sec_edgar",
			EvidenceType: evidenceType,
			Snippet:      snippet,
			EvidenceDate: evidenceDate,
		})
		if len(out) >= maxResults {
			break
		}
	}
	return out
}

// pickPrimaryDocument fetches the filing's index and chooses a primary
// .htm document, preferring exhibit pages and filtering out XBRL viewer
// files named R<n>.htm (spec.md §4.3 item 5).
func (b filingSearchBase) pickPrimaryDocument(ctx context.Context, cik, accessionNoDashes string) string {
	indexURL := fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%s/%s/", cik, accessionNoDashes)
	body, err := b.c.getText(ctx, indexURL, nil, nil)
	if err != nil {
		return ""
	}

	hrefRe := regexp.MustCompile(`href="([^"]+\.htm)"`)
	matches := hrefRe.FindAllStringSubmatch(body, -1)

	var candidates []string
	for _, m := range matches {
		name := m[1]
		base := name
		if idx := strings.LastIndex(base, "/"); idx >= 0 {
			base = base[idx+1:]
		}
		if xbrlViewerFileRe.MatchString(base) {
			continue
		}
		candidates = append(candidates, name)
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return strings.Contains(strings.ToLower(candidates[i]), "ex") && !strings.Contains(strings.ToLower(candidates[j]), "ex")
	})
	doc := candidates[0]
	if strings.HasPrefix(doc, "http") {
		return doc
	}
	return indexURL + doc
}

func filingWindowScore(window string, claimNumbers []string) float64 {
	score := 0.0
	lower := strings.ToLower(window)
	for _, n := range claimNumbers {
		score += 15 * float64(strings.Count(window, n))
	}
	for term := range financeTermsShared {
		score += 3 * float64(strings.Count(lower, term))
	}
	return score
}

// CorporateFilingSearch implements spec.md §4.3 item 5.
type CorporateFilingSearch struct{ filingSearchBase }

func NewCorporateFilingSearch(cfg Config) *CorporateFilingSearch {
	return &CorporateFilingSearch{newFilingSearchBase(cfg)}
}

func (p *CorporateFilingSearch) Name() string         { return "corporate_filing" }
func (p *CorporateFilingSearch) EvidenceType() string { return "filing" }

func (p *CorporateFilingSearch) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	return p.searchEDGAR(ctx, claimText, maxResults, pctx, p.EvidenceType())
}

// OfficialPublicationSearch implements spec.md §4.3 item 6: a sibling of
// CorporateFilingSearch scoped to the regulator's own publications.
type OfficialPublicationSearch struct{ filingSearchBase }

func NewOfficialPublicationSearch(cfg Config) *OfficialPublicationSearch {
	return &OfficialPublicationSearch{newFilingSearchBase(cfg)}
}

func (p *OfficialPublicationSearch) Name() string         { return "official_publication" }
func (p *OfficialPublicationSearch) EvidenceType() string { return "gov" }

func (p *OfficialPublicationSearch) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	lower := strings.ToLower(claimText)
	hits := 0
	for term := range institutionalTermsShared {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	if hits == 0 {
		return nil
	}
	return p.searchEDGAR(ctx, claimText, maxResults, pctx, p.EvidenceType())
}
