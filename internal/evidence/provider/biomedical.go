package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// healthTermsShared mirrors internal/claim's healthTerms set.
var healthTermsShared = map[string]bool{
	"clinical": true, "trial": true, "patients": true, "disease": true,
	"treatment": true, "drug": true, "vaccine": true, "diagnosis": true,
	"symptom": true, "fda": true, "medication": true,
}

const minHealthTerms = 2

func healthRelevant(claimText string) bool {
	lower := strings.ToLower(claimText)
	hits := 0
	for term := range healthTermsShared {
		if strings.Contains(lower, term) {
			hits++
			if hits >= minHealthTerms {
				return true
			}
		}
	}
	return false
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type esummaryResponse struct {
	Result map[string]esummaryDoc `json:"result"`
}

type esummaryDoc struct {
	UID     string `json:"uid"`
	Title   string `json:"title"`
	Source  string `json:"source"`
	PubDate string `json:"pubdate"`
}

// BiomedicalLiteratureSearch is a two-step PubMed lookup: search for
// matching PMIDs, then fetch their summaries (spec.md §4.3 item 4).
type BiomedicalLiteratureSearch struct {
	c *client
}

func NewBiomedicalLiteratureSearch(cfg Config) *BiomedicalLiteratureSearch {
	return &BiomedicalLiteratureSearch{c: newClient(oneSecondInterval, cfg.userAgent(), cfg.logger().Named("biomedical"))}
}

func (p *BiomedicalLiteratureSearch) Name() string         { return "biomedical_literature" }
func (p *BiomedicalLiteratureSearch) EvidenceType() string { return "paper" }

func (p *BiomedicalLiteratureSearch) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	if !healthRelevant(claimText) {
		return nil
	}
	query := buildSearchQuery(claimText, 8)
	if query == "" {
		return nil
	}

	var search esearchResponse
	err := p.c.getJSON(ctx, "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi", url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmax":  {fmt.Sprint(maxResults)},
		"retmode": {"json"},
		"sort":    {"relevance"},
	}, nil, &search)
	if err != nil || len(search.ESearchResult.IDList) == 0 {
		return nil
	}

	var summary esummaryResponse
	err = p.c.getJSON(ctx, "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi", url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(search.ESearchResult.IDList, ",")},
		"retmode": {"json"},
	}, nil, &summary)
	if err != nil {
		return nil
	}

	var out []Result
	for _, pmid := range search.ESearchResult.IDList {
		doc, ok := summary.Result[pmid]
		if !ok || doc.Title == "" {
			continue
		}
		out = append(out, Result{
			URL:          "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/",
			Title:        doc.Title,
			SourceName:   "pubmed",
			EvidenceType: p.EvidenceType(),
			Snippet:      fmt.Sprintf("%s. %s. Published: %s.", doc.Title, doc.Source, doc.PubDate),
		})
		if len(out) >= maxResults {
			break
		}
	}
	return out
}
