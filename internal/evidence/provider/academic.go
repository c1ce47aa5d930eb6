package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// minAcademicTerms/minProperNouns gate the academic-paper pre-filter
// (spec.md §4.3 item 2).
const (
	minAcademicTerms = 1
	minProperNouns   = 2
)

// academicRelevant reports whether claimText carries academic language or
// enough named entities to be worth an academic-literature search.
func academicRelevant(claimText string) bool {
	lower := strings.ToLower(claimText)
	hits := 0
	for term := range academicTermsShared {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	if hits >= minAcademicTerms {
		return true
	}
	return len(properNounEntities(claimText)) >= minProperNouns
}

// academicTermsShared mirrors internal/claim's academicTerms set; kept
// local to avoid a cross-package dependency for a handful of words.
var academicTermsShared = map[string]bool{
	"study": true, "research": true, "paper": true, "journal": true,
	"peer-reviewed": true, "researchers": true, "hypothesis": true,
	"methodology": true, "findings": true, "dataset": true, "abstract": true,
}

type crossrefResponse struct {
	Message struct {
		Items []crossrefItem `json:"items"`
	} `json:"message"`
}

type crossrefItem struct {
	DOI          string              `json:"DOI"`
	Title        []string            `json:"title"`
	Abstract     string              `json:"abstract"`
	Type         string              `json:"type"`
	PublishedAt  map[string][][]int `json:"published-print"`
}

// AcademicPaperSearch queries Crossref for academic works by title/abstract
// (spec.md §4.3 item 2).
type AcademicPaperSearch struct {
	c *client
}

func NewAcademicPaperSearch(cfg Config) *AcademicPaperSearch {
	return &AcademicPaperSearch{c: newClient(threeSecondInterval, cfg.userAgent(), cfg.logger().Named("academic"))}
}

func (p *AcademicPaperSearch) Name() string         { return "academic_paper" }
func (p *AcademicPaperSearch) EvidenceType() string { return "paper" }

func (p *AcademicPaperSearch) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	if !academicRelevant(claimText) {
		return nil
	}
	query := buildSearchQuery(claimText, 8)
	if query == "" {
		return nil
	}

	var resp crossrefResponse
	err := p.c.getJSON(ctx, "https://api.crossref.org/works", url.Values{
		"query":  {query},
		"rows":   {fmt.Sprint(maxResults)},
		"select": {"DOI,title,abstract,type"},
	}, nil, &resp)
	if err != nil {
		return nil
	}

	var out []Result
	for _, it := range resp.Message.Items {
		if it.DOI == "" || len(it.Title) == 0 {
			continue
		}
		snippet := it.Abstract
		if snippet == "" {
			snippet = it.Title[0]
		}
		out = append(out, Result{
			URL:          "https://doi.org/" + it.DOI,
			Title:        it.Title[0],
			SourceName:   "crossref",
			EvidenceType: p.EvidenceType(),
			Snippet:      stripHTML(snippet),
		})
		if len(out) >= maxResults {
			break
		}
	}
	return out
}
