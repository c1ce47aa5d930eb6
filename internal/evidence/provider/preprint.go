package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/obelus-labs/veritas-core/internal/fetcher"
)

type arxivEntry struct {
	ID      string `xml:"id"`
	Title   string `xml:"title"`
	Summary string `xml:"summary"`
}

// PreprintSearch queries arXiv for preprints matching a claim's title and
// abstract text (spec.md §4.3 item 3). Uses the same academic-language
// pre-filter as AcademicPaperSearch.
type PreprintSearch struct {
	c *client
}

func NewPreprintSearch(cfg Config) *PreprintSearch {
	return &PreprintSearch{c: newClient(threeSecondInterval, cfg.userAgent(), cfg.logger().Named("preprint"))}
}

func (p *PreprintSearch) Name() string         { return "preprint" }
func (p *PreprintSearch) EvidenceType() string { return "paper" }

func (p *PreprintSearch) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	if !academicRelevant(claimText) {
		return nil
	}
	query := buildSearchQuery(claimText, 8)
	if query == "" {
		return nil
	}

	body, err := p.c.getBody(ctx, "http://export.arxiv.org/api/query", url.Values{
		"search_query": {"all:" + query},
		"start":        {"0"},
		"max_results":  {fmt.Sprint(maxResults)},
		"sortBy":       {"relevance"},
		"sortOrder":    {"descending"},
	}, nil)
	if err != nil {
		return nil
	}
	defer body.Close() //nolint:errcheck

	entries, xmlErrs := fetcher.StreamXML[arxivEntry](ctx, body, "entry")

	var out []Result
	for e := range entries {
		if len(out) >= maxResults {
			continue
		}
		title := strings.TrimSpace(e.Title)
		if title == "" || e.ID == "" {
			continue
		}
		out = append(out, Result{
			URL:          e.ID,
			Title:        title,
			SourceName:   "arxiv",
			EvidenceType: p.EvidenceType(),
			Snippet:      strings.TrimSpace(e.Summary),
		})
	}
	<-xmlErrs
	return out
}
