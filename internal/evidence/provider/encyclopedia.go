package provider

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/obelus-labs/veritas-core/internal/textnorm"
)

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type wikiExtractResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// EncyclopediaArticle searches Wikipedia and re-ranks the article extract
// paragraph-by-paragraph by token overlap with the claim, keeping the top
// three (spec.md §4.3 item 8).
type EncyclopediaArticle struct {
	c *client
}

func NewEncyclopediaArticle(cfg Config) *EncyclopediaArticle {
	return &EncyclopediaArticle{c: newClient(oneSecondInterval, cfg.userAgent(), cfg.logger().Named("encyclopedia"))}
}

func (p *EncyclopediaArticle) Name() string         { return "encyclopedia" }
func (p *EncyclopediaArticle) EvidenceType() string { return "secondary" }

func (p *EncyclopediaArticle) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	query := buildSearchQuery(claimText, 8)
	if entities := properNounEntities(claimText); len(entities) > 0 {
		query = entities[0]
	}
	if query == "" {
		return nil
	}

	var search wikiSearchResponse
	err := p.c.getJSON(ctx, "https://en.wikipedia.org/w/api.php", url.Values{
		"action":  {"query"},
		"list":    {"search"},
		"srsearch": {query},
		"srlimit": {"5"},
		"format":  {"json"},
		"utf8":    {"1"},
	}, nil, &search)
	if err != nil || len(search.Query.Search) == 0 {
		return nil
	}

	claimSet := textnorm.WordSet(textnorm.Normalize(claimText))

	var out []Result
	for _, hit := range search.Query.Search {
		if len(out) >= maxResults {
			break
		}
		var extract wikiExtractResponse
		err := p.c.getJSON(ctx, "https://en.wikipedia.org/w/api.php", url.Values{
			"action":      {"query"},
			"prop":        {"extracts"},
			"explaintext": {"1"},
			"titles":      {hit.Title},
			"format":      {"json"},
		}, nil, &extract)
		if err != nil {
			continue
		}

		var fullText string
		for _, page := range extract.Query.Pages {
			fullText = page.Extract
			break
		}
		if fullText == "" {
			continue
		}

		snippet := topParagraphs(fullText, claimSet, 3)
		if snippet == "" {
			continue
		}

		out = append(out, Result{
			URL:          "https://en.wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(hit.Title, " ", "_")),
			Title:        hit.Title,
			SourceName:   "wikipedia",
			EvidenceType: p.EvidenceType(),
			Snippet:      snippet,
		})
	}
	return out
}

// topParagraphs re-ranks fullText's paragraphs by token overlap with
// claimSet and joins the top n.
func topParagraphs(fullText string, claimSet map[string]struct{}, n int) string {
	paras := strings.Split(fullText, "\n")

	type scored struct {
		text  string
		score int
	}
	var candidates []scored
	for _, p := range paras {
		p = strings.TrimSpace(p)
		if len(p) < 20 {
			continue
		}
		set := textnorm.WordSet(textnorm.Normalize(p))
		overlap := 0
		for w := range set {
			if _, ok := claimSet[w]; ok {
				overlap++
			}
		}
		candidates = append(candidates, scored{text: p, score: overlap})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	var parts []string
	for _, c := range candidates {
		parts = append(parts, c.text)
	}
	return strings.Join(parts, " ")
}
