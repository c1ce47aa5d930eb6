// Package export assembles a source-cited digest for a source — never the
// full transcript, only short timestamped quotes plus their verification
// state (spec.md §4, "Export"; persisted layout spec.md §6:
// exports/<source_id>/{claims.json, brief.md, brief.json}).
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/obelus-labs/veritas-core/internal/fsutil"
	"github.com/obelus-labs/veritas-core/internal/model"
	"github.com/obelus-labs/veritas-core/internal/store"
)

// DefaultMaxQuotes caps how many claims a brief includes.
const DefaultMaxQuotes = 25

// EvidenceView is one human-curated citation shown in a brief.
type EvidenceView struct {
	URL      string `json:"url"`
	Type     string `json:"type"`
	Strength string `json:"strength"`
	Notes    string `json:"notes,omitempty"`
}

// SuggestionView is one auto-discovered candidate shown in a brief
// (capped to the three highest-scoring per claim).
type SuggestionView struct {
	URL    string  `json:"url"`
	Title  string  `json:"title"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

// BriefClaim is one claim's digest entry.
type BriefClaim struct {
	ID             string             `json:"id"`
	Text           string             `json:"text"`
	Timestamp      string             `json:"timestamp"`
	Confidence     model.ConfidenceLanguage `json:"confidence"`
	Category       model.Category     `json:"category"`
	FinalStatus    model.ClaimStatus  `json:"final_status"`
	StatusAuto     model.AutoStatus   `json:"status_auto"`
	AutoConfidence float64            `json:"auto_confidence"`
	StatusHuman    *model.ClaimStatus `json:"status_human,omitempty"`
	Evidence       []EvidenceView     `json:"evidence"`
	Suggestions    []SuggestionView   `json:"evidence_suggestions"`
}

// Brief is the full structured digest for one source.
type Brief struct {
	Title          string       `json:"title"`
	URL            string       `json:"url"`
	Channel        string       `json:"channel"`
	UploadDate     string       `json:"upload_date,omitempty"`
	Duration       string       `json:"duration"`
	SourceID       string       `json:"source_id"`
	TotalClaims    int          `json:"total_claims"`
	ExportedClaims int          `json:"exported_claims"`
	GeneratedAt    string       `json:"generated_at"`
	Claims         []BriefClaim `json:"claims"`
}

// maxSuggestionsPerClaim bounds how many auto-discovered suggestions a
// brief shows per claim.
const maxSuggestionsPerClaim = 3

// Build assembles a Brief for sourceID, capped to maxQuotes claims ordered
// by ts_start (the order Store.ListClaimsBySource already returns).
func Build(ctx context.Context, st store.Store, sourceID string, maxQuotes int, now time.Time) (*Brief, error) {
	if maxQuotes <= 0 {
		maxQuotes = DefaultMaxQuotes
	}

	src, err := st.GetSource(ctx, sourceID)
	if err != nil {
		return nil, eris.Wrapf(err, "export: get source %s", sourceID)
	}
	claims, err := st.ListClaimsBySource(ctx, sourceID)
	if err != nil {
		return nil, eris.Wrapf(err, "export: list claims for %s", sourceID)
	}

	limit := len(claims)
	if limit > maxQuotes {
		limit = maxQuotes
	}

	briefClaims := make([]BriefClaim, 0, limit)
	for _, c := range claims[:limit] {
		bc, err := buildBriefClaim(ctx, st, c)
		if err != nil {
			return nil, err
		}
		briefClaims = append(briefClaims, bc)
	}

	uploadDate := ""
	if src.UploadDate != nil {
		uploadDate = src.UploadDate.Format(time.RFC3339)
	}

	return &Brief{
		Title:          src.Title,
		URL:            src.URL,
		Channel:        src.Channel,
		UploadDate:     uploadDate,
		Duration:       formatTimestamp(src.DurationSecs),
		SourceID:       src.ID,
		TotalClaims:    len(claims),
		ExportedClaims: len(briefClaims),
		GeneratedAt:    now.Format(time.RFC3339),
		Claims:         briefClaims,
	}, nil
}

func buildBriefClaim(ctx context.Context, st store.Store, c model.Claim) (BriefClaim, error) {
	evidence, err := st.ListEvidenceForClaim(ctx, c.ID)
	if err != nil {
		return BriefClaim{}, eris.Wrapf(err, "export: list evidence for claim %s", c.ID)
	}
	suggestions, err := st.ListSuggestionsForClaim(ctx, c.ID)
	if err != nil {
		return BriefClaim{}, eris.Wrapf(err, "export: list suggestions for claim %s", c.ID)
	}
	if len(suggestions) > maxSuggestionsPerClaim {
		suggestions = suggestions[:maxSuggestionsPerClaim]
	}

	evidenceViews := make([]EvidenceView, 0, len(evidence))
	for _, e := range evidence {
		evidenceViews = append(evidenceViews, EvidenceView{
			URL: e.URL, Type: string(e.EvidenceType), Strength: string(e.Strength), Notes: e.Notes,
		})
	}
	suggestionViews := make([]SuggestionView, 0, len(suggestions))
	for _, s := range suggestions {
		suggestionViews = append(suggestionViews, SuggestionView{
			URL: s.URL, Title: s.Title, Source: s.SourceName, Score: s.Score,
		})
	}

	return BriefClaim{
		ID:             c.ID,
		Text:           c.Text,
		Timestamp:      fmt.Sprintf("%s - %s", formatTimestamp(c.TsStart), formatTimestamp(c.TsEnd)),
		Confidence:     c.ConfidenceLang,
		Category:       c.Category,
		FinalStatus:    c.FinalStatus(),
		StatusAuto:     c.StatusAuto,
		AutoConfidence: roundTo(c.AutoConfidence, 2),
		StatusHuman:    c.StatusHuman,
		Evidence:       evidenceViews,
		Suggestions:    suggestionViews,
	}, nil
}

func formatTimestamp(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func roundTo(v float64, places int) float64 {
	mult := 1.0
	for i := 0; i < places; i++ {
		mult *= 10
	}
	return float64(int(v*mult+0.5)) / mult
}

// WriteJSON writes brief.json under exportDir and returns its path.
func WriteJSON(exportDir string, brief *Brief) (string, error) {
	path := filepath.Join(exportDir, "brief.json")
	data, err := json.MarshalIndent(brief, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "export: marshal brief json")
	}
	if err := fsutil.WriteAtomic(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteClaimsJSON writes the unabridged claims.json (not capped by
// max-quotes) under exportDir and returns its path.
func WriteClaimsJSON(exportDir string, claims []model.Claim) (string, error) {
	path := filepath.Join(exportDir, "claims.json")
	data, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "export: marshal claims json")
	}
	if err := fsutil.WriteAtomic(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

var statusLabel = map[model.ClaimStatus]string{
	model.StatusSupported:    "SUPPORTED",
	model.StatusContradicted: "CONTRADICTED",
	model.StatusPartial:      "PARTIAL",
	model.StatusUnknown:      "UNKNOWN",
}

// WriteMarkdown writes brief.md under exportDir and returns its path.
func WriteMarkdown(exportDir string, brief *Brief) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Verification Brief: %s\n\n", brief.Title)
	fmt.Fprintf(&b, "**Source:** %s  \n", brief.URL)
	fmt.Fprintf(&b, "**Channel:** %s  \n", brief.Channel)
	fmt.Fprintf(&b, "**Uploaded:** %s  \n", brief.UploadDate)
	fmt.Fprintf(&b, "**Duration:** %s  \n", brief.Duration)
	fmt.Fprintf(&b, "**Source ID:** `%s`  \n", brief.SourceID)
	fmt.Fprintf(&b, "**Total claims extracted:** %d  \n", brief.TotalClaims)
	fmt.Fprintf(&b, "**Generated:** %s  \n\n", brief.GeneratedAt)
	b.WriteString("---\n\n## Claims\n\n")

	for i, c := range brief.Claims {
		label := statusLabel[c.FinalStatus]
		provenance := "UNVERIFIED"
		switch {
		case c.StatusHuman != nil:
			provenance = "HUMAN"
		case c.StatusAuto != model.AutoStatusUnknown:
			provenance = fmt.Sprintf("AUTO (%.0f%%)", c.AutoConfidence*100)
		}

		fmt.Fprintf(&b, "### %d. [%s] (%s) — %s\n\n", i+1, label, c.Confidence, provenance)
		fmt.Fprintf(&b, "> %q\n>\n", c.Text)
		fmt.Fprintf(&b, "> *Timestamp: %s | Category: %s*\n\n", c.Timestamp, c.Category)

		if len(c.Evidence) > 0 {
			b.WriteString("**Evidence (human-verified):**\n")
			for _, ev := range c.Evidence {
				fmt.Fprintf(&b, "- [%s] (%s) %s\n", ev.Type, ev.Strength, ev.URL)
				if ev.Notes != "" {
					fmt.Fprintf(&b, "  - %s\n", ev.Notes)
				}
			}
			b.WriteString("\n")
		}

		if len(c.Suggestions) > 0 {
			b.WriteString("**Evidence suggestions (auto-discovered):**\n")
			for _, s := range c.Suggestions {
				fmt.Fprintf(&b, "- [%s] (score: %.0f) %s\n", s.Source, s.Score, s.URL)
				if s.Title != "" {
					fmt.Fprintf(&b, "  - %s\n", truncate(s.Title, 100))
				}
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("---\n")

	path := filepath.Join(exportDir, "brief.md")
	if err := fsutil.WriteAtomic(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
