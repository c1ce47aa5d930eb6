// Package assist implements the Assist Orchestrator (spec.md §4.7): for a
// source's claims it recategorises, fans out to evidence providers through
// the Router, scores and guards the results, and persists suggestions plus
// the derived auto-status.
package assist

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/obelus-labs/veritas-core/internal/claim"
	"github.com/obelus-labs/veritas-core/internal/evidence/guardrail"
	"github.com/obelus-labs/veritas-core/internal/evidence/provider"
	"github.com/obelus-labs/veritas-core/internal/evidence/router"
	"github.com/obelus-labs/veritas-core/internal/evidence/scorer"
	"github.com/obelus-labs/veritas-core/internal/model"
	"github.com/obelus-labs/veritas-core/internal/store"
)

const (
	// DefaultMaxPerClaim is the top-N suggestions kept per claim (spec.md §4.7).
	DefaultMaxPerClaim = 5
	// DefaultMinScore is the score floor a suggestion must clear to be kept.
	DefaultMinScore = 5
	// MinVerifiability is the floor below which a claim is never assisted.
	MinVerifiability = 5
	// providerFanoutLimit bounds concurrent provider calls per claim.
	providerFanoutLimit = 5
	// maxResultsPerProvider bounds how many candidates one provider returns.
	maxResultsPerProvider = 5
)

// RunOpts configures one assist run (spec.md §6, "assist <source_id>
// [--max-per-claim N --budget-minutes M --dry-run]").
type RunOpts struct {
	MaxPerClaim   int
	MinScore      int
	BudgetMinutes int
	DryRun        bool
}

func (o RunOpts) withDefaults() RunOpts {
	if o.MaxPerClaim <= 0 {
		o.MaxPerClaim = DefaultMaxPerClaim
	}
	if o.MinScore <= 0 {
		o.MinScore = DefaultMinScore
	}
	return o
}

// ClaimReport summarises one claim's assist outcome.
type ClaimReport struct {
	ClaimID         string
	Verifiability   int
	SuggestionCount int
	BestScore       int
	AutoStatus      model.AutoStatus
	AutoConfidence  float64
}

// Report is the Assist Orchestrator's emitted summary (spec.md §4.7 step vii).
type Report struct {
	SourceID        string
	ClaimsConsidered int
	ClaimsAssisted  int
	ClaimsSkipped   int // below verifiability floor or past the time budget
	ProviderTallies map[string]int
	Claims          []ClaimReport
}

// Orchestrator runs the assist pipeline for one source at a time.
type Orchestrator struct {
	store    store.Store
	registry *provider.Registry
	log      *zap.Logger
}

// New builds an Orchestrator backed by st and registry.
func New(st store.Store, registry *provider.Registry, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{store: st, registry: registry, log: log}
}

// Run executes the full pipeline of spec.md §4.7 for sourceID.
func (o *Orchestrator) Run(ctx context.Context, sourceID string, opts RunOpts) (*Report, error) {
	opts = opts.withDefaults()
	log := o.log.With(zap.String("source_id", sourceID))

	src, err := o.store.GetSource(ctx, sourceID)
	if err != nil {
		return nil, eris.Wrapf(err, "assist: get source %s", sourceID)
	}

	claims, err := o.store.ListClaimsBySource(ctx, sourceID)
	if err != nil {
		return nil, eris.Wrapf(err, "assist: list claims for %s", sourceID)
	}

	metaText := src.Title + " " + src.Channel
	for i := range claims {
		if claims[i].Category != model.CategoryGeneral {
			continue
		}
		recat := claim.Categorize(claims[i].Text, metaText)
		if recat == claims[i].Category {
			continue
		}
		claims[i].Category = recat
		if !opts.DryRun {
			if err := o.store.SetClaimCategory(ctx, claims[i].ID, recat); err != nil {
				return nil, eris.Wrapf(err, "assist: set category for claim %s", claims[i].ID)
			}
		}
	}

	if !opts.DryRun {
		if err := o.store.ClearSuggestionsForSource(ctx, sourceID); err != nil {
			return nil, eris.Wrapf(err, "assist: clear suggestions for %s", sourceID)
		}
	}

	type scored struct {
		claim         model.Claim
		verifiability int
	}
	ordered := make([]scored, 0, len(claims))
	for _, c := range claims {
		ordered = append(ordered, scored{claim: c, verifiability: Verifiability(c.Text)})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].verifiability > ordered[j].verifiability
	})

	var deadline time.Time
	hasDeadline := opts.BudgetMinutes > 0
	if hasDeadline {
		deadline = time.Now().Add(time.Duration(opts.BudgetMinutes) * time.Minute)
	}

	report := &Report{
		SourceID:        sourceID,
		ProviderTallies: make(map[string]int),
	}

	for _, item := range ordered {
		if item.verifiability < MinVerifiability {
			report.ClaimsSkipped++
			continue
		}
		if hasDeadline && time.Now().After(deadline) {
			log.Info("assist budget elapsed, stopping before new claims",
				zap.Int("remaining", len(ordered)-report.ClaimsConsidered-report.ClaimsSkipped))
			report.ClaimsSkipped += len(ordered) - report.ClaimsConsidered - report.ClaimsSkipped
			break
		}

		report.ClaimsConsidered++
		claimReport, err := o.assistOne(ctx, src, item.claim, opts, report.ProviderTallies)
		if err != nil {
			return nil, eris.Wrapf(err, "assist: claim %s", item.claim.ID)
		}
		report.ClaimsAssisted++
		report.Claims = append(report.Claims, *claimReport)
	}

	log.Info("assist run complete",
		zap.Int("considered", report.ClaimsConsidered),
		zap.Int("assisted", report.ClaimsAssisted),
		zap.Int("skipped", report.ClaimsSkipped),
	)
	return report, nil
}

// assistOne fans out to the ranked provider set for one claim, scores and
// guards the results, and persists the top-N suggestions plus auto-status.
func (o *Orchestrator) assistOne(ctx context.Context, src *model.Source, c model.Claim, opts RunOpts, tallies map[string]int) (*ClaimReport, error) {
	names := router.Select(c.Category, o.registry.Names())
	names = router.Rerank(c.Text, c.Category, names)

	pctx := provider.Context{CompanyName: companyHint(c.Text), ClaimYear: claimYear(c.Text)}
	if src.UploadDate != nil {
		pctx.SourceYear = src.UploadDate.Year()
	}

	results := fanOut(ctx, o.registry, names, c.Text, pctx)

	type candidate struct {
		result provider.Result
		score  scorer.Result
		source string
	}
	candidates := make([]candidate, 0, len(results))
	for _, r := range results {
		tallies[r.source]++
		s := scorer.Score(c.Text, c.Category, r.result.Title, r.result.Snippet, r.result.EvidenceType)
		if s.Score < opts.MinScore {
			continue
		}
		candidates = append(candidates, candidate{result: r.result, score: s, source: r.source})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score.Score > candidates[j].score.Score
	})
	if len(candidates) > opts.MaxPerClaim {
		candidates = candidates[:opts.MaxPerClaim]
	}

	now := time.Now().UTC()
	suggestions := make([]model.EvidenceSuggestion, 0, len(candidates))
	for _, cand := range candidates {
		suggestions = append(suggestions, model.EvidenceSuggestion{
			ID:           model.NewID(),
			ClaimID:      c.ID,
			URL:          cand.result.URL,
			Title:        cand.result.Title,
			SourceName:   cand.result.SourceName,
			EvidenceType: model.EvidenceType(cand.result.EvidenceType),
			Score:        float64(cand.score.Score),
			Signals:      cand.score.Signals,
			Snippet:      model.TruncateSnippet(cand.result.Snippet),
			CreatedAt:    now,
		})
	}

	if !opts.DryRun && len(suggestions) > 0 {
		if err := o.store.InsertSuggestions(ctx, suggestions); err != nil {
			return nil, eris.Wrapf(err, "assist: insert suggestions for claim %s", c.ID)
		}
	}

	bestScore := 0
	bestEvidenceType := ""
	bestSignals := ""
	if len(candidates) > 0 {
		best := candidates[0]
		bestScore = best.score.Score
		bestEvidenceType = best.result.EvidenceType
		bestSignals = best.score.Signals
	}

	financeType := scorer.ClassifyFinance(c.Text)
	decision := guardrail.Evaluate(bestScore, bestEvidenceType, bestSignals, financeType)

	if !opts.DryRun {
		if err := o.store.SetClaimAutoStatus(ctx, c.ID, decision.Status, decision.Confidence); err != nil {
			return nil, eris.Wrapf(err, "assist: set auto status for claim %s", c.ID)
		}
	}

	return &ClaimReport{
		ClaimID:         c.ID,
		Verifiability:   Verifiability(c.Text),
		SuggestionCount: len(suggestions),
		BestScore:       bestScore,
		AutoStatus:      decision.Status,
		AutoConfidence:  decision.Confidence,
	}, nil
}

type namedResult struct {
	source string
	result provider.Result
}

// fanOut dispatches claimText to every named provider concurrently,
// bounded by providerFanoutLimit. Every provider already swallows its
// own errors, so the errgroup here only bounds concurrency; it never
// aborts siblings.
func fanOut(ctx context.Context, registry *provider.Registry, names []string, claimText string, pctx provider.Context) []namedResult {
	var mu sync.Mutex
	var out []namedResult

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(providerFanoutLimit)

	for _, name := range names {
		name := name
		p, ok := registry.Get(name)
		if !ok {
			continue
		}
		g.Go(func() error {
			results := p.Search(gctx, claimText, maxResultsPerProvider, pctx)
			if len(results) == 0 {
				return nil
			}
			mu.Lock()
			for _, r := range results {
				out = append(out, namedResult{source: name, result: r})
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // provider Search never errors; Wait only bounds fan-out completion

	return out
}
