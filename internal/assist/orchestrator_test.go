package assist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obelus-labs/veritas-core/internal/evidence/provider"
	"github.com/obelus-labs/veritas-core/internal/model"
	"github.com/obelus-labs/veritas-core/internal/store"
)

// fakeStore implements store.Store, embedding the interface so only the
// methods the orchestrator actually calls need overriding.
type fakeStore struct {
	store.Store

	source            model.Source
	claims            []model.Claim
	clearedSuggestions bool
	inserted          []model.EvidenceSuggestion
	categorySets      map[string]model.Category
	autoStatusSets    map[string]model.AutoStatus
}

func (f *fakeStore) GetSource(ctx context.Context, id string) (*model.Source, error) {
	return &f.source, nil
}

func (f *fakeStore) ListClaimsBySource(ctx context.Context, sourceID string) ([]model.Claim, error) {
	return f.claims, nil
}

func (f *fakeStore) SetClaimCategory(ctx context.Context, claimID string, category model.Category) error {
	if f.categorySets == nil {
		f.categorySets = make(map[string]model.Category)
	}
	f.categorySets[claimID] = category
	return nil
}

func (f *fakeStore) ClearSuggestionsForSource(ctx context.Context, sourceID string) error {
	f.clearedSuggestions = true
	return nil
}

func (f *fakeStore) InsertSuggestions(ctx context.Context, suggestions []model.EvidenceSuggestion) error {
	f.inserted = append(f.inserted, suggestions...)
	return nil
}

func (f *fakeStore) SetClaimAutoStatus(ctx context.Context, claimID string, status model.AutoStatus, confidence float64) error {
	if f.autoStatusSets == nil {
		f.autoStatusSets = make(map[string]model.AutoStatus)
	}
	f.autoStatusSets[claimID] = status
	return nil
}

type fakeProvider struct {
	name         string
	evidenceType string
	results      []provider.Result
}

func (p *fakeProvider) Name() string         { return p.name }
func (p *fakeProvider) EvidenceType() string { return p.evidenceType }
func (p *fakeProvider) Search(ctx context.Context, claimText string, maxResults int, pctx provider.Context) []provider.Result {
	return p.results
}

func newTestRegistry() *provider.Registry {
	r := provider.NewRegistry()
	r.Register(&fakeProvider{
		name: "market_data", evidenceType: "dataset",
		results: []provider.Result{{
			URL: "https://example.com/filing", Title: "Quarterly revenue report",
			SourceName: "example", EvidenceType: "dataset",
			Snippet: "The company reported revenue of $5.5 billion for the quarter, up from $4.9 billion a year earlier, driven by strong demand across its core product lines and continued expansion into new markets worldwide.",
		}},
	})
	r.Register(&fakeProvider{name: "web_answer", evidenceType: "secondary"})
	return r
}

func TestRun_RecategorizesCategorizesAndWritesAutoStatus(t *testing.T) {
	src := model.Source{ID: "src1", Title: "Quarterly Earnings Call", Channel: "Finance Daily"}
	claims := []model.Claim{
		{ID: "claim1", SourceID: "src1", Text: "Quarterly revenue grew to $5.5 billion according to the filing", Category: model.CategoryGeneral},
	}
	fs := &fakeStore{source: src, claims: claims}
	o := New(fs, newTestRegistry(), nil)

	report, err := o.Run(context.Background(), "src1", RunOpts{})
	require.NoError(t, err)

	assert.True(t, fs.clearedSuggestions)
	assert.Equal(t, 1, report.ClaimsAssisted)
	assert.Equal(t, model.CategoryFinance, fs.categorySets["claim1"])
	assert.Contains(t, fs.autoStatusSets, "claim1")
	assert.NotEmpty(t, fs.inserted)
}

func TestRun_SkipsClaimsBelowVerifiabilityFloor(t *testing.T) {
	src := model.Source{ID: "src2"}
	claims := []model.Claim{
		{ID: "claim2", SourceID: "src2", Text: "it was a pretty normal day for everyone involved there", Category: model.CategoryGeneral},
	}
	fs := &fakeStore{source: src, claims: claims}
	o := New(fs, newTestRegistry(), nil)

	report, err := o.Run(context.Background(), "src2", RunOpts{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.ClaimsSkipped)
	assert.Equal(t, 0, report.ClaimsAssisted)
}

func TestRun_DryRunNeverWrites(t *testing.T) {
	src := model.Source{ID: "src3"}
	claims := []model.Claim{
		{ID: "claim3", SourceID: "src3", Text: "Quarterly revenue grew to $5.5 billion according to the filing", Category: model.CategoryGeneral},
	}
	fs := &fakeStore{source: src, claims: claims}
	o := New(fs, newTestRegistry(), nil)

	_, err := o.Run(context.Background(), "src3", RunOpts{DryRun: true})
	require.NoError(t, err)
	assert.False(t, fs.clearedSuggestions)
	assert.Empty(t, fs.inserted)
	assert.Empty(t, fs.autoStatusSets)
}

func TestVerifiability_NumbersAndEntitiesScoreHigher(t *testing.T) {
	high := Verifiability("Apple Inc reported revenue of $5.5 billion in 2024")
	low := Verifiability("it seems like things are going well these days")
	assert.Greater(t, high, low)
}

func TestFanOut_CollectsOnlyNonEmptyResults(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	results := fanOut(ctx, newTestRegistry(), []string{"market_data", "web_answer"}, "claim text", provider.Context{})
	assert.Len(t, results, 1)
}
