package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obelus-labs/veritas-core/internal/model"
	"github.com/obelus-labs/veritas-core/internal/store"
)

type fakeExportStore struct {
	store.Store
	source      model.Source
	claims      []model.Claim
	evidence    map[string][]model.Evidence
	suggestions map[string][]model.EvidenceSuggestion
}

func (f *fakeExportStore) GetSource(ctx context.Context, id string) (*model.Source, error) {
	return &f.source, nil
}

func (f *fakeExportStore) ListClaimsBySource(ctx context.Context, sourceID string) ([]model.Claim, error) {
	return f.claims, nil
}

func (f *fakeExportStore) ListEvidenceForClaim(ctx context.Context, claimID string) ([]model.Evidence, error) {
	return f.evidence[claimID], nil
}

func (f *fakeExportStore) ListSuggestionsForClaim(ctx context.Context, claimID string) ([]model.EvidenceSuggestion, error) {
	return f.suggestions[claimID], nil
}

func TestBuild_CapsAtMaxQuotesAndFormatsTimestamps(t *testing.T) {
	fs := &fakeExportStore{
		source: model.Source{ID: "src1", Title: "Earnings Call", DurationSecs: 3725},
		claims: []model.Claim{
			{ID: "c1", Text: "first claim text that is long enough", TsStart: 0, TsEnd: 65, StatusAuto: model.AutoStatusSupported, AutoConfidence: 0.9},
			{ID: "c2", Text: "second claim text that is long enough", TsStart: 70, TsEnd: 90},
		},
	}

	brief, err := Build(context.Background(), fs, "src1", 1, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, brief.TotalClaims)
	assert.Equal(t, 1, brief.ExportedClaims)
	assert.Equal(t, "00:00:00 - 00:01:05", brief.Claims[0].Timestamp)
	assert.Equal(t, "01:02:05", brief.Duration)
}

func TestBuild_IncludesEvidenceAndCapsSuggestions(t *testing.T) {
	fs := &fakeExportStore{
		source: model.Source{ID: "src2"},
		claims: []model.Claim{{ID: "c1", Text: "a claim with plenty of verifiable detail in it"}},
		evidence: map[string][]model.Evidence{
			"c1": {{URL: "https://example.com/a", EvidenceType: model.EvidenceTypeFiling, Strength: model.StrengthStrong}},
		},
		suggestions: map[string][]model.EvidenceSuggestion{
			"c1": {
				{URL: "u1", Score: 90}, {URL: "u2", Score: 80},
				{URL: "u3", Score: 70}, {URL: "u4", Score: 60},
			},
		},
	}

	brief, err := Build(context.Background(), fs, "src2", 10, time.Now())
	require.NoError(t, err)
	require.Len(t, brief.Claims, 1)
	assert.Len(t, brief.Claims[0].Evidence, 1)
	assert.Len(t, brief.Claims[0].Suggestions, maxSuggestionsPerClaim)
}

func TestWriteJSON_AndMarkdown_ProduceFiles(t *testing.T) {
	brief := &Brief{SourceID: "src3", Title: "Test Source"}
	dir := t.TempDir()

	jsonPath, err := WriteJSON(dir, brief)
	require.NoError(t, err)
	assert.FileExists(t, jsonPath)
	assert.Equal(t, filepath.Join(dir, "brief.json"), jsonPath)

	mdPath, err := WriteMarkdown(dir, brief)
	require.NoError(t, err)
	assert.FileExists(t, mdPath)

	content, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Test Source")
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "00:00:00", formatTimestamp(0))
	assert.Equal(t, "01:01:01", formatTimestamp(3661))
}
