package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obelus-labs/veritas-core/internal/model"
	"github.com/obelus-labs/veritas-core/internal/store"
)

type fakeSearchStore struct {
	store.Store
	gotQuery string
	gotLimit int
	claims   []model.Claim
}

func (f *fakeSearchStore) SearchClaims(ctx context.Context, query string, limit int) ([]model.Claim, error) {
	f.gotQuery = query
	f.gotLimit = limit
	return f.claims, nil
}

func TestSearch_AppliesDefaultLimit(t *testing.T) {
	fs := &fakeSearchStore{claims: []model.Claim{{ID: "c1"}}}
	got, err := Search(context.Background(), fs, "revenue", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, fs.gotLimit)
	assert.Equal(t, "revenue", fs.gotQuery)
	assert.Len(t, got, 1)
}

func TestSearch_PassesThroughExplicitLimit(t *testing.T) {
	fs := &fakeSearchStore{}
	_, err := Search(context.Background(), fs, "gdp", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, fs.gotLimit)
}
