// Package search implements the substring query over claim text
// (spec.md §4, "Search | Substring query over claim text").
package search

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/obelus-labs/veritas-core/internal/model"
	"github.com/obelus-labs/veritas-core/internal/store"
)

// DefaultLimit bounds how many claims a query returns absent an explicit limit.
const DefaultLimit = 50

// Search runs a case-insensitive substring search over claim text, thinly
// wrapping the Store's LIKE query (spec.md §4.9, "Substring search over
// claim text").
func Search(ctx context.Context, st store.Store, query string, limit int) ([]model.Claim, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	claims, err := st.SearchClaims(ctx, query, limit)
	if err != nil {
		return nil, eris.Wrapf(err, "search: query %q", query)
	}
	return claims, nil
}
