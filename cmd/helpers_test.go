//go:build !integration

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obelus-labs/veritas-core/internal/store"
)

func TestVerifiedRate(t *testing.T) {
	assert.Equal(t, 0.0, verifiedRate(store.SourceVerificationCounts{}))
	assert.InDelta(t, 75.0, verifiedRate(store.SourceVerificationCounts{
		ClaimCount: 4, Supported: 2, Partial: 1,
	}), 0.01)
}

func TestTruncateStr(t *testing.T) {
	assert.Equal(t, "hello", truncateStr("hello", 10))
	assert.Equal(t, "hel", truncateStr("hello", 3))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "00:00:05", formatSeconds(5))
	assert.Equal(t, "01:01:01", formatSeconds(3661))
}

func TestTopClaimsByLabel(t *testing.T) {
	old := topClaimsBy
	defer func() { topClaimsBy = old }()

	topClaimsBy = "confidence"
	assert.Equal(t, "confidence", topClaimsByLabel())

	topClaimsBy = "frequency"
	assert.Equal(t, "frequency", topClaimsByLabel())
}
