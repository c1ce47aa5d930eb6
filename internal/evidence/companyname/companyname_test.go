package companyname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_StripsSuffixAndPunctuation(t *testing.T) {
	assert.Equal(t, "APPLE", Normalize("Apple Inc."))
	assert.Equal(t, "JOHNSON AND JOHNSON", Normalize("Johnson & Johnson"))
	assert.Equal(t, "", Normalize("   "))
}

func TestMatch_ContainmentAndExact(t *testing.T) {
	assert.True(t, Match("Apple Inc.", "Apple"))
	assert.True(t, Match("Apple", "Apple"))
	assert.False(t, Match("Apple", "Microsoft"))
}

func TestFindKnownMatch(t *testing.T) {
	got, ok := FindKnownMatch("Tesla Motors Inc", []string{"Ford", "Tesla"})
	assert.True(t, ok)
	assert.Equal(t, "Tesla", got)
}
