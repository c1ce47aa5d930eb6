package datasetsync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync_NoHostIsNoOp(t *testing.T) {
	results, err := Sync(context.Background(), Options{}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSync_HostWithoutLocalDirErrors(t *testing.T) {
	_, err := Sync(context.Background(), Options{Host: "ftp.example.gov"}, nil)
	require.Error(t, err)
}
