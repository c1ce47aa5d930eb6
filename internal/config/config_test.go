package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.Store.DataDir)
	assert.Equal(t, 5, cfg.Assist.MaxPerClaim)
	assert.Equal(t, 5, cfg.Assist.MinScore)
	assert.Equal(t, 0, cfg.Assist.BudgetMinutes)
	assert.InDelta(t, 0.40, cfg.Graph.JaccardThreshold, 0.001)
	assert.Equal(t, 25, cfg.Export.MaxQuotes)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromYAML(t *testing.T) {
	chdirTemp(t)

	yaml := []byte("store:\n  data_dir: /srv/veritas\nassist:\n  min_score: 20\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile("config.yaml", yaml, 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/veritas", cfg.Store.DataDir)
	assert.Equal(t, 20, cfg.Assist.MinScore)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_FromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("VERITAS_PROVIDERS_PATENTSVIEW_KEY", "secret-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.Providers.PatentsViewKey)
}

func TestValidate_RejectsUnknownMode(t *testing.T) {
	cfg := &Config{Store: StoreConfig{DataDir: "./data"}}
	err := cfg.Validate("bogus")
	assert.Error(t, err)
}

func TestValidate_RequiresServerPortForServeMode(t *testing.T) {
	cfg := &Config{Store: StoreConfig{DataDir: "./data"}}
	err := cfg.Validate("serve")
	assert.Error(t, err)
}

func TestValidate_OKForCLIMode(t *testing.T) {
	cfg := &Config{
		Store:  StoreConfig{DataDir: "./data"},
		Graph:  GraphConfig{JaccardThreshold: 0.4},
		Assist: AssistConfig{MinScore: 5},
	}
	assert.NoError(t, cfg.Validate("cli"))
}

func TestInitLogger_BuildsWithoutError(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
}
