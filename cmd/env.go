package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/obelus-labs/veritas-core/internal/evidence/provider"
	"github.com/obelus-labs/veritas-core/internal/store"
)

// env holds every initialized component a command needs: the store and the
// evidence provider registry. Callers must defer env.Close().
type env struct {
	Store    store.Store
	Registry *provider.Registry
}

func (e *env) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEnv validates config, opens the store, runs migrations, and builds
// the provider registry.
func initEnv(ctx context.Context, mode string) (*env, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Store.DataDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "create data dir")
	}

	st, err := store.NewSQLite(dbPath())
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	registry := provider.BuildRegistry(provider.Config{
		DataDir:        cfg.Providers.DataDir,
		CacheDir:       cfg.Providers.CacheDir,
		UserAgent:      cfg.Providers.UserAgent,
		PatentsViewKey: cfg.Providers.PatentsViewKey,
		GovInfoKey:     cfg.Providers.GovInfoKey,
		Log:            zap.L(),
	})

	return &env{Store: st, Registry: registry}, nil
}
