// Package config loads the application configuration from defaults, a
// config.yaml in the current working directory, and environment variables prefixed
// VERITAS_: nested structs, viper defaults, AutomaticEnv with a
// dot-to-underscore key replacer.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Providers ProvidersConfig `yaml:"providers" mapstructure:"providers"`
	Assist    AssistConfig    `yaml:"assist" mapstructure:"assist"`
	Graph     GraphConfig     `yaml:"graph" mapstructure:"graph"`
	Export    ExportConfig    `yaml:"export" mapstructure:"export"`
	Fedsync   FedsyncConfig   `yaml:"fedsync" mapstructure:"fedsync"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the SQLite-backed persistence layer.
type StoreConfig struct {
	DataDir     string `yaml:"data_dir" mapstructure:"data_dir"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ProvidersConfig configures the evidence providers: API keys, cache
// locations, and the outbound HTTP identity. Every key is optional; a
// provider missing its key degrades to a reference-URL result rather
// than failing (spec.md §6).
type ProvidersConfig struct {
	DataDir        string `yaml:"data_dir" mapstructure:"data_dir"`
	CacheDir       string `yaml:"cache_dir" mapstructure:"cache_dir"`
	UserAgent      string `yaml:"user_agent" mapstructure:"user_agent"`
	PatentsViewKey string `yaml:"patentsview_key" mapstructure:"patentsview_key"`
	GovInfoKey     string `yaml:"govinfo_key" mapstructure:"govinfo_key"`
}

// AssistConfig configures the Assist Orchestrator's default run options.
type AssistConfig struct {
	MaxPerClaim   int `yaml:"max_per_claim" mapstructure:"max_per_claim"`
	MinScore      int `yaml:"min_score" mapstructure:"min_score"`
	BudgetMinutes int `yaml:"budget_minutes" mapstructure:"budget_minutes"`
}

// GraphConfig configures the Knowledge Graph build.
type GraphConfig struct {
	JaccardThreshold float64 `yaml:"jaccard_threshold" mapstructure:"jaccard_threshold"`
}

// ExportConfig configures the source-cited digest export.
type ExportConfig struct {
	Dir       string `yaml:"dir" mapstructure:"dir"`
	MaxQuotes int    `yaml:"max_quotes" mapstructure:"max_quotes"`
}

// FedsyncConfig configures the optional FTP-backed dataset sync.
type FedsyncConfig struct {
	Host        string   `yaml:"host" mapstructure:"host"`
	RemotePaths []string `yaml:"remote_paths" mapstructure:"remote_paths"`
}

// ServerConfig configures the local read-only API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures the global zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from defaults, config.yaml, and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("VERITAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store.data_dir", "./data")
	v.SetDefault("providers.data_dir", "./data/datasets")
	v.SetDefault("providers.cache_dir", "./data/cache")
	v.SetDefault("providers.user_agent", "veritas-core research tool (contact: research@veritas.local)")
	v.SetDefault("providers.patentsview_key", "")
	v.SetDefault("providers.govinfo_key", "")
	v.SetDefault("assist.max_per_claim", 5)
	v.SetDefault("assist.min_score", 5)
	v.SetDefault("assist.budget_minutes", 0)
	v.SetDefault("graph.jaccard_threshold", 0.40)
	v.SetDefault("export.dir", "./data/exports")
	v.SetDefault("export.max_quotes", 25)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	return &cfg, nil
}

// Validate checks fields required for the given CLI mode. Supported modes:
// "cli" (every claim/evidence verb) and "serve".
func (c *Config) Validate(mode string) error {
	var errs []string

	if c.Store.DataDir == "" {
		errs = append(errs, "store.data_dir is required")
	}
	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
	case "cli":
		// no mode-specific requirements beyond the common ones below
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Graph.JaccardThreshold < 0 || c.Graph.JaccardThreshold > 1 {
		errs = append(errs, "graph.jaccard_threshold must be between 0.0 and 1.0")
	}
	if c.Assist.MinScore < 0 || c.Assist.MinScore > 100 {
		errs = append(errs, "assist.min_score must be between 0 and 100")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)
	return nil
}
