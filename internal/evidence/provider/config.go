package provider

import "go.uber.org/zap"

// Config carries the external configuration every provider constructor
// needs: data directories, optional API keys, and the logger.
type Config struct {
	DataDir        string
	CacheDir       string
	UserAgent      string
	PatentsViewKey string
	GovInfoKey     string
	Log            *zap.Logger
}

func (c Config) logger() *zap.Logger {
	if c.Log != nil {
		return c.Log
	}
	return zap.NewNop()
}

func (c Config) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return "veritas-core research tool (contact: research@veritas.local)"
}
