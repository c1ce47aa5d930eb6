package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obelus-labs/veritas-core/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "veritas",
	Short: "Claim-and-evidence verification engine",
	Long:  "Extracts factual claims from long-form sources, auto-discovers corroborating evidence from public data providers, and groups claims that state the same fact across sources.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func dbPath() string {
	return filepath.Join(cfg.Store.DataDir, "veritas.db")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
