package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/obelus-labs/veritas-core/internal/export"
)

var (
	exportFormat    string
	exportMaxQuotes int
)

var exportCmd = &cobra.Command{
	Use:   "export <source_id>",
	Short: "Assemble a source-cited verification brief",
	Long:  "Writes exports/<source_id>/{claims.json, brief.md or brief.json}.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportFormat != "md" && exportFormat != "json" {
			return eris.Errorf("export: unknown --format %q (want md|json)", exportFormat)
		}

		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()
		ctx := cmd.Context()

		sourceID := args[0]
		maxQuotes := exportMaxQuotes
		if maxQuotes <= 0 {
			maxQuotes = cfg.Export.MaxQuotes
		}

		brief, err := export.Build(ctx, e.Store, sourceID, maxQuotes, time.Now().UTC())
		if err != nil {
			return err
		}

		claims, err := e.Store.ListClaimsBySource(ctx, sourceID)
		if err != nil {
			return err
		}

		exportDir := filepath.Join(cfg.Export.Dir, sourceID)
		if err := os.MkdirAll(exportDir, 0o755); err != nil {
			return eris.Wrap(err, "export: create export dir")
		}

		claimsPath, err := export.WriteClaimsJSON(exportDir, claims)
		if err != nil {
			return err
		}

		var digestPath string
		if exportFormat == "json" {
			digestPath, err = export.WriteJSON(exportDir, brief)
		} else {
			digestPath, err = export.WriteMarkdown(exportDir, brief)
		}
		if err != nil {
			return err
		}

		fmt.Printf("exported %d claim(s) (%d in brief) for source %s\n", brief.TotalClaims, brief.ExportedClaims, sourceID)
		fmt.Printf("  %s\n  %s\n", claimsPath, digestPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "md|json")
	exportCmd.Flags().IntVar(&exportMaxQuotes, "max-quotes", 0, "max claims in the brief (default from config)")
	rootCmd.AddCommand(exportCmd)
}
