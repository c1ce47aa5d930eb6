package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obelus-labs/veritas-core/internal/assist"
	"github.com/obelus-labs/veritas-core/internal/model"
)

var (
	assistMaxPerClaim   int
	assistBudgetMinutes int
	assistDryRun        bool
)

var assistCmd = &cobra.Command{
	Use:   "assist <source_id>",
	Short: "Auto-discover evidence for a source's claims",
	Long:  "Drives the Assist Orchestrator: ranks claims by verifiability, fans out to the provider registry through the Router, scores and guards the results, and persists suggestions plus auto-status.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()

		if assistDryRun {
			fmt.Println("DRY RUN — will search and score but not store anything")
		}

		maxPerClaim := assistMaxPerClaim
		if maxPerClaim <= 0 {
			maxPerClaim = cfg.Assist.MaxPerClaim
		}
		budget := cfg.Assist.BudgetMinutes
		if cmd.Flags().Changed("budget-minutes") {
			budget = assistBudgetMinutes
		}

		orch := assist.New(e.Store, e.Registry, zap.L())
		report, err := orch.Run(cmd.Context(), args[0], assist.RunOpts{
			MaxPerClaim:   maxPerClaim,
			MinScore:      cfg.Assist.MinScore,
			BudgetMinutes: budget,
			DryRun:        assistDryRun,
		})
		if err != nil {
			return err
		}

		fmt.Printf("source %s: considered=%d assisted=%d skipped=%d\n",
			report.SourceID, report.ClaimsConsidered, report.ClaimsAssisted, report.ClaimsSkipped)

		var supported, partial, unknown int
		for _, cr := range report.Claims {
			switch cr.AutoStatus {
			case model.AutoStatusSupported:
				supported++
			case model.AutoStatusPartial:
				partial++
			default:
				unknown++
			}
		}
		fmt.Printf("auto-status: supported=%d partial=%d unknown=%d\n", supported, partial, unknown)

		for name, count := range report.ProviderTallies {
			fmt.Printf("  provider %-28s %d result(s)\n", name, count)
		}

		fmt.Println("\nclaims needing manual review:")
		shown := 0
		for _, cr := range report.Claims {
			if cr.AutoStatus != model.AutoStatusUnknown || shown >= 10 {
				continue
			}
			fmt.Printf("  %s  best_score=%-3d %s\n", cr.ClaimID, cr.BestScore, cr.AutoStatus)
			shown++
		}
		return nil
	},
}

func init() {
	assistCmd.Flags().IntVar(&assistMaxPerClaim, "max-per-claim", 0, "max evidence suggestions per claim (default from config)")
	assistCmd.Flags().IntVar(&assistBudgetMinutes, "budget-minutes", 0, "time budget in minutes, 0 = unlimited")
	assistCmd.Flags().BoolVar(&assistDryRun, "dry-run", false, "search and score but don't store or update status")
	rootCmd.AddCommand(assistCmd)
}
