package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/obelus-labs/veritas-core/internal/model"
)

var (
	inspectStatus   string
	inspectSource   string
	inspectCategory string
	inspectVerbose  bool
)

var inspectVerifiedCmd = &cobra.Command{
	Use:   "inspect-verified",
	Short: "List claims with a supported or partial final status",
	Long:  "Filters claims by final status, source, and category for spot-checking the guardrail's decisions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if inspectStatus != "" && inspectStatus != string(model.StatusSupported) && inspectStatus != string(model.StatusPartial) {
			return eris.Errorf("inspect-verified: --status must be supported|partial, got %q", inspectStatus)
		}

		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()
		ctx := cmd.Context()

		var claims []model.Claim
		if inspectSource != "" {
			claims, err = e.Store.ListClaimsBySource(ctx, inspectSource)
		} else {
			claims, err = e.Store.ListAllClaims(ctx)
		}
		if err != nil {
			return err
		}

		shown := 0
		for _, c := range claims {
			final := c.FinalStatus()
			if final != model.StatusSupported && final != model.StatusPartial {
				continue
			}
			if inspectStatus != "" && string(final) != inspectStatus {
				continue
			}
			if inspectCategory != "" && string(c.Category) != inspectCategory {
				continue
			}

			shown++
			fmt.Printf("%s  [%s]  (%s, conf %.2f)  %s\n", c.ID, final, c.Category, c.AutoConfidence, c.Text)
			if !inspectVerbose {
				continue
			}

			suggestions, err := e.Store.ListSuggestionsForClaim(ctx, c.ID)
			if err != nil {
				return err
			}
			for _, s := range suggestions {
				fmt.Printf("    suggestion: [%s] score=%.0f %s\n", s.EvidenceType, s.Score, s.URL)
			}
			evidence, err := e.Store.ListEvidenceForClaim(ctx, c.ID)
			if err != nil {
				return err
			}
			for _, ev := range evidence {
				fmt.Printf("    evidence:   [%s/%s] %s\n", ev.EvidenceType, ev.Strength, ev.URL)
			}
		}
		fmt.Printf("%d claim(s) shown\n", shown)
		return nil
	},
}

func init() {
	inspectVerifiedCmd.Flags().StringVar(&inspectStatus, "status", "", "supported|partial")
	inspectVerifiedCmd.Flags().StringVar(&inspectSource, "source", "", "restrict to one source id")
	inspectVerifiedCmd.Flags().StringVar(&inspectCategory, "category", "", "restrict to one category")
	inspectVerifiedCmd.Flags().BoolVar(&inspectVerbose, "verbose", false, "also print evidence and suggestions")
	rootCmd.AddCommand(inspectVerifiedCmd)
}
