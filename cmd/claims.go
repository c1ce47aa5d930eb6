package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/obelus-labs/veritas-core/internal/model"
)

var claimsCmd = &cobra.Command{
	Use:   "claims <source_id>",
	Short: "List every claim extracted from a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()

		claims, err := e.Store.ListClaimsBySource(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, c := range claims {
			fmt.Printf("%s [%s] (%s, %.2f) %s\n", c.ID, c.FinalStatus(), c.Category, c.AutoConfidence, c.Text)
		}
		fmt.Printf("%d claims\n", len(claims))
		return nil
	},
}

var (
	verifyStatus      string
	verifyAddEvidence []string
)

var verifyCmd = &cobra.Command{
	Use:   "verify <claim_id>",
	Short: "Record a human verification verdict for a claim",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := model.ClaimStatus(verifyStatus)
		switch status {
		case model.StatusSupported, model.StatusContradicted, model.StatusPartial, model.StatusUnknown:
		default:
			return eris.Errorf("verify: invalid --status %q", verifyStatus)
		}

		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		claimID := args[0]
		if _, err := e.Store.GetClaim(ctx, claimID); err != nil {
			return err
		}

		for _, url := range verifyAddEvidence {
			ev := model.Evidence{
				ID:           model.NewID(),
				ClaimID:      claimID,
				URL:          url,
				EvidenceType: model.EvidenceTypeOther,
				Strength:     model.StrengthStrong,
			}
			if err := e.Store.AddEvidence(ctx, ev); err != nil {
				return err
			}
		}

		if err := e.Store.SetClaimStatusHuman(ctx, claimID, status); err != nil {
			return err
		}
		fmt.Printf("claim %s marked %s\n", claimID, status)
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyStatus, "status", "", "supported|contradicted|partial|unknown (required)")
	verifyCmd.Flags().StringArrayVar(&verifyAddEvidence, "add-evidence", nil, "evidence URL (repeatable)")
	_ = verifyCmd.MarkFlagRequired("status")

	rootCmd.AddCommand(claimsCmd, verifyCmd)
}
