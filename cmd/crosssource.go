package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/obelus-labs/veritas-core/internal/model"
	"github.com/obelus-labs/veritas-core/internal/store"
)

// resolveGlobalHash accepts either a claim_hash_global directly or a claim
// id, resolving the latter to its global hash.
func resolveGlobalHash(ctx context.Context, st store.Store, claimIDOrHash string) (string, error) {
	if len(claimIDOrHash) >= 20 {
		return claimIDOrHash, nil
	}
	c, err := st.GetClaim(ctx, claimIDOrHash)
	if err != nil {
		return "", err
	}
	if c.ClaimHashGlobal == "" {
		return "", eris.Errorf("spread: claim %s has no global hash", claimIDOrHash)
	}
	return c.ClaimHashGlobal, nil
}

var spreadCmd = &cobra.Command{
	Use:   "spread <claim_id_or_hash>",
	Short: "Show where a claim appears across sources",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()
		ctx := cmd.Context()

		ghash, err := resolveGlobalHash(ctx, e.Store, args[0])
		if err != nil {
			return err
		}
		claims, err := e.Store.ClaimsByGlobalHash(ctx, ghash)
		if err != nil {
			return err
		}
		if len(claims) == 0 {
			fmt.Printf("no claims found with global hash %.16s...\n", ghash)
			return nil
		}

		sources := map[string]bool{}
		fmt.Printf("claim spread — global hash %.16s...\n", ghash)
		for _, c := range claims {
			sources[c.SourceID] = true
			src, err := e.Store.GetSource(ctx, c.SourceID)
			title := c.SourceID
			if err == nil {
				title = src.Title
			}
			conf := "-"
			if c.AutoConfidence > 0 {
				conf = fmt.Sprintf("%.0f%%", c.AutoConfidence*100)
			}
			fmt.Printf("  %-40s  %s  %-10s  %-6s  %s\n",
				truncateStr(title, 40), c.ID, c.StatusAuto, conf, truncateStr(c.Text, 100))
		}
		fmt.Printf("\n%d occurrence(s) across %d source(s)\n", len(claims), len(sources))
		return nil
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline <claim_id_or_hash>",
	Short: "Show chronological propagation of a claim across sources",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()
		ctx := cmd.Context()

		ghash, err := resolveGlobalHash(ctx, e.Store, args[0])
		if err != nil {
			return err
		}
		claims, err := e.Store.ClaimsByGlobalHash(ctx, ghash)
		if err != nil {
			return err
		}
		if len(claims) == 0 {
			fmt.Printf("no timeline data for hash %.16s...\n", ghash)
			return nil
		}

		fmt.Printf("claim timeline — global hash %.16s...\n", ghash)
		fmt.Printf("representative text: %q\n\n", truncateStr(claims[0].Text, 100))
		for i, c := range claims {
			marker := fmt.Sprintf("+%d", i)
			if i == 0 {
				marker = "FIRST"
			}
			src, err := e.Store.GetSource(ctx, c.SourceID)
			title, date := c.SourceID, "unknown"
			if err == nil {
				title = src.Title
				if src.UploadDate != nil {
					date = src.UploadDate.Format("2006-01-02")
				}
			}
			fmt.Printf("  %-6s %s  %s\n", marker, date, truncateStr(title, 40))
			fmt.Printf("       status: %-10s  claim: %s\n\n", c.StatusAuto, truncateStr(c.Text, 80))
		}
		return nil
	},
}

var topClaimsBy string
var topClaimsLimit int

var topClaimsCmd = &cobra.Command{
	Use:   "top-claims",
	Short: "Show the most-repeated claims across all sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()

		groups, err := e.Store.TopGlobalClaims(cmd.Context(), topClaimsLimit)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			fmt.Println("no cross-source claims found; need claims in 2+ sources with matching global hashes")
			return nil
		}

		type row struct {
			group          store.GlobalClaimGroup
			bestStatus     model.ClaimStatus
			bestConfidence float64
		}
		rows := make([]row, 0, len(groups))
		for _, g := range groups {
			r := row{group: g}
			for _, c := range g.Claims {
				if c.AutoConfidence > r.bestConfidence {
					r.bestConfidence = c.AutoConfidence
				}
				if c.FinalStatus() == model.StatusSupported {
					r.bestStatus = model.StatusSupported
				} else if r.bestStatus == "" && c.FinalStatus() == model.StatusPartial {
					r.bestStatus = model.StatusPartial
				}
			}
			if r.bestStatus == "" {
				r.bestStatus = model.StatusUnknown
			}
			rows = append(rows, r)
		}

		if topClaimsBy == "confidence" {
			sort.SliceStable(rows, func(i, j int) bool {
				return rows[i].bestConfidence > rows[j].bestConfidence
			})
		}

		fmt.Printf("top cross-source claims — sorted by %s\n\n", topClaimsByLabel())
		for i, r := range rows {
			text := ""
			cat := model.CategoryGeneral
			if len(r.group.Claims) > 0 {
				text = r.group.Claims[0].Text
				cat = r.group.Claims[0].Category
			}
			fmt.Printf("%3d. sources=%-3d freq=%-3d best=%-10s cat=%-10s %.16s  %s\n",
				i+1, r.group.SourceCount, len(r.group.Claims), r.bestStatus, cat, r.group.ClaimHashGlobal, truncateStr(text, 100))
		}
		fmt.Printf("\n%d cross-source claim(s) shown\n", len(rows))
		return nil
	},
}

func topClaimsByLabel() string {
	if topClaimsBy == "confidence" {
		return "confidence"
	}
	return "frequency"
}

func init() {
	topClaimsCmd.Flags().StringVar(&topClaimsBy, "by", "frequency", "frequency|confidence")
	topClaimsCmd.Flags().IntVar(&topClaimsLimit, "limit", 20, "max results")
	rootCmd.AddCommand(spreadCmd, timelineCmd, topClaimsCmd)
}
