package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/obelus-labs/veritas-core/internal/store"
)

var sourcesSortBy string

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List every ingested source with verification counts",
	Long:  "Lists sources with per-final-status claim counts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()

		stats, err := e.Store.ListSources(cmd.Context())
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("no sources yet; run 'veritas ingest-text <path>' to add one")
			return nil
		}

		switch sourcesSortBy {
		case "verified_rate":
			sort.SliceStable(stats, func(i, j int) bool {
				return verifiedRate(stats[i]) > verifiedRate(stats[j])
			})
		case "claims":
			sort.SliceStable(stats, func(i, j int) bool {
				return stats[i].ClaimCount > stats[j].ClaimCount
			})
		case "date", "":
			sort.SliceStable(stats, func(i, j int) bool {
				return stats[i].Source.CreatedAt.After(stats[j].Source.CreatedAt)
			})
		default:
			return fmt.Errorf("sources: unknown --by %q (want verified_rate|claims|date)", sourcesSortBy)
		}

		formatSources(os.Stdout, stats)
		return nil
	},
}

func verifiedRate(s store.SourceVerificationCounts) float64 {
	if s.ClaimCount == 0 {
		return 0
	}
	return 100 * float64(s.Supported+s.Partial) / float64(s.ClaimCount)
}

func formatSources(out io.Writer, stats []store.SourceVerificationCounts) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tCHANNEL\tCLAIMS\tSUP.\tPART.\tUNK.\tVERIFIED%")
	_, _ = fmt.Fprintln(w, "--\t-----\t-------\t------\t----\t-----\t----\t---------")
	for _, s := range stats {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%.1f%%\n",
			s.Source.ID, truncateStr(s.Source.Title, 50), truncateStr(s.Source.Channel, 16),
			s.ClaimCount, s.Supported, s.Partial, s.Unknown, verifiedRate(s))
	}
	_ = w.Flush()
}

func truncateStr(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func init() {
	sourcesCmd.Flags().StringVar(&sourcesSortBy, "by", "", "verified_rate|claims|date")
	rootCmd.AddCommand(sourcesCmd)
}
