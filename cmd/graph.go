package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obelus-labs/veritas-core/internal/graph"
	"github.com/obelus-labs/veritas-core/internal/store"
)

var buildGraphThreshold float64

var buildGraphCmd = &cobra.Command{
	Use:   "build-graph",
	Short: "Rebuild the cross-source knowledge graph",
	Long:  "Fingerprints every claim, blocks and clusters them, and computes per-cluster consensus. Clears all clusters and members before rewriting atomically.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()
		ctx := cmd.Context()

		threshold := buildGraphThreshold
		if !cmd.Flags().Changed("threshold") {
			threshold = cfg.Graph.JaccardThreshold
		}

		claims, err := e.Store.ListAllClaims(ctx)
		if err != nil {
			return err
		}

		snapshot := graph.Build(claims, threshold)
		if err := e.Store.ReplaceGraph(ctx, snapshot); err != nil {
			return err
		}

		zap.L().Info("knowledge graph rebuilt",
			zap.Int("claims", len(claims)),
			zap.Int("clusters", len(snapshot.Clusters)),
			zap.Float64("threshold", threshold))
		fmt.Printf("rebuilt knowledge graph: %d claim(s) -> %d cluster(s) at threshold %.2f\n",
			len(claims), len(snapshot.Clusters), threshold)
		return nil
	},
}

var (
	clustersBy    string
	clustersLimit int
)

var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "List clusters of claims that state the same underlying fact",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()

		sortBy := store.ClusterSort(clustersBy)
		switch sortBy {
		case store.ClusterSortConsensus, store.ClusterSortSources, store.ClusterSortClaims:
		default:
			return fmt.Errorf("clusters: unknown --by %q (want consensus|sources|claims)", clustersBy)
		}

		clusters, err := e.Store.ListClusters(cmd.Context(), sortBy, clustersLimit)
		if err != nil {
			return err
		}
		if len(clusters) == 0 {
			fmt.Println("no clusters yet; run 'veritas build-graph' first")
			return nil
		}
		for _, c := range clusters {
			fmt.Printf("%s  sources=%-3d claims=%-3d best=%-10s consensus=%.2f  [%s]  %s\n",
				c.ID, c.SourceCount, c.ClaimCount, c.BestStatus, c.ConsensusScore, c.Category,
				truncateStr(c.RepresentativeText, 100))
		}
		fmt.Printf("%d cluster(s) shown\n", len(clusters))
		return nil
	},
}

var clusterCmd = &cobra.Command{
	Use:   "cluster <id>",
	Short: "Show one cluster's members",
	Long:  "Accepts either a cluster id or a member claim id.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()
		ctx := cmd.Context()

		c, err := e.Store.FindClusterByClaimOrHash(ctx, args[0])
		if err != nil {
			return err
		}
		members, err := e.Store.ListClusterMembers(ctx, c.ID)
		if err != nil {
			return err
		}

		fmt.Printf("cluster %s  [%s]\n", c.ID, c.Category)
		fmt.Printf("  representative: %q\n", c.RepresentativeText)
		fmt.Printf("  sources=%d claims=%d best=%s (conf %.2f) consensus=%.2f\n\n",
			c.SourceCount, c.ClaimCount, c.BestStatus, c.BestConfidence, c.ConsensusScore)

		for _, m := range members {
			claim, err := e.Store.GetClaim(ctx, m.ClaimID)
			text := m.ClaimID
			if err == nil {
				text = claim.Text
			}
			fmt.Printf("  %s  sim=%.2f  %s\n", m.ClaimID, m.SimilarityToRep, truncateStr(text, 100))
		}
		return nil
	},
}

func init() {
	buildGraphCmd.Flags().Float64Var(&buildGraphThreshold, "threshold", 0, "Jaccard similarity cutoff (default from config)")
	clustersCmd.Flags().StringVar(&clustersBy, "by", "consensus", "consensus|sources|claims")
	clustersCmd.Flags().IntVar(&clustersLimit, "limit", 20, "max clusters to show")
	rootCmd.AddCommand(buildGraphCmd, clustersCmd, clusterCmd)
}
