package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obelus-labs/veritas-core/internal/datasetsync"
)

var (
	datasetsSyncHost string
	datasetsSyncDir  string
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Manage the local dataset directory the local_dataset provider scans",
}

var datasetsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror configured public reference datasets from FTP into the local dataset directory",
	Long:  "Optional convenience command, off by default: pulls the configured remote paths from an FTP mirror so the local_dataset evidence provider has fresh CSV/XLSX snapshots to scan.",
	RunE: func(cmd *cobra.Command, args []string) error {
		host := datasetsSyncHost
		if !cmd.Flags().Changed("host") {
			host = cfg.Fedsync.Host
		}
		dir := datasetsSyncDir
		if dir == "" {
			dir = cfg.Providers.DataDir
		}
		paths := cfg.Fedsync.RemotePaths

		results, err := datasetsync.Sync(cmd.Context(), datasetsync.Options{
			Host:        host,
			RemotePaths: paths,
			LocalDir:    dir,
		}, zap.L())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("dataset sync disabled or nothing to sync (set fedsync.host and fedsync.remote_paths)")
			return nil
		}
		for _, r := range results {
			fmt.Printf("  %s  (%d bytes)\n", r.Path, r.BytesWritten)
		}
		fmt.Printf("%d file(s) synced into %s\n", len(results), dir)
		return nil
	},
}

func init() {
	datasetsSyncCmd.Flags().StringVar(&datasetsSyncHost, "host", "", "FTP host (default from config)")
	datasetsSyncCmd.Flags().StringVar(&datasetsSyncDir, "dir", "", "destination directory (default from config)")
	datasetsCmd.AddCommand(datasetsSyncCmd)
	rootCmd.AddCommand(datasetsCmd)
}
