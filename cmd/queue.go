package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/obelus-labs/veritas-core/internal/model"
)

var queueLimit int

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show claims needing review, sorted by priority",
	Long:  "Review queue: claims where status_auto=unknown and status_human is unset first, then by ascending auto_confidence.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()

		claims, err := e.Store.ReviewQueue(cmd.Context(), queueLimit)
		if err != nil {
			return err
		}
		if len(claims) == 0 {
			fmt.Println("no claims in the review queue")
			return nil
		}

		formatQueue(os.Stdout, claims)
		fmt.Printf("\n%d claim(s) shown — run 'veritas review <source_id>' to verify interactively\n", len(claims))
		return nil
	},
}

func formatQueue(out io.Writer, claims []model.Claim) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tFINAL\tAUTO\tCONF\tCAT\tCLAIM")
	_, _ = fmt.Fprintln(w, "--\t-----\t----\t----\t---\t-----")
	for _, c := range claims {
		conf := "-"
		if c.AutoConfidence > 0 {
			conf = fmt.Sprintf("%.0f%%", c.AutoConfidence*100)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.FinalStatus(), c.StatusAuto, conf, c.Category, truncateStr(c.Text, 80))
	}
	_ = w.Flush()
}

func init() {
	queueCmd.Flags().IntVar(&queueLimit, "limit", 20, "max items to show")
	rootCmd.AddCommand(queueCmd)
}
