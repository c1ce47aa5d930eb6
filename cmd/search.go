package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obelus-labs/veritas-core/internal/search"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Substring search over claim text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()

		claims, err := search.Search(cmd.Context(), e.Store, args[0], searchLimit)
		if err != nil {
			return err
		}
		if len(claims) == 0 {
			fmt.Printf("no claims matching %q\n", args[0])
			return nil
		}
		for _, c := range claims {
			fmt.Printf("%s [%s] (%s) %s\n", c.ID, c.FinalStatus(), c.Category, c.Text)
		}
		fmt.Printf("%d result(s)\n", len(claims))
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", search.DefaultLimit, "max results")
	rootCmd.AddCommand(searchCmd)
}
