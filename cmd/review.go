package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/obelus-labs/veritas-core/internal/model"
)

var reviewStatusByLetter = map[string]model.ClaimStatus{
	"s": model.StatusSupported,
	"c": model.StatusContradicted,
	"p": model.StatusPartial,
	"u": model.StatusUnknown,
}

var reviewCmd = &cobra.Command{
	Use:   "review <source_id>",
	Short: "Interactively review and verify a source's claims",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		defer e.Close()
		ctx := cmd.Context()

		sourceID := args[0]
		src, err := e.Store.GetSource(ctx, sourceID)
		if err != nil {
			return err
		}
		claims, err := e.Store.ListClaimsBySource(ctx, sourceID)
		if err != nil {
			return err
		}
		if len(claims) == 0 {
			fmt.Printf("no claims for source %s; run 'veritas claims %s' first\n", sourceID, sourceID)
			return nil
		}

		fmt.Printf("review claims for: %s\n", src.Title)
		fmt.Printf("  source id: %s  |  %d claims\n\n", sourceID, len(claims))
		for i, c := range claims {
			fmt.Printf("  %2d. [%s] %s\n", i+1, c.FinalStatus(), truncateStr(c.Text, 100))
		}

		in := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("\nenter claim # to verify (or 'q' to quit): ")
			line, err := in.ReadString('\n')
			if err != nil {
				break
			}
			choice := strings.TrimSpace(line)
			if choice == "" || choice == "q" || choice == "quit" || choice == "exit" {
				break
			}

			idx, err := strconv.Atoi(choice)
			if err != nil || idx < 1 || idx > len(claims) {
				fmt.Printf("invalid number; enter 1-%d\n", len(claims))
				continue
			}

			c := claims[idx-1]
			fmt.Printf("\nclaim #%d (%s)\n", idx, c.ID)
			fmt.Printf("  %q\n", c.Text)
			fmt.Printf("  timestamp: %s - %s\n", formatSeconds(c.TsStart), formatSeconds(c.TsEnd))
			fmt.Printf("  current status: %s\n", c.FinalStatus())

			evidence, err := e.Store.ListEvidenceForClaim(ctx, c.ID)
			if err != nil {
				return err
			}
			if len(evidence) > 0 {
				fmt.Printf("  evidence: %d item(s)\n", len(evidence))
				for _, ev := range evidence {
					fmt.Printf("    [%s] %s\n", ev.EvidenceType, ev.URL)
				}
			}

			fmt.Print("\n  status? (s)upported / (c)ontradicted / (p)artial / (u)nknown / Enter=skip: ")
			statusLine, err := in.ReadString('\n')
			if err != nil {
				break
			}
			statusInput := strings.ToLower(strings.TrimSpace(statusLine))
			if statusInput == "" {
				continue
			}
			status, ok := reviewStatusByLetter[statusInput]
			if !ok {
				fmt.Println("  unrecognized status; skipping")
				continue
			}
			if err := e.Store.SetClaimStatusHuman(ctx, c.ID, status); err != nil {
				return err
			}
			claims[idx-1].StatusHuman = &status
			fmt.Printf("  -> recorded %s\n", status)

			fmt.Print("  add evidence URL? (Enter to skip): ")
			urlLine, err := in.ReadString('\n')
			if err != nil {
				break
			}
			url := strings.TrimSpace(urlLine)
			if url == "" {
				continue
			}
			ev := model.Evidence{
				ID:           model.NewID(),
				ClaimID:      c.ID,
				URL:          url,
				EvidenceType: model.EvidenceTypeOther,
				Strength:     model.StrengthStrong,
			}
			if err := e.Store.AddEvidence(ctx, ev); err != nil {
				return err
			}
			fmt.Printf("  + evidence: %s\n", url)
		}

		fmt.Println("\nreview session ended")
		return nil
	},
}

func formatSeconds(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
