package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type doctorCheck struct {
	Name   string
	Passed bool
	Detail string
}

func runDoctorChecks(ctx context.Context) []doctorCheck {
	var checks []doctorCheck

	if err := cfg.Validate("cli"); err != nil {
		checks = append(checks, doctorCheck{"config", false, err.Error()})
	} else {
		checks = append(checks, doctorCheck{"config", true, fmt.Sprintf("data dir %s", cfg.Store.DataDir)})
	}

	if err := os.MkdirAll(cfg.Store.DataDir, 0o755); err != nil {
		checks = append(checks, doctorCheck{"data dir writable", false, err.Error()})
	} else {
		checks = append(checks, doctorCheck{"data dir writable", true, cfg.Store.DataDir})
	}

	if err := os.MkdirAll(cfg.Providers.CacheDir, 0o755); err != nil {
		checks = append(checks, doctorCheck{"filing cache dir", false, err.Error()})
	} else {
		checks = append(checks, doctorCheck{"filing cache dir", true, cfg.Providers.CacheDir})
	}

	if _, err := os.Stat(cfg.Providers.DataDir); err != nil && !os.IsNotExist(err) {
		checks = append(checks, doctorCheck{"local dataset dir", false, err.Error()})
	} else {
		checks = append(checks, doctorCheck{"local dataset dir", true, cfg.Providers.DataDir})
	}

	e, err := initEnv(ctx, "cli")
	if err != nil {
		checks = append(checks, doctorCheck{"store open", false, err.Error()})
		return checks
	}
	defer e.Close()
	checks = append(checks, doctorCheck{"store open", true, dbPath()})

	if err := e.Store.Ping(ctx); err != nil {
		checks = append(checks, doctorCheck{"store ping", false, err.Error()})
	} else {
		checks = append(checks, doctorCheck{"store ping", true, "ok"})
	}

	checks = append(checks, doctorCheck{"provider registry", true, fmt.Sprintf("%d providers registered", len(e.Registry.Names()))})

	return checks
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check runtime environment and dependencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("veritas doctor — checking environment...")
		checks := runDoctorChecks(cmd.Context())

		allOK := true
		for _, c := range checks {
			status := "PASS"
			if !c.Passed {
				status = "FAIL"
				allOK = false
			}
			fmt.Printf("  %-24s %-4s  %s\n", c.Name, status, c.Detail)
		}

		if allOK {
			fmt.Println("\nall checks passed")
			return nil
		}
		fmt.Println("\nsome checks failed — see above for details")
		os.Exit(1)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
