package main

import (
	"fmt"
	"net/http"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obelus-labs/veritas-core/internal/apiserver"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local read-only JSON API",
	Long:  "Serves GET /health, /search, /sources, /claims/{id}, /clusters/{id}, /queue over HTTP. No endpoint mutates state; verify/assist/build-graph stay CLI-only.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		e, err := initEnv(cmd.Context(), "serve")
		if err != nil {
			return err
		}
		defer e.Close()

		port := servePort
		if !cmd.Flags().Changed("port") {
			port = cfg.Server.Port
		}

		addr := fmt.Sprintf(":%d", port)
		mux := apiserver.NewMux(e.Store, zap.L())

		zap.L().Info("serving read-only API", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			return eris.Wrap(err, "serve: listen")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
