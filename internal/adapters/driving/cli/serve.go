package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dart-cli/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the JSON HTTP API for browser and kiosk front ends.

Endpoints:
  GET    /healthz
  GET    /api/search?q=QUERY
  GET    /api/codes?codes=LS10,LA1   or   /api/codes?filter=TEXT
  GET    /api/pages/{page}
  GET    /api/report
  POST   /api/report          {"card": {...}, "note": "..."}
  DELETE /api/report
  DELETE /api/report/{id}

The catalog is reloaded when the data files change.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings := serverSettings
	if serveAddr != "" {
		settings.Addr = serveAddr
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Search: searchService,
		Codes:  codeService,
		Report: reportService,
	}, settings)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	startWatcher(ctx)

	fmt.Fprintf(cmd.OutOrStdout(), "dart API listening on %s\n", server.Addr())
	return server.Run(ctx)
}
