package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/efactura/internal/logger"
	"github.com/rezonia/efactura/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for generating CIUS-RO documents.

The API provides endpoints for:
  - POST /api/v1/invoices/xml            - Generate XML (?format=json for totals)
  - POST /api/v1/invoices/validate       - Validate a JSON invoice
  - POST /api/v1/invoices/inspect        - Summarize XML or JSON
  - POST /api/v1/identifiers/normalize   - Normalize a CNP/CUI
  - POST /api/v1/addresses/normalize     - Resolve county, sector, country
  - GET  /metrics                        - Prometheus metrics
  - GET  /health                         - Health check

Examples:
  # Start server on the configured address (env: EFACTURA_SERVER_ADDRESS)
  efactura serve

  # Start on a custom port in debug mode
  efactura serve --address :9000 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default from EFACTURA_SERVER_ADDRESS or :8080)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.ServerAddress
	if serverAddr != "" {
		addr = serverAddr
	}

	config := &server.Config{
		Address:           addr,
		Currency:          cfg.Currency,
		DefaultTaxPercent: &cfg.DefaultTaxPercent,
		StrictIdentifiers: cfg.StrictIdentifiers,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		Debug:             serverDebug,
		Logger:            logger.GetLogger(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(config)
	if err := srv.Run(ctx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
