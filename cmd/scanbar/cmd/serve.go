package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/scanbar/internal/server"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the barcode scanning API",
	Long: `Start an HTTP server that provides REST API endpoints for barcode
scanning.

The server provides the following endpoints:
  POST /scan         - Scan uploaded images
  POST /scan/pdf     - Scan uploaded PDF documents
  GET  /ws/scan      - WebSocket frame-streaming scan
  GET  /symbologies  - List enabled symbologies
  GET  /health       - Health check endpoint
  GET  /metrics      - Prometheus metrics

Examples:
  scanbar serve
  scanbar serve --port 8080
  scanbar serve --host 0.0.0.0 --port 3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		applyScanFlagOverrides(cmd, cfg)

		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host, _ = cmd.Flags().GetString("host")
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		corsOrigin := cfg.Server.CORSOrigin
		if cmd.Flags().Changed("cors-origin") {
			corsOrigin, _ = cmd.Flags().GetString("cors-origin")
		}
		maxUploadMB := cfg.Server.MaxUploadMB
		if cmd.Flags().Changed("max-upload-size") {
			maxUploadMB, _ = cmd.Flags().GetInt64("max-upload-size")
		}
		timeout := cfg.Server.TimeoutSec
		if cmd.Flags().Changed("timeout") {
			timeout, _ = cmd.Flags().GetInt("timeout")
		}
		rateLimit := cfg.Server.RateLimitPerMinute
		if cmd.Flags().Changed("requests-per-minute") {
			rateLimit, _ = cmd.Flags().GetInt("requests-per-minute")
		}

		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
		}

		scanner, err := cfg.BuildScanner()
		if err != nil {
			return fmt.Errorf("failed to build scanner: %w", err)
		}

		srv, err := server.NewServer(server.Config{
			Host:               host,
			Port:               port,
			CORSOrigin:         corsOrigin,
			MaxUploadMB:        maxUploadMB,
			TimeoutSec:         timeout,
			RateLimitPerMinute: rateLimit,
			Scanner:            scanner,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
		go func() {
			sig := <-sigChan
			slog.Info("Received shutdown signal", "signal", sig.String())
			cancel()
		}()

		return srv.ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("host", "H", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")
	serveCmd.Flags().String("cors-origin", "*", "CORS allowed origins")
	serveCmd.Flags().Int64("max-upload-size", 50, "maximum upload size in MB")
	serveCmd.Flags().Int("timeout", 30, "request timeout in seconds")
	serveCmd.Flags().Int("requests-per-minute", 0, "rate limit per client (0 disables)")
	addScannerFlags(serveCmd)
}
