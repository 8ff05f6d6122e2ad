package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"NewsDigest/internal/app"
	"NewsDigest/internal/config"
	"NewsDigest/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run all domain digests on an interval and email them",
	Long: `Runs the finance, technology, and sports pipelines with the
configured default parameters every digest.intervalMinutes and sends the
combined digest to the configured email recipient.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)
	application := app.New(cfg, logger)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return application.Serve(ctx)
}
