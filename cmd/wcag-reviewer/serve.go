package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wcag-reviewer/internal/app"
	"wcag-reviewer/internal/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, err := app.NewReviewService(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := app.NewServer(cfg, logger, svc, ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst))

	return srv.Start(ctx)
}
