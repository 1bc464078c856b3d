package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"balkan-spine-wellness/pkg/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "site",
	Short: "Balkan Spine Wellness landing page",
	Long: `Serves the clinic's single page site and its contact form API.

Examples:
  site serve
  site content
  site mailto --name Ana --email ana@example.com --message "Bună ziua"`,
	SilenceUsage: true,
}

// @title           Balkan Spine Wellness API
// @version         1.0
// @description     Contact form API behind the clinic's landing page.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Log.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
