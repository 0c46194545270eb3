package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hh-server/di"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Refresh the sheets periodically and serve the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	container, err := di.NewContainer(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A failed first refresh still serves; the next tick retries.
	if err := container.VenuesRefresherService.RefreshVenuesData(ctx); err != nil {
		log.Printf("[serve] Initial refresh failed: %v", err)
	}
	container.VenuesRefresherService.StartPeriodicJob(ctx, time.Duration(cfg.Refresh.CatalogMinutes)*time.Minute)

	return container.HappyHourHttpServer.Start(ctx)
}
