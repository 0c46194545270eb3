package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"hh-server/config"
	"hh-server/lifecycle"
	services "hh-server/service"
)

var (
	configPath string
	atFlag     string
)

var rootCmd = &cobra.Command{
	Use:   "hh-server",
	Short: "hh-server serves venue happy hours and specials as they run",
	Long: `hh-server reads the published venue and limited-offer sheets, works out
which promotions are running, about to start or ending soon, and serves
them over HTTP together with a rendered map.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (defaults to mock sheets and an in-memory index)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(plotCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// momentFor reads --at (RFC3339) or falls back to now.
func momentFor(vs *services.VenueService, at string) (lifecycle.Moment, error) {
	if at == "" {
		return vs.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return lifecycle.Moment{}, fmt.Errorf("invalid --at %q: %w", at, err)
	}
	return vs.At(t), nil
}
