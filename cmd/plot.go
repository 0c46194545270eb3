package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hh-server/di"
	services "hh-server/service"
	"hh-server/util"
)

var (
	plotOut     string
	plotFromDir string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the running promotions to an HTML map",
	Args:  cobra.NoArgs,
	RunE:  runPlot,
}

func init() {
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "venues_map.html", "Output HTML file")
	plotCmd.Flags().StringVar(&atFlag, "at", "", "Evaluate at this RFC3339 time instead of now")
	plotCmd.Flags().StringVar(&plotFromDir, "from", "", "Read venues.json and offers.json from this directory instead of the sheets")
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	container, err := di.NewContainer(cfg)
	if err != nil {
		return err
	}
	if err := loadSnapshot(cmd.Context(), container, plotFromDir); err != nil {
		return err
	}

	vs := container.VenueService
	m, err := momentFor(vs, atFlag)
	if err != nil {
		return err
	}
	points := vs.MapPoints(vs.ListVenues(services.DefaultFilterState(), m), vs.Offers(m))

	f, err := os.Create(plotOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", plotOut, err)
	}
	defer f.Close()

	if err := util.RenderVenueMap(f, "Happy hours, "+m.Time.Format("Mon Jan 2 3:04pm"), points); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Map with %d markers written to %s\n", len(points), plotOut)
	return nil
}
