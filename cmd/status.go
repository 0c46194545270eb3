package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"hh-server/di"
	"hh-server/lifecycle"
	services "hh-server/service"
	"hh-server/util"
)

var (
	statusJSON      bool
	statusFromDir   string
	statusDumpDir   string
	statusAllVenues bool
)

const (
	venuesSnapshotFile = "venues.json"
	offersSnapshotFile = "offers.json"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Fetch the sheets once and print what is running",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&atFlag, "at", "", "Evaluate at this RFC3339 time instead of now")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the summary as JSON")
	statusCmd.Flags().BoolVar(&statusAllVenues, "all", false, "List every venue, not just running ones")
	statusCmd.Flags().StringVar(&statusFromDir, "from", "", "Read venues.json and offers.json from this directory instead of the sheets")
	statusCmd.Flags().StringVar(&statusDumpDir, "dump", "", "Write the parsed venues.json and offers.json to this directory")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	container, err := di.NewContainer(cfg)
	if err != nil {
		return err
	}
	if err := loadSnapshot(cmd.Context(), container, statusFromDir); err != nil {
		return err
	}

	snap := container.SnapshotStore.Load()
	if statusDumpDir != "" {
		if err := dumpSnapshot(snap, statusDumpDir); err != nil {
			return err
		}
	}

	m, err := momentFor(container.VenueService, atFlag)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if statusJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(container.VenueService.Summary(m))
	}

	util.PrintVenuesPartially(snap.Venues)
	filter := services.DefaultFilterState()
	filter.ActiveOnly = !statusAllVenues
	writeStatus(out, container.VenueService, filter, m)

	keys, err := container.RedisVenueDao.ListVenueKeys(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "geo index: %d venues\n", len(keys))
	return nil
}

// loadSnapshot fills the store from JSON files in dir, or from the sheets
// when dir is empty.
func loadSnapshot(ctx context.Context, c *di.Container, dir string) error {
	if dir == "" {
		return c.VenuesRefresherService.RefreshVenuesData(ctx)
	}
	venues, err := util.ReadVenuesFromJSON(filepath.Join(dir, venuesSnapshotFile))
	if err != nil {
		return err
	}
	offers, err := util.ReadOffersFromJSON(filepath.Join(dir, offersSnapshotFile))
	if err != nil {
		return err
	}
	c.SnapshotStore.Store(&services.Snapshot{Venues: venues, Offers: offers, FetchedAt: c.Clock.Moment().Time})
	return nil
}

func dumpSnapshot(snap *services.Snapshot, dir string) error {
	if err := util.WriteJSON(filepath.Join(dir, venuesSnapshotFile), snap.Venues); err != nil {
		return err
	}
	return util.WriteJSON(filepath.Join(dir, offersSnapshotFile), snap.Offers)
}

func writeStatus(w io.Writer, vs *services.VenueService, f services.FilterState, m lifecycle.Moment) {
	s := vs.Summary(m)
	fmt.Fprintf(w, "%s: %d happy hours, %d specials, %d offers running\n",
		m.Time.Format("Mon Jan 2 3:04pm"), s.ActiveHappyHours, s.ActiveSpecials, s.ActiveOffers)

	for _, v := range vs.ListVenues(f, m) {
		printed := false
		if v.HappyHour != nil && v.HappyHour.Status.Text != "" {
			fmt.Fprintf(w, "  %-28s happy hour  %s\n", v.Name, v.HappyHour.Status.Text)
			printed = true
		}
		if v.Special != nil && v.Special.Status.Text != "" {
			fmt.Fprintf(w, "  %-28s special     %s\n", v.Name, v.Special.Status.Text)
			printed = true
		}
		if !printed {
			fmt.Fprintf(w, "  %-28s nothing today\n", v.Name)
		}
	}
	for _, o := range vs.Offers(m) {
		if o.State.Visible {
			fmt.Fprintf(w, "  %-28s offer       %s (%s)\n", o.Name, o.Status.Text, o.Window)
		}
	}
}
