package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"hh-server/api/sheets"
	"hh-server/dao/redis"
	"hh-server/models/promotion"
	"hh-server/util"
)

// VenuesRefresherService periodically re-reads the sheets and publishes a new
// snapshot.
type VenuesRefresherService struct {
	venueDao  *redis.RedisVenueDAO
	sheetsAPI sheets.SheetsAPI
	store     *SnapshotStore
	parseOpts util.VenueParseOptions
	now       func() time.Time
}

// NewVenuesRefresherService constructs a new Refresher with dependencies.
func NewVenuesRefresherService(
	venueDao *redis.RedisVenueDAO,
	sheetsAPI sheets.SheetsAPI,
	store *SnapshotStore,
	parseOpts util.VenueParseOptions,
) *VenuesRefresherService {
	return &VenuesRefresherService{
		venueDao:  venueDao,
		sheetsAPI: sheetsAPI,
		store:     store,
		parseOpts: parseOpts,
		now:       time.Now,
	}
}

// StartPeriodicJob launches the background loop at the given interval. The
// loop ends when ctx is cancelled.
func (vr *VenuesRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go vr.startPeriodicJob(ctx, interval)
}

func (vr *VenuesRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[VenuesRefresherService] Stopping periodic venues refresher job.")
			return
		case <-ticker.C:
			log.Println("[VenuesRefresherService] Running periodic venues refresher job.")
			if err := vr.RefreshVenuesData(ctx); err != nil {
				log.Printf("[VenuesRefresherService] RefreshVenuesData returned error: %v", err)
			} else {
				log.Println("[VenuesRefresherService] RefreshVenuesData completed successfully.")
			}
		}
	}
}

// RefreshVenuesData fetches and parses both sheets, publishes the result and
// mirrors it into Redis. When the venue sheet cannot be fetched or parsed the
// previous snapshot stays in place. A failing offers sheet keeps the last
// known offers.
func (vr *VenuesRefresherService) RefreshVenuesData(ctx context.Context) error {
	venuesCSV, err := vr.sheetsAPI.FetchVenuesCSV(ctx)
	if err != nil {
		return fmt.Errorf("keeping previous snapshot: %w", err)
	}
	venues, err := util.ParseVenuesCSV(venuesCSV, vr.parseOpts)
	if err != nil {
		return fmt.Errorf("keeping previous snapshot: %w", err)
	}
	venues = dedupeVenues(venues)

	offers, err := vr.fetchOffers(ctx)
	if err != nil {
		log.Printf("[VenuesRefresherService] Offers unavailable, keeping last known: %v", err)
		offers = vr.lastKnownOffers(ctx)
	}

	vr.store.Store(&Snapshot{Venues: venues, Offers: offers, FetchedAt: vr.now()})
	log.Printf("[VenuesRefresherService] Published snapshot: %d venues, %d offers", len(venues), len(offers))

	if err := vr.venueDao.ReplaceVenues(ctx, venues); err != nil {
		return fmt.Errorf("snapshot published but geo index not updated: %w", err)
	}
	if err := vr.venueDao.SetOffers(ctx, offers); err != nil {
		return fmt.Errorf("snapshot published but offers not cached: %w", err)
	}
	return nil
}

func (vr *VenuesRefresherService) fetchOffers(ctx context.Context) ([]promotion.Offer, error) {
	text, err := vr.sheetsAPI.FetchOffersCSV(ctx)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	return util.ParseOffersCSV(text)
}

// lastKnownOffers prefers the in-memory snapshot and falls back to the Redis
// copy, which survives restarts.
func (vr *VenuesRefresherService) lastKnownOffers(ctx context.Context) []promotion.Offer {
	if vr.store.Loaded() {
		return vr.store.Load().Offers
	}
	offers, err := vr.venueDao.GetOffers(ctx)
	if err != nil {
		log.Printf("[VenuesRefresherService] Could not read cached offers: %v", err)
		return nil
	}
	return offers
}

// dedupeVenues drops repeated venues, keeping the first occurrence.
func dedupeVenues(venues []promotion.Venue) []promotion.Venue {
	seen := make(map[string]struct{}, len(venues))
	out := venues[:0:0]
	for _, v := range venues {
		key := v.Key()
		if _, dup := seen[key]; dup {
			log.Printf("[VenuesRefresherService] Skipping duplicate %s", v.ToString())
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
