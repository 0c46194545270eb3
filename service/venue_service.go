package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hh-server/dao/redis"
	"hh-server/lifecycle"
	"hh-server/models/promotion"
	"hh-server/util"
)

// ErrVenueNotFound is returned by GetVenue for an unknown name.
var ErrVenueNotFound = errors.New("venue not found")

// PromotionView is one bucket of a venue (its happy hours or its specials)
// as the map shows it at a moment.
type PromotionView struct {
	State      lifecycle.State   `json:"state"`
	Status     lifecycle.Status  `json:"status"`
	ComingSoon bool              `json:"coming_soon"`
	MenuURL    string            `json:"menu_url,omitempty"`
	Notes      string            `json:"notes,omitempty"`
	Promotions []promotion.Entry `json:"promotions"`
}

// VenueView is a venue plus everything computed for it at one moment.
type VenueView struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Area        string  `json:"area,omitempty"`
	Instagram   string  `json:"instagram,omitempty"`
	Website     string  `json:"website,omitempty"`
	Description string  `json:"description,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`

	promotion.VenueFlags

	HappyHour *PromotionView `json:"happy_hour,omitempty"`
	Special   *PromotionView `json:"special,omitempty"`
}

// OfferView is a limited offer at one moment.
type OfferView struct {
	promotion.Offer

	State  lifecycle.State  `json:"state"`
	Status lifecycle.Status `json:"status"`
	Window string           `json:"window,omitempty"`
}

// Summary counts what is running at a moment.
type Summary struct {
	Venues           int       `json:"venues"`
	Offers           int       `json:"offers"`
	ActiveHappyHours int       `json:"active_happy_hours"`
	ActiveSpecials   int       `json:"active_specials"`
	ActiveOffers     int       `json:"active_offers"`
	FetchedAt        time.Time `json:"fetched_at"`
}

type VenueService struct {
	venueDao  *redis.RedisVenueDAO
	store     *SnapshotStore
	evaluator *lifecycle.Evaluator
	clock     *lifecycle.Clock
}

// NewVenueService constructs a new VenueService.
func NewVenueService(
	venueDao *redis.RedisVenueDAO,
	store *SnapshotStore,
	evaluator *lifecycle.Evaluator,
	clock *lifecycle.Clock) *VenueService {

	return &VenueService{
		venueDao:  venueDao,
		store:     store,
		evaluator: evaluator,
		clock:     clock,
	}
}

// Now is the current moment in the reference zone.
func (vs *VenueService) Now() lifecycle.Moment {
	return vs.clock.Moment()
}

// At projects t into the reference zone.
func (vs *VenueService) At(t time.Time) lifecycle.Moment {
	return lifecycle.MomentAt(t, vs.clock.Location)
}

// ListVenues returns views of the venues matching f at m.
func (vs *VenueService) ListVenues(f FilterState, m lifecycle.Moment) []VenueView {
	venues := ApplyFilters(vs.store.Load().Venues, f, vs.evaluator, m)
	return vs.views(venues, m)
}

// NearbyVenues returns views of the indexed venues within radius km of a
// point, nearest first.
func (vs *VenueService) NearbyVenues(ctx context.Context, lat, lng, radius float64, m lifecycle.Moment) ([]VenueView, error) {
	venues, err := vs.venueDao.GetNearbyVenues(ctx, lat, lng, radius)
	if err != nil {
		return nil, err
	}
	return vs.views(venues, m), nil
}

// GetVenue finds a venue by name, ignoring case.
func (vs *VenueService) GetVenue(name string, m lifecycle.Moment) (*VenueView, error) {
	name = strings.TrimSpace(name)
	for _, v := range vs.store.Load().Venues {
		if strings.EqualFold(v.Name, name) {
			view := vs.View(v, m)
			return &view, nil
		}
	}
	return nil, ErrVenueNotFound
}

// Offers returns every offer with its state at m.
func (vs *VenueService) Offers(m lifecycle.Moment) []OfferView {
	offers := vs.store.Load().Offers
	out := make([]OfferView, 0, len(offers))
	for _, o := range offers {
		entry := o.Entry()
		src := entry.Source()
		out = append(out, OfferView{
			Offer:  o,
			State:  vs.evaluator.Evaluate(src, m),
			Status: vs.evaluator.Status(src, m),
			Window: lifecycle.FormatLiveWindow(o.Today(m)),
		})
	}
	return out
}

// Neighborhoods lists the areas in the current snapshot.
func (vs *VenueService) Neighborhoods() []string {
	return util.Neighborhoods(vs.store.Load().Venues)
}

// Summary counts active promotions at m.
func (vs *VenueService) Summary(m lifecycle.Moment) Summary {
	snap := vs.store.Load()
	s := Summary{Venues: len(snap.Venues), Offers: len(snap.Offers), FetchedAt: snap.FetchedAt}
	for i := range snap.Venues {
		flags := snap.Venues[i].Flags(vs.evaluator, m)
		if flags.HasActiveHappyHour {
			s.ActiveHappyHours++
		}
		if flags.HasActiveSpecial {
			s.ActiveSpecials++
		}
	}
	for _, o := range vs.Offers(m) {
		if o.State.Phase == lifecycle.PhaseActive {
			s.ActiveOffers++
		}
	}
	return s
}

// MapPoints returns a marker for every visible bucket and offer.
func (vs *VenueService) MapPoints(views []VenueView, offers []OfferView) []util.MapPoint {
	var points []util.MapPoint
	add := func(name string, lat, lng float64, st lifecycle.State, offer bool) {
		if !st.Visible {
			return
		}
		points = append(points, util.MapPoint{Name: name, Lat: lat, Lng: lng, Layer: markerLayer(st, offer)})
	}
	for _, v := range views {
		if v.HappyHour != nil {
			add(v.Name, v.Lat, v.Lng, v.HappyHour.State, false)
		}
		if v.Special != nil {
			add(v.Name+" (special)", v.Lat, v.Lng, v.Special.State, false)
		}
	}
	for _, o := range offers {
		add(o.Name, o.Lat, o.Lng, o.State, true)
	}
	return points
}

func markerLayer(st lifecycle.State, offer bool) string {
	switch {
	case offer:
		return util.LayerOffer
	case st.Phase == lifecycle.PhasePreshow:
		return util.LayerPreshow
	case st.EndingSoon:
		return util.LayerEndingSoon
	default:
		return util.LayerActive
	}
}

func (vs *VenueService) views(venues []promotion.Venue, m lifecycle.Moment) []VenueView {
	out := make([]VenueView, 0, len(venues))
	for _, v := range venues {
		out = append(out, vs.View(v, m))
	}
	return out
}

// View computes the venue's flags and per-bucket state at m.
func (vs *VenueService) View(v promotion.Venue, m lifecycle.Moment) VenueView {
	return VenueView{
		Key:         v.Key(),
		Name:        v.Name,
		Area:        v.Area,
		Instagram:   v.Instagram,
		Website:     v.Website,
		Description: v.Description,
		Lat:         v.Lat,
		Lng:         v.Lng,
		VenueFlags:  v.Flags(vs.evaluator, m),
		HappyHour:   vs.bucketView(v.HappyHours, m, false),
		Special:     vs.bucketView(v.Specials, m, true),
	}
}

// bucketView narrows a bucket to the promotions that are running or about
// to, falling back to all of them, and derives state, footer and menu link
// from that set.
func (vs *VenueService) bucketView(entries []promotion.Entry, m lifecycle.Moment, specials bool) *PromotionView {
	if len(entries) == 0 {
		return nil
	}

	var relevant []promotion.Entry
	for i := range entries {
		if vs.evaluator.Evaluate(entries[i].Source(), m).Visible {
			relevant = append(relevant, entries[i])
		}
	}
	display := relevant
	if len(display) == 0 {
		display = entries
	}

	group := lifecycle.Group(promotion.Sources(display))
	view := &PromotionView{
		State:      vs.evaluator.Evaluate(group, m),
		Status:     vs.evaluator.Status(group, m),
		ComingSoon: vs.evaluator.ComingSoon(group, m),
		MenuURL:    resolveMenuURL(display),
		Promotions: display,
	}
	if specials {
		for _, e := range display {
			if strings.TrimSpace(e.Notes) != "" {
				view.Notes = e.Notes
				break
			}
		}
	}
	return view
}

// resolveMenuURL picks the first explicit menu link, else the first link in
// the notes, else the first link in a description.
func resolveMenuURL(entries []promotion.Entry) string {
	for _, e := range entries {
		if e.MenuURL != "" {
			return e.MenuURL
		}
	}
	for _, e := range entries {
		if url := util.ExtractURL(e.Notes); url != "" {
			return url
		}
	}
	for _, e := range entries {
		if url := util.ExtractURL(e.Description); url != "" {
			return url
		}
	}
	return ""
}
