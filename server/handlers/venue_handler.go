package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"hh-server/lifecycle"
	services "hh-server/service"
)

const (
	LAT_QUERY_ARG     = "lat"
	LON_QUERY_ARG     = "lon"
	RADIUS_QUERY_ARG  = "radius"
	ACTIVE_QUERY_ARG  = "active"
	TYPE_QUERY_ARG    = "type"
	DAY_QUERY_ARG     = "day"
	AREA_QUERY_ARG    = "area"
	WEEKEND_QUERY_ARG = "weekend"
	AT_QUERY_ARG      = "at"

	NAME_PATH_VAR = "name"
)

type VenueHandler struct {
	venueService *services.VenueService
}

func NewVenueHandler(venueService *services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

// GetVenues handles GET /v1/venues.
func (h *VenueHandler) GetVenues(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	m, ok := h.parseMoment(vals, w)
	if !ok {
		return
	}
	f, ok := parseFilter(vals, w, false)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.venueService.ListVenues(f, m))
}

// GetVenuesNearby handles GET /v1/venues/nearby?lat=..&lon=..&radius=..
// with the radius in km.
func (h *VenueHandler) GetVenuesNearby(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	lat, lon, radius, ok := parseGeoArgs(vals, w)
	if !ok {
		return
	}
	m, ok := h.parseMoment(vals, w)
	if !ok {
		return
	}

	views, err := h.venueService.NearbyVenues(r.Context(), lat, lon, radius, m)
	if err != nil {
		log.Println("[VenueHandler] Error loading nearby venues:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// GetVenue handles GET /v1/venues/{name}.
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	m, ok := h.parseMoment(r.URL.Query(), w)
	if !ok {
		return
	}
	view, err := h.venueService.GetVenue(mux.Vars(r)[NAME_PATH_VAR], m)
	if errors.Is(err, services.ErrVenueNotFound) {
		http.Error(w, "Venue not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Println("[VenueHandler] Error loading venue:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetOffers handles GET /v1/offers.
func (h *VenueHandler) GetOffers(w http.ResponseWriter, r *http.Request) {
	m, ok := h.parseMoment(r.URL.Query(), w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.venueService.Offers(m))
}

// GetNeighborhoods handles GET /v1/neighborhoods.
func (h *VenueHandler) GetNeighborhoods(w http.ResponseWriter, r *http.Request) {
	areas := h.venueService.Neighborhoods()
	if areas == nil {
		areas = []string{}
	}
	writeJSON(w, http.StatusOK, areas)
}

// GetSummary handles GET /v1/summary.
func (h *VenueHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	m, ok := h.parseMoment(r.URL.Query(), w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.venueService.Summary(m))
}

// Ping handles GET /ping
func (h *VenueHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// parseMoment reads ?at= (RFC3339) for previewing another time, defaulting
// to now.
func (h *VenueHandler) parseMoment(vals url.Values, w http.ResponseWriter) (lifecycle.Moment, bool) {
	return momentArg(h.venueService, vals, w)
}

func momentArg(vs *services.VenueService, vals url.Values, w http.ResponseWriter) (lifecycle.Moment, bool) {
	raw := vals.Get(AT_QUERY_ARG)
	if raw == "" {
		return vs.Now(), true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		http.Error(w, "Invalid argument "+AT_QUERY_ARG, http.StatusBadRequest)
		return lifecycle.Moment{}, false
	}
	return vs.At(t), true
}

// parseFilter builds a FilterState from query args. activeDefault applies
// when ?active= is absent.
func parseFilter(vals url.Values, w http.ResponseWriter, activeDefault bool) (services.FilterState, bool) {
	f := services.FilterState{
		ActiveOnly:    activeDefault,
		PromotionType: services.PromotionAll,
		SelectedDay:   services.SelectedToday,
		Neighborhoods: vals[AREA_QUERY_ARG],
	}

	var err error
	if v := vals.Get(ACTIVE_QUERY_ARG); v != "" {
		if f.ActiveOnly, err = strconv.ParseBool(v); err != nil {
			http.Error(w, "Invalid argument "+ACTIVE_QUERY_ARG, http.StatusBadRequest)
			return f, false
		}
	}
	if v := vals.Get(WEEKEND_QUERY_ARG); v != "" {
		if f.WeekendOnly, err = strconv.ParseBool(v); err != nil {
			http.Error(w, "Invalid argument "+WEEKEND_QUERY_ARG, http.StatusBadRequest)
			return f, false
		}
	}
	if v := vals.Get(TYPE_QUERY_ARG); v != "" {
		f.PromotionType = services.PromotionType(v)
	}
	if v := vals.Get(DAY_QUERY_ARG); v != "" {
		f.SelectedDay = v
	}

	if err := f.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return f, false
	}
	return f, true
}

func parseGeoArgs(vals url.Values, w http.ResponseWriter) (lat, lon, radius float64, ok bool) {
	var err error

	lat, err = parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LAT_QUERY_ARG, http.StatusBadRequest)
		return
	}
	lon, err = parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LON_QUERY_ARG, http.StatusBadRequest)
		return
	}
	radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG)
	if err != nil || radius <= 0 {
		http.Error(w, "Invalid argument "+RADIUS_QUERY_ARG, http.StatusBadRequest)
		return
	}
	ok = true
	return
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("[VenueHandler] Error encoding response:", err)
	}
}
