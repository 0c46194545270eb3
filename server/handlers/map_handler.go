package handlers

import (
	"bytes"
	"log"
	"net/http"

	services "hh-server/service"
	"hh-server/util"
)

// MapHandler serves the rendered venue map.
type MapHandler struct {
	venueService *services.VenueService
}

func NewMapHandler(venueService *services.VenueService) *MapHandler {
	return &MapHandler{venueService: venueService}
}

// GetMap handles GET /v1/map. It takes the same filter args as /v1/venues
// but opens on what is running now.
func (h *MapHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	m, ok := momentArg(h.venueService, vals, w)
	if !ok {
		return
	}
	f, ok := parseFilter(vals, w, true)
	if !ok {
		return
	}

	views := h.venueService.ListVenues(f, m)
	points := h.venueService.MapPoints(views, h.venueService.Offers(m))

	var buf bytes.Buffer
	title := "Happy hours, " + m.Time.Format("Mon Jan 2 3:04pm")
	if err := util.RenderVenueMap(&buf, title, points); err != nil {
		log.Println("[MapHandler] Error rendering map:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Println("[MapHandler] Error writing map:", err)
	}
}
