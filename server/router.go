package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// VenueRoutes is the JSON API surface.
type VenueRoutes interface {
	GetVenues(w http.ResponseWriter, r *http.Request)
	GetVenuesNearby(w http.ResponseWriter, r *http.Request)
	GetVenue(w http.ResponseWriter, r *http.Request)
	GetOffers(w http.ResponseWriter, r *http.Request)
	GetNeighborhoods(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

// MapRoutes serves the rendered map page.
type MapRoutes interface {
	GetMap(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	venueHandler VenueRoutes
	mapHandler   MapRoutes
	router       *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	venueHandler VenueRoutes,
	mapHandler MapRoutes,
	router *mux.Router) *Router {
	return &Router{
		venueHandler: venueHandler,
		mapHandler:   mapHandler,
		router:       router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(LoggingMiddleware)

	// expects ?active=&type=&day=&area=&weekend=&at=
	r.router.HandleFunc("/v1/venues", r.venueHandler.GetVenues).Methods("GET")
	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={km(float)}
	// nearby must be registered before {name}
	r.router.HandleFunc("/v1/venues/nearby", r.venueHandler.GetVenuesNearby).Methods("GET")
	r.router.HandleFunc("/v1/venues/{name}", r.venueHandler.GetVenue).Methods("GET")
	r.router.HandleFunc("/v1/offers", r.venueHandler.GetOffers).Methods("GET")
	r.router.HandleFunc("/v1/neighborhoods", r.venueHandler.GetNeighborhoods).Methods("GET")
	r.router.HandleFunc("/v1/summary", r.venueHandler.GetSummary).Methods("GET")
	r.router.HandleFunc("/v1/map", r.mapHandler.GetMap).Methods("GET")

	r.router.HandleFunc("/ping", r.venueHandler.Ping).Methods("GET")
}
