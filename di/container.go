package di

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"hh-server/api"
	"hh-server/api/sheets"
	"hh-server/config"
	"hh-server/dao/redis"
	"hh-server/db"
	"hh-server/lifecycle"
	"hh-server/server"
	"hh-server/server/handlers"
	services "hh-server/service"
	"hh-server/util"
)

const redisPingTimeout = 5 * time.Second

// Container holds all application dependencies.
type Container struct {
	Config                 *config.Config
	Clock                  *lifecycle.Clock
	Evaluator              *lifecycle.Evaluator
	RedisClient            db.RedisClient
	RedisVenueDao          *redis.RedisVenueDAO
	SheetsAPI              sheets.SheetsAPI
	SnapshotStore          *services.SnapshotStore
	VenueService           *services.VenueService
	VenuesRefresherService *services.VenuesRefresherService
	VenueHandler           *handlers.VenueHandler
	MapHandler             *handlers.MapHandler
	MuxRouter              *mux.Router
	Router                 *server.Router
	HappyHourHttpServer    *server.HappyHourHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Printf("initializing container - env: %s", cfg.Env)

	loc, err := lifecycle.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}
	clock := lifecycle.NewClock(loc)
	evaluator := lifecycle.NewEvaluator(cfg.Lifecycle)

	redisClient, err := newRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}
	redisVenueDao := redis.NewRedisVenueDAO(redisClient)

	var sheetsAPI sheets.SheetsAPI
	if cfg.IsProd() {
		log.Printf("Using published sheets")
		sheetsAPI = sheets.NewSheetsApiClient(api.NewHTTPClient(""), cfg.Sheets.VenuesCSVURL, cfg.Sheets.OffersCSVURL)
	} else {
		log.Printf("Using mock sheets from %s", config.GetResourcePath(""))
		sheetsAPI = sheets.NewSheetsApiClientMock(config.GetResourcePath(""))
	}

	store := services.NewSnapshotStore()
	parseOpts := util.VenueParseOptions{
		MissingCoords: cfg.MissingCoords,
		MenuOverrides: cfg.MenuOverrides,
	}

	venueService := services.NewVenueService(redisVenueDao, store, evaluator, clock)
	venuesRefresherService := services.NewVenuesRefresherService(redisVenueDao, sheetsAPI, store, parseOpts)

	venueHandler := handlers.NewVenueHandler(venueService)
	mapHandler := handlers.NewMapHandler(venueService)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(venueHandler, mapHandler, muxRouter)
	httpServer := server.NewHappyHourHttpServer(router, muxRouter, cfg.Server.Address)

	return &Container{
		Config:                 cfg,
		Clock:                  clock,
		Evaluator:              evaluator,
		RedisClient:            redisClient,
		RedisVenueDao:          redisVenueDao,
		SheetsAPI:              sheetsAPI,
		SnapshotStore:          store,
		VenueService:           venueService,
		VenuesRefresherService: venuesRefresherService,
		VenueHandler:           venueHandler,
		MapHandler:             mapHandler,
		MuxRouter:              muxRouter,
		Router:                 router,
		HappyHourHttpServer:    httpServer,
	}, nil
}

// newRedisClient connects to Redis, or keeps the index in memory when no
// address is configured.
func newRedisClient(cfg config.RedisConfig) (db.RedisClient, error) {
	if cfg.Address == "" {
		log.Printf("No redis address, using in-memory geo index")
		return db.NewMockRedisClient(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	redisClient, err := db.NewGeoRedisClient(ctx, redisInternalClient)
	if err != nil {
		redisInternalClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}
	return redisClient, nil
}
