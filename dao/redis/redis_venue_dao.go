package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	goredis "github.com/go-redis/redis/v8"

	"hh-server/db"
	"hh-server/models/promotion"
)

const VENUES_GEO_KEY_V1 = "promo_venues_geo_v1"
const VENUES_GEO_PLACE_MEMBER_FORMAT_V1 = "promo_venue_v1:%s"
const OFFERS_KEY_V1 = "promo_offers_v1"

// RedisVenueDAO keeps the latest venue snapshot in a Redis geo index and the
// offers next to it as one JSON blob.
type RedisVenueDAO struct {
	client db.RedisClient
}

// NewRedisVenueDAO initializes a RedisVenueDAO with the Redis client.
func NewRedisVenueDAO(client db.RedisClient) *RedisVenueDAO {
	return &RedisVenueDAO{client: client}
}

func memberKey(v *promotion.Venue) string {
	return fmt.Sprintf(VENUES_GEO_PLACE_MEMBER_FORMAT_V1, v.Key())
}

// UpsertVenue stores the venue as a geolocation with the venue's JSON data.
func (dao *RedisVenueDAO) UpsertVenue(ctx context.Context, v promotion.Venue) error {
	return dao.client.AddLocationWithJSON(ctx, VENUES_GEO_KEY_V1, memberKey(&v), v.Lat, v.Lng, v)
}

// ReplaceVenues makes the index hold exactly venues. Members missing from the
// new snapshot are removed after the upserts, so readers never see an empty
// index during a refresh.
func (dao *RedisVenueDAO) ReplaceVenues(ctx context.Context, venues []promotion.Venue) error {
	existing, err := dao.client.Keys(ctx, fmt.Sprintf(VENUES_GEO_PLACE_MEMBER_FORMAT_V1, "*"))
	if err != nil {
		return fmt.Errorf("[RedisVenueDAO] failed to list venues: %w", err)
	}

	keep := make(map[string]struct{}, len(venues))
	for i := range venues {
		v := venues[i]
		if !v.HasCoordinates() {
			log.Printf("[RedisVenueDAO] Skipping %s: no coordinates", v.Name)
			continue
		}
		if err := dao.UpsertVenue(ctx, v); err != nil {
			return fmt.Errorf("[RedisVenueDAO] failed to upsert %s: %w", v.Name, err)
		}
		keep[memberKey(&v)] = struct{}{}
	}

	removed := 0
	for _, key := range existing {
		if _, ok := keep[key]; ok {
			continue
		}
		if err := dao.client.RemoveLocation(ctx, VENUES_GEO_KEY_V1, key); err != nil {
			return fmt.Errorf("[RedisVenueDAO] failed to remove %s: %w", key, err)
		}
		removed++
	}
	log.Printf("[RedisVenueDAO] Stored %d venues, removed %d stale", len(keep), removed)
	return nil
}

// GetNearbyVenues retrieves venues within radius km, nearest first.
func (dao *RedisVenueDAO) GetNearbyVenues(ctx context.Context, lat, lng, radius float64) ([]promotion.Venue, error) {
	venuesJSON, err := dao.client.GetLocationsWithinRadius(ctx, VENUES_GEO_KEY_V1, lat, lng, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisVenueDAO] failed to get venues: %w", err)
	}

	venues := make([]promotion.Venue, len(venuesJSON))
	for i, venueJSON := range venuesJSON {
		if err := json.Unmarshal([]byte(venueJSON), &venues[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
		}
	}
	return venues, nil
}

// ListVenueKeys returns the natural keys of all indexed venues.
func (dao *RedisVenueDAO) ListVenueKeys(ctx context.Context) ([]string, error) {
	keys, err := dao.client.Keys(ctx, fmt.Sprintf(VENUES_GEO_PLACE_MEMBER_FORMAT_V1, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list venue geo keys: %w", err)
	}
	prefix := fmt.Sprintf(VENUES_GEO_PLACE_MEMBER_FORMAT_V1, "")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}

// SetOffers caches the current limited offers.
func (dao *RedisVenueDAO) SetOffers(ctx context.Context, offers []promotion.Offer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("failed to marshal offers: %w", err)
	}
	if err := dao.client.Set(ctx, OFFERS_KEY_V1, string(data)); err != nil {
		return fmt.Errorf("failed to set offers in redis: %w", err)
	}
	return nil
}

// GetOffers returns the cached offers, or nil on a cache miss.
func (dao *RedisVenueDAO) GetOffers(ctx context.Context) ([]promotion.Offer, error) {
	str, err := dao.client.Get(ctx, OFFERS_KEY_V1)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get offers from redis: %w", err)
	}
	var offers []promotion.Offer
	if err := json.Unmarshal([]byte(str), &offers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal offers JSON: %w", err)
	}
	return offers, nil
}
