package db

import "context"

// RedisClient is the slice of Redis the venue index needs.
type RedisClient interface {
	Set(ctx context.Context, key, value string) error
	// Get returns redis.Nil when the key does not exist.
	Get(ctx context.Context, key string) (string, error)
	AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error
	RemoveLocation(ctx context.Context, geoKey, memberKey string) error
	// GetLocationsWithinRadius returns the JSON of each member within radius
	// km, nearest first.
	GetLocationsWithinRadius(ctx context.Context, geoKey string, lat, lon, radius float64) ([]string, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
