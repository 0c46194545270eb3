package db_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hh-server/db"
)

func TestRedisClient_SetAndGet(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient()},
		// Replace with a real Redis client configuration for integration testing
		// {"GeoRedisClient", db.NewGeoRedisClient(ctx, realRedisClient)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, test.client.Set(ctx, "test-key", "test-value"))

			retrieved, err := test.client.Get(ctx, "test-key")
			require.NoError(t, err)
			assert.Equal(t, "test-value", retrieved)

			_, err = test.client.Get(ctx, "missing")
			assert.ErrorIs(t, err, redis.Nil)

			require.NoError(t, test.client.Del(ctx, "test-key"))
			_, err = test.client.Get(ctx, "test-key")
			assert.ErrorIs(t, err, redis.Nil)
		})
	}
}

func TestRedisClient_GeoRadius(t *testing.T) {
	ctx := context.Background()
	client := db.NewMockRedisClient()
	geoKey := "venues"

	// Venice pier, Abbot Kinney (under 1km away) and downtown LA (about 22km away)
	require.NoError(t, client.AddLocationWithJSON(ctx, geoKey, "pier", 33.9850, -118.4695, map[string]string{"id": "pier"}))
	require.NoError(t, client.AddLocationWithJSON(ctx, geoKey, "abbot", 33.9907, -118.4649, map[string]string{"id": "abbot"}))
	require.NoError(t, client.AddLocationWithJSON(ctx, geoKey, "dtla", 34.0522, -118.2437, map[string]string{"id": "dtla"}))

	results, err := client.GetLocationsWithinRadius(ctx, geoKey, 33.9850, -118.4695, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	var first map[string]string
	require.NoError(t, json.Unmarshal([]byte(results[0]), &first))
	assert.Equal(t, "pier", first["id"], "nearest first")

	results, err = client.GetLocationsWithinRadius(ctx, geoKey, 33.9850, -118.4695, 50)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	require.NoError(t, client.RemoveLocation(ctx, geoKey, "abbot"))
	results, err = client.GetLocationsWithinRadius(ctx, geoKey, 33.9850, -118.4695, 2)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	_, err = client.Get(ctx, "abbot")
	assert.ErrorIs(t, err, redis.Nil)

	results, err = client.GetLocationsWithinRadius(ctx, "unknown", 0, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRedisClient_Keys(t *testing.T) {
	ctx := context.Background()
	client := db.NewMockRedisClient()
	require.NoError(t, client.Set(ctx, "venue_v1:a", "1"))
	require.NoError(t, client.Set(ctx, "venue_v1:b", "2"))
	require.NoError(t, client.Set(ctx, "offers_v1", "[]"))

	keys, err := client.Keys(ctx, "venue_v1:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"venue_v1:a", "venue_v1:b"}, keys)
}

func TestRedisClient_Ping(t *testing.T) {
	assert.NoError(t, db.NewMockRedisClient().Ping(context.Background()))
}

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 0, db.HaversineKm(33.985, -118.4695, 33.985, -118.4695), 1e-9)
	// Venice to downtown LA is roughly 22km
	assert.InDelta(t, 22, db.HaversineKm(33.9850, -118.4695, 34.0522, -118.2437), 2)
}
