package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hh-server/api/sheets"
	"hh-server/config"
	"hh-server/db"
)

func TestNewContainer_DefaultsToMocks(t *testing.T) {
	root, err := filepath.Abs("..")
	require.NoError(t, err)
	t.Setenv("PROJECT_ROOT", root)

	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.MissingCoords = nil

	c, err := NewContainer(cfg)
	require.NoError(t, err)
	assert.IsType(t, &db.MockRedisClient{}, c.RedisClient)
	assert.IsType(t, &sheets.SheetsApiClientMock{}, c.SheetsAPI)
	assert.Equal(t, 30, c.Evaluator.Thresholds.PreshowMinutes)

	require.NoError(t, c.VenuesRefresherService.RefreshVenuesData(context.Background()))
	assert.Len(t, c.SnapshotStore.Load().Venues, 4)
	assert.Len(t, c.VenueService.Neighborhoods(), 2)
}

func TestNewContainer_ProdUsesPublishedSheets(t *testing.T) {
	cfg := config.Default()
	cfg.Env = config.ENV_PROD
	cfg.Sheets.VenuesCSVURL = "https://sheets.example/venues.csv"

	c, err := NewContainer(cfg)
	require.NoError(t, err)
	assert.IsType(t, &sheets.SheetsApiClient{}, c.SheetsAPI)
}

func TestNewContainer_BadTimezone(t *testing.T) {
	cfg := config.Default()
	cfg.Timezone = "Nowhere/Special"
	_, err := NewContainer(cfg)
	assert.Error(t, err)
}

func TestNewContainer_UnreachableRedis(t *testing.T) {
	cfg := config.Default()
	cfg.Redis.Address = "127.0.0.1:1"
	_, err := NewContainer(cfg)
	assert.Error(t, err)
}
