package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hh-server/models/promotion"
)

func TestParse_FillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("env: dev\n"))
	require.NoError(t, err)

	assert.Equal(t, DEFAULT_TIMEZONE, cfg.Timezone)
	assert.Equal(t, DEFAULT_SERVER_ADDRESS, cfg.Server.Address)
	assert.Equal(t, VENUES_CATALOG_REFRESHER_SCHEDULE_MINUTES, cfg.Refresh.CatalogMinutes)
	assert.Equal(t, 30, cfg.Lifecycle.PreshowMinutes)
	assert.Equal(t, 45, cfg.Lifecycle.EndingSoonMinutes)
	assert.Equal(t, 300, cfg.Lifecycle.ComingSoonMinutes)
	assert.False(t, cfg.IsProd())
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse([]byte(`
env: PROD
timezone: UTC
sheets:
  venues_csv_url: https://sheets.example/venues.csv
redis:
  address: localhost:6379
  db: 2
lifecycle:
  preshow_minutes: 15
missing_coords:
  Amigos:
    lat: 34.003
    lng: -118.431
menu_overrides:
  - venue: Cou Cou
    contains: martini
    url: https://coucou.example/menu
`))
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 15, cfg.Lifecycle.PreshowMinutes)
	assert.Equal(t, 45, cfg.Lifecycle.EndingSoonMinutes)
	assert.Equal(t, promotion.Coordinates{Lat: 34.003, Lng: -118.431}, cfg.MissingCoords["Amigos"])
	require.Len(t, cfg.MenuOverrides, 1)
	assert.Equal(t, "martini", cfg.MenuOverrides[0].Contains)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "timezone: [unclosed"},
		{"unknown zone", "timezone: Mars/Olympus_Mons"},
		{"prod without sheet", "env: prod"},
		{"negative refresh", "refresh:\n  catalog_minutes: -5"},
		{"negative threshold", "lifecycle:\n  preshow_minutes: -1"},
		{"override without url", "menu_overrides:\n  - venue: Cou Cou\n    contains: martini"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  address: \":9090\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_BundledConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", RESOURCES_PATH_PREFIX, DEFAULT_CONFIG_RESOURCE))
	require.NoError(t, err)
	assert.Contains(t, cfg.MissingCoords, "Amigos Birria Tacos")
}

func TestGetResourcePath(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/hh")
	assert.Equal(t, "/srv/hh/resources/venues.csv", GetResourcePath("venues.csv"))
}
