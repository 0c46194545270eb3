package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"hh-server/lifecycle"
	"hh-server/models/promotion"
)

// Defaults
const DEFAULT_TIMEZONE = lifecycle.DefaultTimezone
const DEFAULT_SERVER_ADDRESS = ":8080"
const ENV_PROD = "prod"

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Venues Refresher config
const VENUES_CATALOG_REFRESHER_SCHEDULE_MINUTES = 15

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const DEFAULT_CONFIG_RESOURCE = "config.yaml"

type SheetsConfig struct {
	VenuesCSVURL string `yaml:"venues_csv_url"`
	OffersCSVURL string `yaml:"offers_csv_url"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
}

type RefreshConfig struct {
	CatalogMinutes int `yaml:"catalog_minutes"`
}

// Config is the YAML file the server starts from. Anything left out falls
// back to the constants above.
type Config struct {
	Env           string                           `yaml:"env"`
	Timezone      string                           `yaml:"timezone"`
	Sheets        SheetsConfig                     `yaml:"sheets"`
	Redis         RedisConfig                      `yaml:"redis"`
	Server        ServerConfig                     `yaml:"server"`
	Refresh       RefreshConfig                    `yaml:"refresh"`
	Lifecycle     lifecycle.Thresholds             `yaml:"lifecycle"`
	MissingCoords map[string]promotion.Coordinates `yaml:"missing_coords"`
	MenuOverrides []promotion.MenuOverride         `yaml:"menu_overrides"`
}

// Default returns the configuration used when no file is given: mock sheets,
// in-memory geo index.
func Default() *Config {
	return &Config{
		Timezone:  DEFAULT_TIMEZONE,
		Server:    ServerConfig{Address: DEFAULT_SERVER_ADDRESS},
		Refresh:   RefreshConfig{CatalogMinutes: VENUES_CATALOG_REFRESHER_SCHEDULE_MINUTES},
		Lifecycle: lifecycle.DefaultThresholds(),
	}
}

// Load reads a YAML config file over the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	if c.Timezone == "" {
		c.Timezone = DEFAULT_TIMEZONE
	}
	if c.Server.Address == "" {
		c.Server.Address = DEFAULT_SERVER_ADDRESS
	}
	if c.Refresh.CatalogMinutes == 0 {
		c.Refresh.CatalogMinutes = VENUES_CATALOG_REFRESHER_SCHEDULE_MINUTES
	}
	def := lifecycle.DefaultThresholds()
	if c.Lifecycle.PreshowMinutes == 0 {
		c.Lifecycle.PreshowMinutes = def.PreshowMinutes
	}
	if c.Lifecycle.EndingSoonMinutes == 0 {
		c.Lifecycle.EndingSoonMinutes = def.EndingSoonMinutes
	}
	if c.Lifecycle.ComingSoonMinutes == 0 {
		c.Lifecycle.ComingSoonMinutes = def.ComingSoonMinutes
	}
}

// IsProd reports whether real sheets are fetched.
func (c *Config) IsProd() bool {
	return strings.EqualFold(c.Env, ENV_PROD)
}

// Validate checks the fields the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if _, err := lifecycle.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, err)
	}
	if c.IsProd() && c.Sheets.VenuesCSVURL == "" {
		errs = append(errs, errors.New("sheets.venues_csv_url is required in prod"))
	}
	if c.Refresh.CatalogMinutes < 0 {
		errs = append(errs, fmt.Errorf("refresh.catalog_minutes must be positive, got %d", c.Refresh.CatalogMinutes))
	}
	if c.Lifecycle.PreshowMinutes < 0 || c.Lifecycle.EndingSoonMinutes < 0 || c.Lifecycle.ComingSoonMinutes < 0 {
		errs = append(errs, errors.New("lifecycle thresholds must not be negative"))
	}
	for i, o := range c.MenuOverrides {
		if o.Venue == "" || o.URL == "" {
			errs = append(errs, fmt.Errorf("menu_overrides[%d] needs venue and url", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
