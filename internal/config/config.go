package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Planner  PlannerConfig
	Geocoder GeocoderConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds plan-cache settings. An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PlanTTL  time.Duration
}

// PlannerConfig holds the planning engine's tunable constants: travel-time
// estimation parameters, transport radius limits, the default provider
// budget, and the fallback home location used until one is stored in
// settings.
type PlannerConfig struct {
	SpeedKmh            float64
	DetourFactor        float64
	StopBufferMinutes   int
	UnknownHopMinutes   int
	RadiusWalkKm        float64
	RadiusBikeKm        float64
	DefaultDailyMinutes int
	HomeLat             float64
	HomeLon             float64
}

// GeocoderConfig holds Nominatim client settings. UserAgent must identify
// the deployment per the OSM usage policy.
type GeocoderConfig struct {
	BaseURL     string
	UserAgent   string
	CountryCode string
	// AddressSuffix is appended to patient addresses before lookup
	// (e.g. ", Würzburg, Germany" for a single-city practice).
	AddressSuffix string
}

// Addr returns the HTTP listen address.
func (s *ServerConfig) Addr() string { return ":" + s.Port }

// Load reads configuration from environment variables and an optional .env
// file, applying defaults for everything a local run needs.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	viper.SetDefault("SERVER_IDLE_TIMEOUT", "60s")

	viper.SetDefault("DATABASE_URL", "")

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PLAN_CACHE_TTL", "60s")

	viper.SetDefault("PLANNER_SPEED_KMH", 30.0)
	viper.SetDefault("PLANNER_DETOUR_FACTOR", 1.3)
	viper.SetDefault("PLANNER_STOP_BUFFER_MINUTES", 5)
	viper.SetDefault("PLANNER_UNKNOWN_HOP_MINUTES", 15)
	viper.SetDefault("RADIUS_WALK_KM", 2.0)
	viper.SetDefault("RADIUS_BIKE_KM", 7.0)
	viper.SetDefault("DEFAULT_DAILY_MINUTES", 240)
	// Würzburg Marktplatz approximation, overridden via /settings/location.
	viper.SetDefault("HOME_LAT", 49.79245)
	viper.SetDefault("HOME_LON", 9.93296)

	viper.SetDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("GEOCODER_USER_AGENT", "visit-planner-service/1.0")
	viper.SetDefault("GEOCODER_COUNTRY_CODE", "de")
	viper.SetDefault("GEOCODER_ADDRESS_SUFFIX", "")

	// Missing .env is fine; injected environment variables take over.
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			ReadTimeout:  viper.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:  viper.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL: viper.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			PlanTTL:  viper.GetDuration("PLAN_CACHE_TTL"),
		},
		Planner: PlannerConfig{
			SpeedKmh:            viper.GetFloat64("PLANNER_SPEED_KMH"),
			DetourFactor:        viper.GetFloat64("PLANNER_DETOUR_FACTOR"),
			StopBufferMinutes:   viper.GetInt("PLANNER_STOP_BUFFER_MINUTES"),
			UnknownHopMinutes:   viper.GetInt("PLANNER_UNKNOWN_HOP_MINUTES"),
			RadiusWalkKm:        viper.GetFloat64("RADIUS_WALK_KM"),
			RadiusBikeKm:        viper.GetFloat64("RADIUS_BIKE_KM"),
			DefaultDailyMinutes: viper.GetInt("DEFAULT_DAILY_MINUTES"),
			HomeLat:             viper.GetFloat64("HOME_LAT"),
			HomeLon:             viper.GetFloat64("HOME_LON"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:       viper.GetString("GEOCODER_BASE_URL"),
			UserAgent:     viper.GetString("GEOCODER_USER_AGENT"),
			CountryCode:   viper.GetString("GEOCODER_COUNTRY_CODE"),
			AddressSuffix: viper.GetString("GEOCODER_ADDRESS_SUFFIX"),
		},
	}

	if cfg.Planner.SpeedKmh <= 0 {
		return nil, fmt.Errorf("load config: PLANNER_SPEED_KMH must be positive, got %v", cfg.Planner.SpeedKmh)
	}

	return cfg, nil
}
