package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-widget/internal/weather/providers"
)

type AppConfig struct {
	Port string

	GeocodingURL         string
	ForecastURL          string
	GoogleGeocoderAPIKey string

	HTTPTimeout    time.Duration
	HTTPMaxRetries int

	// Artificial latency after each fetch stage.
	GeocodeDelay  time.Duration
	ForecastDelay time.Duration

	// Geocoder throttling and caching; zero disables.
	GeocodeRateLimit float64
	GeocodeRateBurst int
	GeocodeCacheTTL  time.Duration

	// PreferencesFile is the JSON document holding unit preferences.
	// Empty keeps them in memory.
	PreferencesFile string

	SessionIdleTimeout  time.Duration
	SessionReapInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.GeocodingURL = getenvDefault("GEOCODING_URL", providers.DefaultGeocodingURL)
	cfg.ForecastURL = getenvDefault("FORECAST_URL", providers.DefaultForecastURL)
	cfg.GoogleGeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")
	cfg.PreferencesFile = getenvDefault("PREFERENCES_FILE", "data/preferences.json")
	if v, ok := os.LookupEnv("PREFERENCES_FILE"); ok && v == "" {
		cfg.PreferencesFile = ""
	}

	cfg.HTTPMaxRetries = getenvInt("HTTP_MAX_RETRIES", 0)
	if cfg.HTTPMaxRetries < 0 {
		return nil, fmt.Errorf("invalid HTTP_MAX_RETRIES: %d", cfg.HTTPMaxRetries)
	}
	cfg.GeocodeRateLimit = getenvFloat("GEOCODE_RATE_LIMIT", 1)
	cfg.GeocodeRateBurst = getenvInt("GEOCODE_RATE_BURST", 5)

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"HTTP_TIMEOUT", "10s", &cfg.HTTPTimeout},
		{"GEOCODE_DELAY", "2s", &cfg.GeocodeDelay},
		{"FORECAST_DELAY", "3s", &cfg.ForecastDelay},
		{"GEOCODE_CACHE_TTL", "1h", &cfg.GeocodeCacheTTL},
		{"SESSION_IDLE_TIMEOUT", "24h", &cfg.SessionIdleTimeout},
		{"SESSION_REAP_INTERVAL", "15m", &cfg.SessionReapInterval},
	}
	for _, d := range durations {
		v, err := getenvDuration(d.key, d.def)
		if err != nil {
			return nil, err
		}
		*d.dst = v
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: negative duration", key)
	}
	return d, nil
}
