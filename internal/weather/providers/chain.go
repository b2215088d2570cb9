package providers

import (
	"log"
	"time"

	"github.com/i474232898/weather-widget/internal/weather"
)

// GeocoderOptions selects the geocoding backend and its wrappers.
type GeocoderOptions struct {
	BaseURL      string
	GoogleAPIKey string // non-empty switches to Google geocoding

	RateLimit float64 // requests per second; zero disables
	RateBurst int
	CacheTTL  time.Duration // zero disables
}

// NewGeocoder builds the geocoder used by the widget: the backend, throttled,
// with a cache in front so repeated cities skip the limiter.
func NewGeocoder(cfg HTTPClientConfig, opts GeocoderOptions) weather.Geocoder {
	var g weather.Geocoder
	if opts.GoogleAPIKey != "" {
		g = NewGoogleGeocoder(opts.GoogleAPIKey)
	} else {
		g = NewOpenMeteoGeocoder(cfg, opts.BaseURL)
	}

	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		g = NewRateLimitedGeocoder(g, opts.RateLimit, burst)
	}
	if opts.CacheTTL > 0 {
		g = NewCachedGeocoder(g, opts.CacheTTL)
	}

	log.Printf("INFO: geocoder: %s", g.Name())
	return g
}
