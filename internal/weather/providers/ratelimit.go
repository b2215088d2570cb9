package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/i474232898/weather-widget/internal/weather"
)

// RateLimitedGeocoder wraps a Geocoder with a token bucket. Public geocoding
// services ask clients to stay around one request per second.
type RateLimitedGeocoder struct {
	geocoder weather.Geocoder
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedGeocoder allows rps requests per second with the given burst.
func NewRateLimitedGeocoder(g weather.Geocoder, rps float64, burst int) *RateLimitedGeocoder {
	return &RateLimitedGeocoder{
		geocoder: g,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", g.Name()),
	}
}

func (r *RateLimitedGeocoder) Name() string {
	return r.name
}

// Geocode waits for a token, then forwards.
func (r *RateLimitedGeocoder) Geocode(ctx context.Context, city string) (weather.Place, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return weather.Place{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.geocoder.Geocode(ctx, city)
}

var _ weather.Geocoder = (*RateLimitedGeocoder)(nil)
