package providers

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-widget/internal/common"
	"github.com/i474232898/weather-widget/internal/weather"
)

// the geocoder package keeps its key in a package variable.
var googleKeyOnce sync.Once

// GoogleGeocoder implements weather.Geocoder with the Google Geocoding API.
type GoogleGeocoder struct {
	name string

	geocode func(geocoder.Address) (geocoder.Location, error)
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

// NewGoogleGeocoder configures the Google key. Only the first key set in a
// process is used.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	googleKeyOnce.Do(func() {
		geocoder.ApiKey = apiKey
	})
	return &GoogleGeocoder{
		name:    "google-geocoding",
		geocode: geocoder.Geocoding,
		reverse: geocoder.GeocodingReverse,
	}
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

// Geocode resolves city and, best effort, names the place from a reverse
// lookup. The underlying client takes no context, so cancellation only stops
// the wait.
func (g *GoogleGeocoder) Geocode(ctx context.Context, city string) (weather.Place, error) {
	type result struct {
		place weather.Place
		err   error
	}
	done := make(chan result, 1)

	go func() {
		place, err := g.lookup(city)
		done <- result{place: place, err: err}
	}()

	select {
	case <-ctx.Done():
		return weather.Place{}, ctx.Err()
	case r := <-done:
		return r.place, r.err
	}
}

// lookup runs the blocking client calls. The client indexes its results
// without checking them, so a panic is turned into an error.
func (g *GoogleGeocoder) lookup(city string) (place weather.Place, err error) {
	defer func() {
		if r := recover(); r != nil {
			place, err = weather.Place{}, fmt.Errorf("google geocode %q: client panic: %v", city, r)
		}
	}()

	loc, err := g.geocode(geocoder.Address{City: url.QueryEscape(city)})
	if err != nil {
		if common.HasAny(err.Error(), "ZERO_RESULTS", "no results", "not found") {
			return weather.Place{}, weather.ErrCityNotFound
		}
		return weather.Place{}, fmt.Errorf("google geocode %q: %w", city, err)
	}

	place = weather.Place{Name: city, Latitude: loc.Latitude, Longitude: loc.Longitude}
	if addrs, err := g.reverse(loc); err != nil {
		log.Printf("DEBUG: google reverse geocode for %q failed: %v", city, err)
	} else if len(addrs) > 0 {
		if addrs[0].City != "" {
			place.Name = addrs[0].City
		}
		place.Country = addrs[0].Country
	}
	return place, nil
}
