package providers

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/i474232898/weather-widget/internal/weather"
)

// CachedGeocoder remembers successful lookups for ttl. Failures, including
// "city not found", are never cached so a retry always reaches the API.
type CachedGeocoder struct {
	geocoder weather.Geocoder
	cache    *cache.Cache

	mu     sync.Mutex
	hits   int
	misses int
}

func NewCachedGeocoder(g weather.Geocoder, ttl time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		geocoder: g,
		cache:    cache.New(ttl, 2*ttl),
	}
}

func (c *CachedGeocoder) Name() string {
	return c.geocoder.Name() + " [Cached]"
}

func (c *CachedGeocoder) Geocode(ctx context.Context, city string) (weather.Place, error) {
	key := strings.ToLower(strings.TrimSpace(city))

	if v, ok := c.cache.Get(key); ok {
		if place, ok := v.(weather.Place); ok {
			c.mu.Lock()
			c.hits++
			c.mu.Unlock()
			return place, nil
		}
	}

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()

	place, err := c.geocoder.Geocode(ctx, city)
	if err != nil {
		return weather.Place{}, err
	}

	c.cache.Set(key, place, cache.DefaultExpiration)
	log.Printf("DEBUG: cached geocode for %q -> %s, %s", city, place.Name, place.Country)
	return place, nil
}

// Stats returns cache hits and misses.
func (c *CachedGeocoder) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

var _ weather.Geocoder = (*CachedGeocoder)(nil)
