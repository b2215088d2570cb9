package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// Latency holds the artificial pauses inserted after each fetch stage.
// Zero disables a pause.
type Latency struct {
	Geocode  time.Duration
	Forecast time.Duration
}

// Service owns the state of one widget: the authoritative snapshot, the last
// query, the unit choices and the selected day. Every mutation of that state
// and every render happens under mu, and fetch sequences commit only while
// their token is still current.
type Service struct {
	geocoder  Geocoder
	forecasts ForecastSource
	prefs     PreferenceStore
	renderer  Renderer
	latency   Latency
	seq       *Sequencer

	mu          sync.Mutex
	units       Units
	snapshot    *Snapshot
	query       string
	selectedDay int
	loadingBy   Token
}

// NewService creates a Service and restores the persisted unit preferences.
// prefs may be nil, in which case choices are kept in memory only.
func NewService(geocoder Geocoder, forecasts ForecastSource, prefs PreferenceStore, renderer Renderer, latency Latency) *Service {
	s := &Service{
		geocoder:  geocoder,
		forecasts: forecasts,
		prefs:     prefs,
		renderer:  renderer,
		latency:   latency,
		seq:       NewSequencer(),
		units:     MetricUnits(),
	}

	if prefs != nil {
		stored, err := prefs.LoadPreferences()
		if err != nil {
			log.Printf("ERROR: failed to load unit preferences, using metric: %v", err)
		} else {
			s.units = ResolveUnits(stored)
		}
	}

	renderer.ShowUnits(s.units)
	return s
}

// Search runs the geocode → forecast → render sequence for city. It returns
// ErrStale when a newer request superseded this one before it finished.
func (s *Service) Search(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return ErrEmptyQuery
	}
	return s.run(ctx, city)
}

// Retry repeats the last submitted query.
func (s *Service) Retry(ctx context.Context) error {
	s.mu.Lock()
	q := s.query
	s.mu.Unlock()

	if q == "" {
		return ErrEmptyQuery
	}
	return s.run(ctx, q)
}

// ToggleUnit flips one unit axis, persists it and refetches the last query.
func (s *Service) ToggleUnit(ctx context.Context, c Category) error {
	if _, err := ParseCategory(string(c)); err != nil {
		return err
	}
	return s.changeUnits(ctx, func(u Units) Units { return u.Toggle(c) })
}

// SwitchUnits moves every axis at once (see Units.SwitchAll).
func (s *Service) SwitchUnits(ctx context.Context) error {
	return s.changeUnits(ctx, Units.SwitchAll)
}

func (s *Service) changeUnits(ctx context.Context, change func(Units) Units) error {
	s.mu.Lock()
	s.units = change(s.units)
	units := s.units
	q := s.query
	s.renderer.ShowUnits(units)
	// Saved under mu so the stored map always matches the last change.
	if s.prefs != nil {
		if err := s.prefs.SavePreferences(units.Preferences()); err != nil {
			log.Printf("ERROR: failed to persist unit preferences: %v", err)
		}
	}
	s.mu.Unlock()

	if q == "" {
		return nil
	}
	return s.run(ctx, q)
}

// SelectDay renders the hourly breakdown of the day at index.
func (s *Service) SelectDay(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil {
		return ErrNoForecast
	}

	v, err := s.snapshot.DayView(index)
	if err != nil {
		return err
	}
	if err := s.renderer.ShowDay(v); err != nil {
		s.renderer.ShowError(err)
		return fmt.Errorf("render day %d: %w", index, err)
	}
	s.selectedDay = index
	return nil
}

// Snapshot returns the authoritative snapshot, if any.
func (s *Service) Snapshot() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil {
		return Snapshot{}, false
	}
	return *s.snapshot, true
}

// Units returns the current unit choices.
func (s *Service) Units() Units {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.units
}

// Query returns the last submitted query.
func (s *Service) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SelectedDay returns the index of the day whose hours are displayed.
func (s *Service) SelectedDay() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDay
}

func (s *Service) run(ctx context.Context, city string) error {
	s.mu.Lock()
	tok := s.seq.Begin()
	s.query = city
	units := s.units
	s.loadingBy = tok
	s.renderer.ShowLoading()
	s.mu.Unlock()

	defer s.hideLoading(tok)

	log.Printf("DEBUG: request %d: geocoding %q via %s", tok, city, s.geocoder.Name())
	place, err := s.geocoder.Geocode(ctx, city)
	if perr := pause(ctx, s.latency.Geocode); err == nil {
		err = perr
	}
	if s.seq.IsStale(tok) {
		return ErrStale
	}
	if err != nil {
		return s.fail(tok, city, err)
	}

	log.Printf("DEBUG: request %d: fetching forecast for %s (%.4f, %.4f) via %s",
		tok, place.Name, place.Latitude, place.Longitude, s.forecasts.Name())
	snap, err := s.forecasts.Forecast(ctx, place, units)
	if perr := pause(ctx, s.latency.Forecast); err == nil {
		err = perr
	}
	if s.seq.IsStale(tok) {
		return ErrStale
	}
	if err == nil {
		err = snap.Validate()
	}
	if err != nil {
		return s.fail(tok, city, err)
	}

	return s.commit(tok, snap)
}

// hideLoading clears the indicator only if tok still owns it; a newer
// request that took it over clears it itself.
func (s *Service) hideLoading(tok Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadingBy != tok {
		return
	}
	s.loadingBy = 0
	s.renderer.HideLoading()
}

func (s *Service) fail(tok Token, city string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq.IsStale(tok) {
		return ErrStale
	}

	if errors.Is(err, ErrCityNotFound) {
		log.Printf("INFO: request %d: no results for %q", tok, city)
		s.renderer.ShowNoResults(city)
		return err
	}

	log.Printf("ERROR: request %d: fetch for %q failed: %v", tok, city, err)
	s.renderer.ShowError(err)
	return err
}

func (s *Service) commit(tok Token, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq.IsStale(tok) {
		return ErrStale
	}

	view, err := snap.View()
	if err == nil {
		err = s.renderer.ShowForecast(view)
	}
	if err != nil {
		log.Printf("ERROR: request %d: render failed: %v", tok, err)
		s.renderer.ShowError(err)
		return fmt.Errorf("render forecast: %w", err)
	}

	s.snapshot = &snap
	s.selectedDay = 0
	log.Printf("DEBUG: request %d: rendered forecast for %s", tok, snap.Place.Name)
	return nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
