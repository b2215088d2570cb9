package weather

import (
	"context"
)

// Geocoder resolves a city name to a place. It returns ErrCityNotFound when
// the name has no match.
type Geocoder interface {
	Name() string
	Geocode(ctx context.Context, city string) (Place, error)
}

// ForecastSource fetches a forecast for a place in the requested units.
type ForecastSource interface {
	Name() string
	Forecast(ctx context.Context, place Place, units Units) (Snapshot, error)
}

// PreferenceStore persists the unit preference map of one client.
type PreferenceStore interface {
	LoadPreferences() (map[string]string, error)
	SavePreferences(prefs map[string]string) error
}

// Renderer is the port through which the controller updates the view.
// Calls are serialized by the controller.
type Renderer interface {
	ShowLoading()
	HideLoading()
	ShowNoResults(query string)
	ShowError(err error)
	ShowForecast(v ForecastView) error
	ShowDay(v DayView) error
	ShowUnits(u Units)
}
