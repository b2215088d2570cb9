package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrCityNotFound is returned by a Geocoder when the query has no match.
	ErrCityNotFound = errors.New("city not found")
	// ErrMalformedForecast is returned when a forecast payload lacks a section.
	ErrMalformedForecast = errors.New("malformed forecast payload")
	// ErrStale is returned when a newer request superseded this one.
	ErrStale = errors.New("request superseded by a newer one")
	// ErrEmptyQuery is returned for a blank city name.
	ErrEmptyQuery = errors.New("empty city name")
	// ErrNoForecast is returned by operations that need a snapshot before one exists.
	ErrNoForecast = errors.New("no forecast loaded")
	// ErrDayOutOfRange is returned when a day index is outside the daily series.
	ErrDayOutOfRange = errors.New("day index out of range")
	// ErrUnknownCategory is returned for a unit category that does not exist.
	ErrUnknownCategory = errors.New("unknown unit category")
)

func malformed(reason string) error {
	return fmt.Errorf("%w: %s", ErrMalformedForecast, reason)
}
