package weather

import (
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Place is a geocoded city.
type Place struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Current is the current-conditions block of a forecast.
type Current struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windSpeed"`
	WeatherCode int     `json:"weatherCode"`
	Time        string  `json:"time"`
}

// HourlySeries holds index-aligned hourly arrays as returned by the forecast API.
type HourlySeries struct {
	Time                []string  `json:"time"`
	Temperature         []float64 `json:"temperature"`
	WeatherCode         []int     `json:"weatherCode"`
	ApparentTemperature []float64 `json:"apparentTemperature"`
	RelativeHumidity    []float64 `json:"relativeHumidity"`
	Precipitation       []float64 `json:"precipitation"`
}

// DailySeries holds index-aligned daily arrays.
type DailySeries struct {
	Time           []string  `json:"time"`
	TemperatureMin []float64 `json:"temperatureMin"`
	TemperatureMax []float64 `json:"temperatureMax"`
	WeatherCode    []int     `json:"weatherCode"`
}

// Snapshot is one complete forecast for a place. It is replaced wholesale on
// every successful fetch and never partially updated.
type Snapshot struct {
	Place     Place        `json:"place"`
	Units     Units        `json:"units"`
	Current   Current      `json:"current"`
	Hourly    HourlySeries `json:"hourly"`
	Daily     DailySeries  `json:"daily"`
	FetchedAt time.Time    `json:"fetchedAt"`
}

// Validate reports ErrMalformedForecast when a series is missing or its
// parallel arrays are not aligned.
func (s Snapshot) Validate() error {
	if s.Current.Time == "" {
		return malformed("current block missing")
	}

	n := len(s.Hourly.Time)
	if n == 0 {
		return malformed("hourly series missing")
	}
	if len(s.Hourly.Temperature) != n || len(s.Hourly.WeatherCode) != n ||
		len(s.Hourly.ApparentTemperature) != n || len(s.Hourly.RelativeHumidity) != n ||
		len(s.Hourly.Precipitation) != n {
		return malformed("hourly arrays are not aligned")
	}

	d := len(s.Daily.Time)
	if d == 0 {
		return malformed("daily series missing")
	}
	if len(s.Daily.TemperatureMin) != d || len(s.Daily.TemperatureMax) != d || len(s.Daily.WeatherCode) != d {
		return malformed("daily arrays are not aligned")
	}
	return nil
}

// HourSample is one row of the hourly series.
type HourSample struct {
	Time                string    `json:"time"`
	Hour                int       `json:"hour"`
	Label               string    `json:"label"`
	Temperature         float64   `json:"temperature"`
	ApparentTemperature float64   `json:"apparentTemperature"`
	RelativeHumidity    float64   `json:"relativeHumidity"`
	Precipitation       float64   `json:"precipitation"`
	WeatherCode         int       `json:"weatherCode"`
	Condition           Condition `json:"condition"`

	at time.Time
}

// At returns the parsed local timestamp of the sample.
func (h HourSample) At() time.Time {
	return h.at
}

// DaySummary is one entry of the day selector.
type DaySummary struct {
	Key            string    `json:"key"` // YYYY-MM-DD
	Weekday        string    `json:"weekday"`
	TemperatureMin float64   `json:"temperatureMin"`
	TemperatureMax float64   `json:"temperatureMax"`
	WeatherCode    int       `json:"weatherCode"`
	Condition      Condition `json:"condition"`
}

// CurrentView is what the current-conditions region shows.
type CurrentView struct {
	Current
	Condition Condition   `json:"condition"`
	Hour      *HourSample `json:"hour,omitempty"`
}

// DayView is the hourly breakdown of one selected day.
type DayView struct {
	Index int          `json:"index"`
	Day   DaySummary   `json:"day"`
	Hours []HourSample `json:"hours"`
}

// ForecastView bundles everything the result regions render after a fetch.
type ForecastView struct {
	Place   Place        `json:"place"`
	Units   Units        `json:"units"`
	Current CurrentView  `json:"current"`
	Days    []DaySummary `json:"days"`
	Day     DayView      `json:"day"`
}
