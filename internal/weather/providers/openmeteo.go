package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-widget/internal/weather"
)

// DefaultForecastURL is the Open-Meteo forecast endpoint.
const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

const (
	hourlyFields = "temperature_2m,weathercode,apparent_temperature,relative_humidity_2m,precipitation"
	dailyFields  = "weathercode,temperature_2m_max,temperature_2m_min"
)

// OpenMeteoProvider implements weather.ForecastSource for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

func NewOpenMeteoProvider(cfg HTTPClientConfig, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: cfg,
		circuit: newCircuitBreaker("openmeteo"),
		now:     time.Now,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// openMeteoForecast mirrors the forecast payload. Sections are pointers so a
// missing one can be told apart from an empty one.
type openMeteoForecast struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
	Hourly *struct {
		Time                []string  `json:"time"`
		Temperature         []float64 `json:"temperature_2m"`
		WeatherCode         []int     `json:"weathercode"`
		ApparentTemperature []float64 `json:"apparent_temperature"`
		RelativeHumidity    []float64 `json:"relative_humidity_2m"`
		Precipitation       []float64 `json:"precipitation"`
	} `json:"hourly"`
	Daily *struct {
		Time           []string  `json:"time"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		WeatherCode    []int     `json:"weathercode"`
	} `json:"daily"`
}

// Forecast fetches current, hourly and daily data for place in units.
func (p *OpenMeteoProvider) Forecast(ctx context.Context, place weather.Place, units weather.Units) (weather.Snapshot, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(place.Latitude, 'f', 4, 64))
		values.Set("longitude", strconv.FormatFloat(place.Longitude, 'f', 4, 64))
		values.Set("current_weather", "true")
		values.Set("hourly", hourlyFields)
		values.Set("daily", dailyFields)
		values.Set("timezone", "auto")
		values.Set("temperature_unit", string(units.Temperature))
		values.Set("windspeed_unit", string(units.Wind))
		values.Set("precipitation_unit", string(units.Precipitation))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("forecast for %s: %w", place.Name, err)
	}
	defer resp.Body.Close()

	var payload openMeteoForecast
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("%w: %v", weather.ErrMalformedForecast, err)
	}

	switch {
	case payload.CurrentWeather == nil:
		return weather.Snapshot{}, fmt.Errorf("%w: current_weather missing", weather.ErrMalformedForecast)
	case payload.Hourly == nil:
		return weather.Snapshot{}, fmt.Errorf("%w: hourly missing", weather.ErrMalformedForecast)
	case payload.Daily == nil:
		return weather.Snapshot{}, fmt.Errorf("%w: daily missing", weather.ErrMalformedForecast)
	}

	snap := weather.Snapshot{
		Place: place,
		Units: units,
		Current: weather.Current{
			Temperature: payload.CurrentWeather.Temperature,
			WindSpeed:   payload.CurrentWeather.WindSpeed,
			WeatherCode: payload.CurrentWeather.WeatherCode,
			Time:        payload.CurrentWeather.Time,
		},
		Hourly: weather.HourlySeries{
			Time:                payload.Hourly.Time,
			Temperature:         payload.Hourly.Temperature,
			WeatherCode:         payload.Hourly.WeatherCode,
			ApparentTemperature: payload.Hourly.ApparentTemperature,
			RelativeHumidity:    payload.Hourly.RelativeHumidity,
			Precipitation:       payload.Hourly.Precipitation,
		},
		Daily: weather.DailySeries{
			Time:           payload.Daily.Time,
			TemperatureMin: payload.Daily.TemperatureMin,
			TemperatureMax: payload.Daily.TemperatureMax,
			WeatherCode:    payload.Daily.WeatherCode,
		},
		FetchedAt: p.now().UTC(),
	}

	if err := snap.Validate(); err != nil {
		return weather.Snapshot{}, err
	}
	return snap, nil
}
