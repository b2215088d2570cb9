package weather

import (
	"fmt"
	"log"
	"time"
)

const (
	dayLayout  = "2006-01-02"
	hourLayout = "2006-01-02T15:04"

	// dayWindow is the inclusive span of a day, [00:00, 23:59].
	dayWindow = 23*time.Hour + 59*time.Minute
)

// parseLocalTime accepts the forecast API's local "2006-01-02T15:04" form and
// falls back to RFC3339.
func parseLocalTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(hourLayout, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Samples zips the hourly arrays into ordered samples. Rows whose timestamp
// cannot be parsed are skipped since they cannot be placed on a day.
func (h HourlySeries) Samples() []HourSample {
	n := len(h.Time)
	samples := make([]HourSample, 0, n)
	for i := 0; i < n; i++ {
		at, err := parseLocalTime(h.Time[i])
		if err != nil {
			log.Printf("DEBUG: skipping hourly sample %q: %v", h.Time[i], err)
			continue
		}

		s := HourSample{
			Time:  h.Time[i],
			Hour:  at.Hour(),
			Label: FormatHour(at.Hour()),
			at:    at,
		}
		if i < len(h.Temperature) {
			s.Temperature = h.Temperature[i]
		}
		if i < len(h.ApparentTemperature) {
			s.ApparentTemperature = h.ApparentTemperature[i]
		}
		if i < len(h.RelativeHumidity) {
			s.RelativeHumidity = h.RelativeHumidity[i]
		}
		if i < len(h.Precipitation) {
			s.Precipitation = h.Precipitation[i]
		}
		if i < len(h.WeatherCode) {
			s.WeatherCode = h.WeatherCode[i]
		}
		s.Condition = ConditionForCode(s.WeatherCode)
		samples = append(samples, s)
	}
	return samples
}

// SliceForDay returns the samples whose timestamp lies within
// [dayKey 00:00, dayKey 23:59], in their original order. An empty series, a
// day without samples or an unparsable dayKey all yield an empty slice.
func SliceForDay(samples []HourSample, dayKey string) []HourSample {
	day, err := time.Parse(dayLayout, dayKey)
	if err != nil {
		return []HourSample{}
	}

	out := make([]HourSample, 0, 24)
	for _, s := range samples {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.at.Location())
		end := start.Add(dayWindow)
		if s.at.Before(start) || s.at.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FormatHour renders a 0-23 hour as a 12-hour clock label ("12 AM", "1 PM").
// Values outside the range wrap modulo 24.
func FormatHour(h int) string {
	h = ((h % 24) + 24) % 24
	switch {
	case h == 0:
		return "12 AM"
	case h < 12:
		return fmt.Sprintf("%d AM", h)
	case h == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", h-12)
	}
}

// Summaries builds the day selector entries from the daily series.
func (d DailySeries) Summaries() []DaySummary {
	out := make([]DaySummary, 0, len(d.Time))
	for i, key := range d.Time {
		s := DaySummary{Key: key}
		if t, err := time.Parse(dayLayout, key); err == nil {
			s.Weekday = t.Weekday().String()
		}
		if i < len(d.TemperatureMin) {
			s.TemperatureMin = d.TemperatureMin[i]
		}
		if i < len(d.TemperatureMax) {
			s.TemperatureMax = d.TemperatureMax[i]
		}
		if i < len(d.WeatherCode) {
			s.WeatherCode = d.WeatherCode[i]
		}
		s.Condition = ConditionForCode(s.WeatherCode)
		out = append(out, s)
	}
	return out
}

// CurrentHour returns the hourly sample covering the current reading's hour.
func (s Snapshot) CurrentHour() (HourSample, bool) {
	now, err := parseLocalTime(s.Current.Time)
	if err != nil {
		return HourSample{}, false
	}
	now = now.Truncate(time.Hour)
	for _, h := range s.Hourly.Samples() {
		if h.at.Equal(now) {
			return h, true
		}
	}
	return HourSample{}, false
}

// DayView returns the hourly breakdown for the day at index.
func (s Snapshot) DayView(index int) (DayView, error) {
	days := s.Daily.Summaries()
	if index < 0 || index >= len(days) {
		return DayView{}, fmt.Errorf("%w: %d of %d", ErrDayOutOfRange, index, len(days))
	}
	return DayView{
		Index: index,
		Day:   days[index],
		Hours: SliceForDay(s.Hourly.Samples(), days[index].Key),
	}, nil
}

// View derives the full result view with today's hours selected.
func (s Snapshot) View() (ForecastView, error) {
	today, err := s.DayView(0)
	if err != nil {
		return ForecastView{}, err
	}

	cur := CurrentView{
		Current:   s.Current,
		Condition: ConditionForCode(s.Current.WeatherCode),
	}
	if h, ok := s.CurrentHour(); ok {
		cur.Hour = &h
	}

	return ForecastView{
		Place:   s.Place,
		Units:   s.Units,
		Current: cur,
		Days:    s.Daily.Summaries(),
		Day:     today,
	}, nil
}
