package view

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/i474232898/weather-widget/internal/weather"
)

func sampleView() weather.ForecastView {
	hours := []weather.HourSample{
		{Time: "2024-05-01T00:00", Hour: 0, Label: weather.FormatHour(0), Temperature: 12, Condition: weather.ConditionClear},
		{Time: "2024-05-01T13:00", Hour: 13, Label: weather.FormatHour(13), Temperature: 25, Condition: weather.ConditionCloudy},
	}
	days := []weather.DaySummary{
		{Key: "2024-05-01", Weekday: "Wednesday", TemperatureMin: 12, TemperatureMax: 27, Condition: weather.ConditionCloudy},
		{Key: "2024-05-02", Weekday: "Thursday", TemperatureMin: 14, TemperatureMax: 29, Condition: weather.ConditionRain},
	}
	return weather.ForecastView{
		Place: weather.Place{Name: "Amman", Country: "Jordan"},
		Units: weather.MetricUnits(),
		Current: weather.CurrentView{
			Current:   weather.Current{Temperature: 24.5, WindSpeed: 11, Time: "2024-05-01T13:15"},
			Condition: weather.ConditionCloudy,
			Hour:      &hours[1],
		},
		Days: days,
		Day:  weather.DayView{Index: 0, Day: days[0], Hours: hours},
	}
}

func TestState_Initial(t *testing.T) {
	p := NewState().Page()

	if p.Panel != PanelEmpty || p.Loading || p.Forecast != nil {
		t.Fatalf("unexpected initial page: %+v", p)
	}
	if p.Units.Mode != weather.ModeMetric || p.Units.SwitchLabel != "Switch to Imperial" {
		t.Errorf("unexpected initial units: %+v", p.Units)
	}
}

func TestState_RenderSequence(t *testing.T) {
	s := NewState()

	s.ShowLoading()
	if !s.Page().Loading {
		t.Fatal("expected loading")
	}

	if err := s.ShowForecast(sampleView()); err != nil {
		t.Fatalf("ShowForecast failed: %v", err)
	}
	s.HideLoading()

	p := s.Page()
	if p.Loading {
		t.Error("expected loading hidden")
	}
	if p.Panel != PanelResult || p.Query != "Amman" {
		t.Errorf("unexpected page: panel=%s query=%s", p.Panel, p.Query)
	}
	if p.Forecast == nil || len(p.Forecast.Days) != 2 {
		t.Fatalf("forecast not recorded: %+v", p.Forecast)
	}
	if p.Version != 3 {
		t.Errorf("expected version 3, got %d", p.Version)
	}

	next := weather.DayView{Index: 1, Day: p.Forecast.Days[1]}
	if err := s.ShowDay(next); err != nil {
		t.Fatalf("ShowDay failed: %v", err)
	}
	if got := s.Page().Forecast.Day.Index; got != 1 {
		t.Errorf("expected selected day 1, got %d", got)
	}
	if p.Forecast.Day.Index != 0 {
		t.Error("earlier page copy was mutated")
	}
}

func TestState_Panels(t *testing.T) {
	s := NewState()
	s.ShowForecast(sampleView())

	s.ShowNoResults("Atlantis")
	p := s.Page()
	if p.Panel != PanelNoResults || p.Query != "Atlantis" {
		t.Errorf("unexpected no-results page: %+v", p)
	}

	s.ShowError(errors.New("boom"))
	p = s.Page()
	if p.Panel != PanelError || p.Error != genericError || p.Detail != "boom" {
		t.Errorf("unexpected error page: %+v", p)
	}

	s.ShowForecast(sampleView())
	if p := s.Page(); p.Error != "" || p.Detail != "" {
		t.Errorf("error not cleared: %+v", p)
	}
}

func TestState_ShowDayWithoutForecast(t *testing.T) {
	if err := NewState().ShowDay(weather.DayView{}); err == nil {
		t.Error("expected error")
	}
}

func TestState_ShowUnits(t *testing.T) {
	s := NewState()
	s.ShowUnits(weather.MetricUnits().Toggle(weather.CategoryWind))

	u := s.Page().Units
	if u.Mode != weather.ModeMixed || u.SwitchLabel != "Custom units" {
		t.Errorf("unexpected units view: %+v", u)
	}
	if u.Wind != "imperial" || u.WindSymbol != "mph" || u.TemperatureSymbol != "°C" {
		t.Errorf("unexpected units view: %+v", u)
	}
}

func TestState_PageJSON(t *testing.T) {
	s := NewState()
	s.ShowForecast(sampleView())

	data, err := json.Marshal(s.Page())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, want := range []string{`"panel":"result"`, `"switchLabel":"Switch to Imperial"`, `"label":"1 PM"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %s in %s", want, data)
		}
	}
}

func TestTerminal_Forecast(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	if err := term.ShowForecast(sampleView()); err != nil {
		t.Fatalf("ShowForecast failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Amman, Jordan", "Wednesday", "Thursday", "12 AM", "1 PM", "°C"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTerminal_Panels(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.ShowNoResults("Atlantis")
	term.ShowError(errors.New("upstream down"))
	term.ShowUnits(weather.ImperialUnits())

	out := buf.String()
	for _, want := range []string{`"Atlantis"`, genericError, "upstream down", "Switch to Metric", "°F"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestTerminal_WriteErrorPropagates(t *testing.T) {
	term := NewTerminal(failingWriter{})
	if err := term.ShowForecast(sampleView()); err == nil {
		t.Error("expected write error")
	}
}
