package weather

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveUnits_DefaultsToMetric(t *testing.T) {
	tests := []struct {
		name  string
		prefs map[string]string
		want  Units
	}{
		{name: "nil map", prefs: nil, want: MetricUnits()},
		{name: "empty map", prefs: map[string]string{}, want: MetricUnits()},
		{
			name:  "unknown value",
			prefs: map[string]string{"Temperature": "kelvin"},
			want:  MetricUnits(),
		},
		{
			name:  "one axis imperial",
			prefs: map[string]string{"Wind Speed": "imperial"},
			want:  Units{Temperature: Celsius, Wind: MilesPerHour, Precipitation: Millimetres},
		},
		{
			name: "all imperial",
			prefs: map[string]string{
				"Temperature":   "imperial",
				"Wind Speed":    "imperial",
				"Precipitation": "imperial",
			},
			want: ImperialUnits(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveUnits(tt.prefs); got != tt.want {
				t.Errorf("ResolveUnits(%v) = %+v, want %+v", tt.prefs, got, tt.want)
			}
		})
	}
}

func TestResolveUnits_Idempotent(t *testing.T) {
	prefs := map[string]string{"Precipitation": "imperial"}

	first := ResolveUnits(prefs)
	second := ResolveUnits(prefs)
	if first != second {
		t.Errorf("resolving twice differs: %+v vs %+v", first, second)
	}
	if again := ResolveUnits(first.Preferences()); again != first {
		t.Errorf("round trip through Preferences changed units: %+v vs %+v", again, first)
	}
}

func TestPreferences(t *testing.T) {
	u := MetricUnits().Toggle(CategoryTemperature)
	want := map[string]string{
		"Temperature":   "imperial",
		"Wind Speed":    "metric",
		"Precipitation": "metric",
	}
	if got := u.Preferences(); !reflect.DeepEqual(got, want) {
		t.Errorf("Preferences() = %v, want %v", got, want)
	}
}

func TestModeAndSwitchLabel(t *testing.T) {
	u := MetricUnits()
	if u.Mode() != ModeMetric || u.SwitchLabel() != "Switch to Imperial" {
		t.Fatalf("metric: got %s / %q", u.Mode(), u.SwitchLabel())
	}

	u = u.Toggle(CategoryTemperature)
	if u.Mode() != ModeMixed || u.SwitchLabel() != "Custom units" {
		t.Fatalf("one imperial: got %s / %q", u.Mode(), u.SwitchLabel())
	}

	u = u.Toggle(CategoryWind).Toggle(CategoryPrecipitation)
	if u.Mode() != ModeImperial || u.SwitchLabel() != "Switch to Metric" {
		t.Fatalf("all imperial: got %s / %q", u.Mode(), u.SwitchLabel())
	}
}

func TestSwitchAll(t *testing.T) {
	tests := []struct {
		name string
		from Units
		want Units
	}{
		{name: "metric", from: MetricUnits(), want: ImperialUnits()},
		{name: "imperial", from: ImperialUnits(), want: MetricUnits()},
		{name: "mixed", from: MetricUnits().Toggle(CategoryWind), want: ImperialUnits()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.SwitchAll(); got != tt.want {
				t.Errorf("SwitchAll() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSymbols(t *testing.T) {
	m, i := MetricUnits(), ImperialUnits()
	if m.TemperatureSymbol() != "°C" || i.TemperatureSymbol() != "°F" {
		t.Error("unexpected temperature symbols")
	}
	if m.WindSymbol() != "km/h" || i.WindSymbol() != "mph" {
		t.Error("unexpected wind symbols")
	}
	if m.PrecipitationSymbol() != "mm" || i.PrecipitationSymbol() != "in" {
		t.Error("unexpected precipitation symbols")
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := ParseCategory("wind"); err != nil || c != CategoryWind {
		t.Errorf("ParseCategory(wind) = %q, %v", c, err)
	}
	if _, err := ParseCategory("pressure"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}
