package weather

import (
	"fmt"
)

// Category is one independently switchable measurement axis.
type Category string

const (
	CategoryTemperature   Category = "temperature"
	CategoryWind          Category = "wind"
	CategoryPrecipitation Category = "precipitation"
)

// Categories lists every axis in display order.
var Categories = []Category{CategoryTemperature, CategoryWind, CategoryPrecipitation}

// Label is the human-readable name used as the persisted preference key.
func (c Category) Label() string {
	switch c {
	case CategoryTemperature:
		return "Temperature"
	case CategoryWind:
		return "Wind Speed"
	case CategoryPrecipitation:
		return "Precipitation"
	default:
		return string(c)
	}
}

// ParseCategory accepts a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// System is the persisted value of a preference.
type System string

const (
	SystemMetric   System = "metric"
	SystemImperial System = "imperial"
)

// Mode values derived from Units.
const (
	ModeMetric   = "metric"
	ModeImperial = "imperial"
	ModeMixed    = "mixed"
)

type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
)

type WindUnit string

const (
	KilometresPerHour WindUnit = "kmh"
	MilesPerHour      WindUnit = "mph"
)

type PrecipitationUnit string

const (
	Millimetres PrecipitationUnit = "mm"
	Inches      PrecipitationUnit = "inch"
)

// Units is the resolved set of unit choices. The zero value is not valid;
// use MetricUnits or ResolveUnits.
type Units struct {
	Temperature   TemperatureUnit   `json:"temperature"`
	Wind          WindUnit          `json:"wind"`
	Precipitation PrecipitationUnit `json:"precipitation"`
}

// MetricUnits is the default.
func MetricUnits() Units {
	return Units{Temperature: Celsius, Wind: KilometresPerHour, Precipitation: Millimetres}
}

// ImperialUnits has every axis imperial.
func ImperialUnits() Units {
	return Units{Temperature: Fahrenheit, Wind: MilesPerHour, Precipitation: Inches}
}

// ResolveUnits reads a persisted preference map. Absent or unrecognised
// entries resolve to metric.
func ResolveUnits(prefs map[string]string) Units {
	u := MetricUnits()
	for _, c := range Categories {
		if System(prefs[c.Label()]) == SystemImperial {
			u = u.with(c, SystemImperial)
		}
	}
	return u
}

// Preferences is the persisted form of u, keyed by category label.
func (u Units) Preferences() map[string]string {
	prefs := make(map[string]string, len(Categories))
	for _, c := range Categories {
		prefs[c.Label()] = string(u.System(c))
	}
	return prefs
}

// System returns the system selected for one axis.
func (u Units) System(c Category) System {
	var imperial bool
	switch c {
	case CategoryTemperature:
		imperial = u.Temperature == Fahrenheit
	case CategoryWind:
		imperial = u.Wind == MilesPerHour
	case CategoryPrecipitation:
		imperial = u.Precipitation == Inches
	}
	if imperial {
		return SystemImperial
	}
	return SystemMetric
}

func (u Units) with(c Category, s System) Units {
	imperial := s == SystemImperial
	switch c {
	case CategoryTemperature:
		u.Temperature = Celsius
		if imperial {
			u.Temperature = Fahrenheit
		}
	case CategoryWind:
		u.Wind = KilometresPerHour
		if imperial {
			u.Wind = MilesPerHour
		}
	case CategoryPrecipitation:
		u.Precipitation = Millimetres
		if imperial {
			u.Precipitation = Inches
		}
	}
	return u
}

// Toggle flips one axis between metric and imperial.
func (u Units) Toggle(c Category) Units {
	if u.System(c) == SystemImperial {
		return u.with(c, SystemMetric)
	}
	return u.with(c, SystemImperial)
}

// SwitchAll moves every axis to imperial, or to metric when all of them
// already are imperial.
func (u Units) SwitchAll() Units {
	if u.Mode() == ModeImperial {
		return MetricUnits()
	}
	return ImperialUnits()
}

// Mode derives "metric", "imperial" or "mixed". Mixed is never stored.
func (u Units) Mode() string {
	metric, imperial := 0, 0
	for _, c := range Categories {
		if u.System(c) == SystemImperial {
			imperial++
		} else {
			metric++
		}
	}
	switch {
	case imperial == 0:
		return ModeMetric
	case metric == 0:
		return ModeImperial
	default:
		return ModeMixed
	}
}

// SwitchLabel is the caption of the switch-all button.
func (u Units) SwitchLabel() string {
	switch u.Mode() {
	case ModeMetric:
		return "Switch to Imperial"
	case ModeImperial:
		return "Switch to Metric"
	default:
		return "Custom units"
	}
}

func (u Units) TemperatureSymbol() string {
	if u.Temperature == Fahrenheit {
		return "°F"
	}
	return "°C"
}

func (u Units) WindSymbol() string {
	if u.Wind == MilesPerHour {
		return "mph"
	}
	return "km/h"
}

func (u Units) PrecipitationSymbol() string {
	if u.Precipitation == Inches {
		return "in"
	}
	return "mm"
}
