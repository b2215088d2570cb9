package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/i474232898/weather-widget/internal/weather"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	faintStyle = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	selStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Terminal is a weather.Renderer that prints to a terminal.
type Terminal struct {
	w     io.Writer
	units weather.Units
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w, units: weather.MetricUnits()}
}

func (t *Terminal) ShowLoading() {
	fmt.Fprintln(t.w, faintStyle.Render("Loading…"))
}

func (t *Terminal) HideLoading() {}

func (t *Terminal) ShowNoResults(query string) {
	fmt.Fprintln(t.w, warnStyle.Render(fmt.Sprintf("No results found for %q.", query)))
}

func (t *Terminal) ShowError(err error) {
	fmt.Fprintln(t.w, errStyle.Render(genericError))
	if err != nil {
		fmt.Fprintln(t.w, faintStyle.Render(err.Error()))
	}
}

func (t *Terminal) ShowUnits(u weather.Units) {
	t.units = u
	fmt.Fprintln(t.w, faintStyle.Render(fmt.Sprintf("Units: %s (%s, %s, %s) · %s",
		u.Mode(), u.TemperatureSymbol(), u.WindSymbol(), u.PrecipitationSymbol(), u.SwitchLabel())))
}

func (t *Terminal) ShowForecast(v weather.ForecastView) error {
	u := v.Units

	header := titleStyle.Render(fmt.Sprintf("%s, %s", v.Place.Name, v.Place.Country))
	current := fmt.Sprintf("%.0f%s  %s\nWind %.0f %s",
		v.Current.Temperature, u.TemperatureSymbol(), v.Current.Condition,
		v.Current.WindSpeed, u.WindSymbol())
	if h := v.Current.Hour; h != nil {
		current += fmt.Sprintf("\nFeels like %.0f%s · Humidity %.0f%% · Precipitation %.1f %s",
			h.ApparentTemperature, u.TemperatureSymbol(), h.RelativeHumidity,
			h.Precipitation, u.PrecipitationSymbol())
	}

	days := make([]string, 0, len(v.Days))
	for i, d := range v.Days {
		line := fmt.Sprintf("%-9s %3.0f / %3.0f%s  %s", d.Weekday, d.TemperatureMin, d.TemperatureMax, u.TemperatureSymbol(), d.Condition)
		if i == v.Day.Index {
			line = selStyle.Render(line)
		}
		days = append(days, line)
	}

	out := lipgloss.JoinVertical(lipgloss.Left,
		header,
		boxStyle.Render(current),
		boxStyle.Render(strings.Join(days, "\n")),
	)
	if _, err := fmt.Fprintln(t.w, out); err != nil {
		return err
	}
	return t.ShowDay(v.Day)
}

func (t *Terminal) ShowDay(v weather.DayView) error {
	if len(v.Hours) == 0 {
		_, err := fmt.Fprintln(t.w, faintStyle.Render(fmt.Sprintf("No hourly data for %s.", v.Day.Key)))
		return err
	}

	rows := make([]string, 0, len(v.Hours))
	for _, h := range v.Hours {
		rows = append(rows, fmt.Sprintf("%5s  %4.0f%s  %-7s %4.1f %s",
			h.Label, h.Temperature, t.units.TemperatureSymbol(), h.Condition,
			h.Precipitation, t.units.PrecipitationSymbol()))
	}

	title := titleStyle.Render(fmt.Sprintf("%s %s", v.Day.Weekday, v.Day.Key))
	_, err := fmt.Fprintln(t.w, lipgloss.JoinVertical(lipgloss.Left, title, boxStyle.Render(strings.Join(rows, "\n"))))
	return err
}

var _ weather.Renderer = (*Terminal)(nil)
