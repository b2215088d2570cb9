package view

import (
	"errors"
	"sync"

	"github.com/i474232898/weather-widget/internal/weather"
)

// Panel names the region currently shown in place of the result.
type Panel string

const (
	PanelEmpty     Panel = "empty"
	PanelResult    Panel = "result"
	PanelNoResults Panel = "no_results"
	PanelError     Panel = "error"
)

const genericError = "Something went wrong. Please try again."

var errNoForecastRegion = errors.New("no forecast rendered to attach the day to")

// UnitsView is the unit switcher region.
type UnitsView struct {
	Mode                string `json:"mode"`
	SwitchLabel         string `json:"switchLabel"`
	Temperature         string `json:"temperature"`
	Wind                string `json:"wind"`
	Precipitation       string `json:"precipitation"`
	TemperatureSymbol   string `json:"temperatureSymbol"`
	WindSymbol          string `json:"windSymbol"`
	PrecipitationSymbol string `json:"precipitationSymbol"`
}

func unitsView(u weather.Units) UnitsView {
	return UnitsView{
		Mode:                u.Mode(),
		SwitchLabel:         u.SwitchLabel(),
		Temperature:         string(u.System(weather.CategoryTemperature)),
		Wind:                string(u.System(weather.CategoryWind)),
		Precipitation:       string(u.System(weather.CategoryPrecipitation)),
		TemperatureSymbol:   u.TemperatureSymbol(),
		WindSymbol:          u.WindSymbol(),
		PrecipitationSymbol: u.PrecipitationSymbol(),
	}
}

// Page is everything a client needs to draw the widget.
type Page struct {
	Version  uint64                `json:"version"`
	Loading  bool                  `json:"loading"`
	Panel    Panel                 `json:"panel"`
	Query    string                `json:"query,omitempty"`
	Error    string                `json:"error,omitempty"`
	Detail   string                `json:"detail,omitempty"`
	Forecast *weather.ForecastView `json:"forecast,omitempty"`
	Units    UnitsView             `json:"units"`
}

// State is a weather.Renderer that keeps the rendered page in memory.
// Rendered values are never mutated in place, so Page copies are safe to
// share.
type State struct {
	mu   sync.RWMutex
	page Page
}

func NewState() *State {
	return &State{
		page: Page{
			Panel: PanelEmpty,
			Units: unitsView(weather.MetricUnits()),
		},
	}
}

// Page returns the current page.
func (s *State) Page() Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

func (s *State) update(f func(p *Page)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.page)
	s.page.Version++
}

func (s *State) ShowLoading() {
	s.update(func(p *Page) { p.Loading = true })
}

func (s *State) HideLoading() {
	s.update(func(p *Page) { p.Loading = false })
}

func (s *State) ShowNoResults(query string) {
	s.update(func(p *Page) {
		p.Panel = PanelNoResults
		p.Query = query
		p.Error, p.Detail = "", ""
	})
}

func (s *State) ShowError(err error) {
	s.update(func(p *Page) {
		p.Panel = PanelError
		p.Error = genericError
		p.Detail = ""
		if err != nil {
			p.Detail = err.Error()
		}
	})
}

func (s *State) ShowForecast(v weather.ForecastView) error {
	s.update(func(p *Page) {
		p.Panel = PanelResult
		p.Query = v.Place.Name
		p.Error, p.Detail = "", ""
		p.Forecast = &v
	})
	return nil
}

func (s *State) ShowDay(v weather.DayView) error {
	var err error
	s.update(func(p *Page) {
		if p.Forecast == nil {
			err = errNoForecastRegion
			return
		}
		fv := *p.Forecast
		fv.Day = v
		p.Forecast = &fv
		p.Panel = PanelResult
	})
	return err
}

func (s *State) ShowUnits(u weather.Units) {
	s.update(func(p *Page) { p.Units = unitsView(u) })
}

var _ weather.Renderer = (*State)(nil)
