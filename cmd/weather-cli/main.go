package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/i474232898/weather-widget/internal/config"
	"github.com/i474232898/weather-widget/internal/store"
	"github.com/i474232898/weather-widget/internal/view"
	"github.com/i474232898/weather-widget/internal/weather"
	"github.com/i474232898/weather-widget/internal/weather/providers"
)

const prefsClient = "cli"

func main() {
	city := flag.String("city", "", "city to look up")
	toggle := flag.String("toggle", "", "comma-separated unit categories to flip (temperature, wind, precipitation)")
	switchAll := flag.Bool("switch", false, "switch every unit between metric and imperial")
	day := flag.Int("day", 0, "index of the day whose hours are shown")
	verbose := flag.Bool("v", false, "log fetch progress")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(*city, *toggle, *switchAll, *day); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(city, toggle string, switchAll bool, day int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var prefStore store.Store = store.NewMemoryStore()
	if cfg.PreferencesFile != "" {
		fs, err := store.NewFileStore(cfg.PreferencesFile)
		if err != nil {
			return fmt.Errorf("failed to open preferences: %w", err)
		}
		prefStore = fs
	}

	httpCfg := providers.DefaultHTTPConfig(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.HTTPMaxRetries)
	svc := weather.NewService(
		providers.NewGeocoder(httpCfg, providers.GeocoderOptions{
			BaseURL:      cfg.GeocodingURL,
			GoogleAPIKey: cfg.GoogleGeocoderAPIKey,
		}),
		providers.NewOpenMeteoProvider(httpCfg, cfg.ForecastURL),
		store.NewPreferences(prefStore, prefsClient),
		view.NewTerminal(os.Stdout),
		weather.Latency{Geocode: cfg.GeocodeDelay, Forecast: cfg.ForecastDelay},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, name := range strings.Split(toggle, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c, err := weather.ParseCategory(name)
		if err != nil {
			return err
		}
		if err := svc.ToggleUnit(ctx, c); err != nil {
			return err
		}
	}
	if switchAll {
		if err := svc.SwitchUnits(ctx); err != nil {
			return err
		}
	}

	if strings.TrimSpace(city) == "" {
		if toggle != "" || switchAll {
			return nil
		}
		return errors.New("usage: weather-cli -city <name> [-toggle temperature,wind] [-switch] [-day n]")
	}

	if err := svc.Search(ctx, city); err != nil {
		return err
	}
	if day > 0 {
		return svc.SelectDay(day)
	}
	return nil
}
