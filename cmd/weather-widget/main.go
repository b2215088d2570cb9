package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-widget/internal/api/http"
	"github.com/i474232898/weather-widget/internal/config"
	"github.com/i474232898/weather-widget/internal/scheduler"
	"github.com/i474232898/weather-widget/internal/session"
	"github.com/i474232898/weather-widget/internal/store"
	"github.com/i474232898/weather-widget/internal/weather"
	"github.com/i474232898/weather-widget/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	httpCfg := providers.DefaultHTTPConfig(httpClient, cfg.HTTPMaxRetries)

	// Providers with resilience (backoff + circuit breaker).
	geocoder := providers.NewGeocoder(httpCfg, providers.GeocoderOptions{
		BaseURL:      cfg.GeocodingURL,
		GoogleAPIKey: cfg.GoogleGeocoderAPIKey,
		RateLimit:    cfg.GeocodeRateLimit,
		RateBurst:    cfg.GeocodeRateBurst,
		CacheTTL:     cfg.GeocodeCacheTTL,
	})
	forecasts := providers.NewOpenMeteoProvider(httpCfg, cfg.ForecastURL)

	// Unit preferences outlive sessions.
	var prefStore store.Store = store.NewMemoryStore()
	if cfg.PreferencesFile != "" {
		fs, err := store.NewFileStore(cfg.PreferencesFile)
		if err != nil {
			log.Fatalf("failed to open preferences: %v", err)
		}
		prefStore = fs
	}

	registry := session.NewRegistry(session.Factory{
		Geocoder:  geocoder,
		Forecasts: forecasts,
		Store:     prefStore,
		Latency: weather.Latency{
			Geocode:  cfg.GeocodeDelay,
			Forecast: cfg.ForecastDelay,
		},
	})

	// Scheduler that evicts idle sessions.
	sched := scheduler.New(registry, cfg.SessionReapInterval, cfg.SessionIdleTimeout)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// A search holds the request for both stage delays and both upstream calls.
	writeTimeout := cfg.GeocodeDelay + cfg.ForecastDelay + 2*cfg.HTTPTimeout + 5*time.Second

	app := fiber.New(fiber.Config{
		AppName:               "weather-widget",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          writeTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "weather-widget",
			"sessions": registry.Len(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, registry)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
