package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gonum.org/v1/plot/vg"

	"github.com/guttosm/stockcharts/config"
	"github.com/guttosm/stockcharts/internal/api"
	"github.com/guttosm/stockcharts/internal/chart"
	"github.com/guttosm/stockcharts/internal/ingestion"
	"github.com/guttosm/stockcharts/internal/service"
)

// NewChartService wires the configured source and chart options into a
// ChartService. Both run modes start here.
//
// Parameters:
//   - cfg (config.Config): The application configuration.
//
// Returns:
//   - service.ChartService: ready to load and render.
//   - error: if the source cannot be configured.
func NewChartService(cfg config.Config) (service.ChartService, error) {
	src, err := sourceOpener(cfg)
	if err != nil {
		return nil, err
	}
	return service.NewChartService(src, serviceConfig(cfg)), nil
}

func serviceConfig(cfg config.Config) service.Config {
	c := cfg.Charts
	opts := chart.DefaultOptions()
	opts.Width = vg.Length(c.WidthInches) * vg.Inch
	opts.Height = vg.Length(c.HeightInches) * vg.Inch
	opts.DPI = c.DPI
	opts.MAWindows = c.MAWindows
	opts.InteractiveMA = c.InteractiveMA
	opts.VolatilityWindow = c.VolatilityWindow
	opts.Bins = c.Bins

	return service.Config{
		OutputDir: cfg.Output.Dir,
		Prefix:    cfg.Output.Prefix,
		Chart:     opts,
		Sample: ingestion.SampleConfig{
			Symbol:    "SAMPLE",
			Start:     cfg.Sample.Start,
			End:       cfg.Sample.End,
			Seed:      cfg.Sample.Seed,
			BasePrice: cfg.Sample.BasePrice,
		},
		VolatilityWindow: c.VolatilityWindow,
	}
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the data source and chart service via NewChartService().
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to release resources on shutdown.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	svc, err := NewChartService(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize chart service: %w", err)
	}

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc, cfg.Charts.InteractiveMA)

	// Setup Gin router with routes
	router := api.NewRouter(handler, api.DefaultRouterConfig())

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(func(ctx context.Context) error {
		_, err := svc.Frame(ctx)
		return err
	})
	healthHandler.Register(router)

	// Nothing is held open between requests
	cleanup := func() {}

	return router, cleanup, nil
}
