package main

//
//  @title           stockcharts API
//  @version         1.0
//  @description     Daily stock series loading, indicators and chart rendering.
//  @termsOfService  https://github.com/guttosm/stockcharts
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/stockcharts
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        charts
//  @tag.description Rendered chart artifacts
//
//  @tag.name        series
//  @tag.description Price series with derived indicators
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/stockcharts/config"
	_ "github.com/guttosm/stockcharts/docs" // swagger docs
	"github.com/guttosm/stockcharts/internal/app"
	"github.com/guttosm/stockcharts/internal/ingestion"
	"github.com/guttosm/stockcharts/internal/logger"
	"github.com/guttosm/stockcharts/internal/service"
)

// startServer builds the HTTP server for the given router.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance, not listening yet.
func startServer(router http.Handler, port string) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// serve runs the server until ctx is canceled or the listener fails, then
// shuts it down.
//
// Behavior:
//   - One goroutine listens; http.ErrServerClosed counts as a clean stop.
//   - The other waits for ctx (or a listener failure) and calls
//     gracefulShutdown.
//
// Returns:
//   - error: the listener or shutdown error, nil on a clean stop.
func serve(ctx context.Context, server *http.Server, cleanup func()) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.L().Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return gracefulShutdown(server, cleanup)
	})

	return g.Wait()
}

// gracefulShutdown terminates the HTTP server and cleans up resources.
//
// Parameters:
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources.
func gracefulShutdown(server *http.Server, cleanup func()) error {
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	cleanup()
	if err != nil {
		return err
	}
	logger.L().Info().Msg("server exited gracefully")
	return nil
}

// render writes every chart once and logs the artifacts.
//
// A DataLoadError is logged with its remedy before being returned.
func render(ctx context.Context, svc service.ChartService) error {
	lg := logger.Component("render")
	start := time.Now()

	arts, err := svc.RenderAll(ctx)
	if err != nil {
		var dle *ingestion.DataLoadError
		if errors.As(err, &dle) {
			lg.Error().Err(dle.Err).Str("source", dle.Source).Str("remedy", dle.Remedy()).Msg("could not load data")
		}
		return err
	}

	for _, a := range arts {
		lg.Info().Str("kind", a.Kind).Str("path", a.Path).Msg("artifact")
	}
	lg.Info().Int("count", len(arts)).Dur("elapsed", time.Since(start)).Msg("render completed")
	return nil
}

// main is the entry point of the stockcharts application.
//
// Modes (selected via APP_MODE):
//   - render: loads the configured series once and writes every chart into OUTPUT_DIR.
//   - api:    starts the REST API that renders charts and series on demand.
func main() {
	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.AppConfig
	switch cfg.Mode {
	case "render":
		logger.L().Info().Str("source", cfg.Source.Kind).Msg("rendering charts")

		svc, err := app.NewChartService(cfg)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}
		if err := render(ctx, svc); err != nil {
			logger.L().Fatal().Err(err).Msg("render failed")
		}

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		if err := serve(ctx, startServer(router, cfg.Server.Port), cleanup); err != nil {
			logger.L().Fatal().Err(err).Msg("server failed")
		}

	default:
		logger.L().Fatal().Str("mode", cfg.Mode).Msg("unknown mode")
	}
}
