package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ztacole/BacaDong/internal/config"
	"github.com/ztacole/BacaDong/internal/demo"
	http_controllers "github.com/ztacole/BacaDong/internal/http"
	"github.com/ztacole/BacaDong/internal/logging"
	"github.com/ztacole/BacaDong/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if onShutdown != nil {
			onShutdown(context.Background())
		}
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		logging.Info().Str("signal", sig.String()).Dur("timeout", timeout).Msg("Shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Server shutdown failed")
	}

	// Close the pool only after in-flight requests are done with it.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	logging.Info().Msg("Server exiting")
	return nil
}

// NewRouter wires the catalog into the HTTP router.
func NewRouter(app *App, cfg *config.Config, version string) *gin.Engine {
	var covers http_controllers.CoverResolver
	if app.Covers != nil {
		covers = app.Covers
	}

	return http_controllers.NewRouter(http_controllers.RouterConfig{
		Books:           app.Books,
		Categories:      app.Categories,
		Members:         app.Members,
		Catalog:         app.Catalog,
		Covers:          covers,
		Database:        app.DB,
		DefaultMemberID: cfg.Catalog.DefaultMemberID,
		DefaultLimit:    cfg.Catalog.SectionSize,
		Version:         version,
		DemoMiddleware:  demo.NewMiddleware(cfg.Demo.Enabled),
		MetricsEnabled:  true,
	})
}

// Run validates cfg, opens the catalog and serves HTTP until interrupted.
// A catalog that cannot be opened stops startup.
func Run(cfg *config.Config, version string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	app, err := Open(cfg)
	if err != nil {
		return err
	}

	if gin.Mode() != gin.TestMode && cfg.Logging.Level != "debug" && cfg.Logging.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := NewRouter(app, cfg, version)

	ctx, cancel := context.WithCancel(context.Background())
	var stats *scheduler.StatsScheduler
	if cfg.Scheduler.StatsEnabled {
		stats = scheduler.NewStatsScheduler(app.Books, cfg.Scheduler.StatsSchedule)
		if err := stats.Start(ctx); err != nil {
			logging.Warn().Err(err).Msg("Catalog stats scheduler disabled")
			stats = nil
		}
	}

	if cfg.Demo.Enabled {
		logging.Info().Msg("Demo mode enabled: catalog edits are blocked")
	}

	onShutdown := func(ctx context.Context) {
		cancel()
		if stats != nil {
			stats.Stop()
		}
		if err := app.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}

	logging.Info().
		Str("version", version).
		Str("driver", cfg.Database.Driver).
		Int("section_size", cfg.Catalog.SectionSize).
		Msg("BacaDong catalog ready")

	return Serve(router, cfg, onShutdown)
}
