package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/calebmartin/scorestream/external/espn"
	"github.com/calebmartin/scorestream/internal/config"
	"github.com/calebmartin/scorestream/internal/infrastructure/settings"
	"github.com/calebmartin/scorestream/internal/interfaces/httpapi"
	"github.com/calebmartin/scorestream/internal/metrics"
	"github.com/calebmartin/scorestream/internal/platform/cache"
	"github.com/calebmartin/scorestream/internal/platform/logging"
	"github.com/calebmartin/scorestream/internal/platform/resilience"
	"github.com/calebmartin/scorestream/internal/usecase"
)

// App bundles the wired HTTP server with the background refresh loop so
// main can start and stop them in the right order.
type App struct {
	Server  *http.Server
	Refresh *usecase.RefreshService
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger, httpLogger *slog.Logger) (*App, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	settingsStore := settings.NewStore(cfg.SettingsPath, logger)
	persisted, err := settingsStore.Load(ctx)
	if err != nil {
		// Corrupt settings should not keep the service down.
		logger.WarnContext(ctx, "settings unreadable, continuing with defaults", "path", cfg.SettingsPath, "error", err)
	}

	feedClient := espn.NewClient(espn.ClientConfig{
		BaseURL: cfg.ESPNBaseURL,
		Timeout: cfg.ESPNTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMax,
		},
	})

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.NewRecorder()
	}

	scoreboardCfg := usecase.ScoreboardServiceConfig{
		Fetcher: feedClient,
		Cache:   cacheStore,
		Logger:  logger,
	}
	if recorder != nil {
		scoreboardCfg.Metrics = recorder
	}
	scoreboardSvc := usecase.NewScoreboardService(scoreboardCfg)

	selectionSvc := usecase.NewSelectionService(settingsStore, logger, persisted.EnabledLeagues)

	interval := persisted.RefreshInterval()
	if interval <= 0 {
		interval = cfg.RefreshInterval
	}
	refreshCfg := usecase.RefreshServiceConfig{
		Scoreboard: scoreboardSvc,
		Selector:   selectionSvc,
		Persister:  settingsStore,
		Logger:     logger,
		Interval:   interval,
	}
	if recorder != nil {
		refreshCfg.Metrics = recorder
	}
	refreshSvc := usecase.NewRefreshService(refreshCfg)

	handler := httpapi.NewHandler(refreshSvc, selectionSvc, httpLogger)

	var requestMetrics httpapi.RequestMetrics
	var metricsHandler http.Handler
	if recorder != nil {
		requestMetrics = recorder
		metricsHandler = recorder.Handler()
	}
	router := httpapi.NewRouter(handler, httpLogger, requestMetrics, metricsHandler, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{Server: server, Refresh: refreshSvc}, nil
}
