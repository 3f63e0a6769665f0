// Package app wires configuration, providers, and services into a runnable
// HTTP server.
package app

import (
	"fmt"
	"net/http"

	"github.com/panjf2000/ants/v2"

	"github.com/matchscreener/matchscreener/external/footballdata"
	"github.com/matchscreener/matchscreener/external/smarkets"
	"github.com/matchscreener/matchscreener/internal/config"
	"github.com/matchscreener/matchscreener/internal/infrastructure/dataset"
	"github.com/matchscreener/matchscreener/internal/interfaces/httpapi"
	"github.com/matchscreener/matchscreener/internal/platform/logging"
	"github.com/matchscreener/matchscreener/internal/platform/resilience"
	"github.com/matchscreener/matchscreener/internal/usecase"
)

// Services bundles the wired use cases plus the worker pool they share.
type Services struct {
	Insights *usecase.InsightService
	Stats    *usecase.StatsService
	Refresh  *usecase.RefreshService

	pool *ants.Pool
}

// BuildServices constructs the dataset store, the external providers, and
// the services on top of them.
func BuildServices(cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	store := dataset.NewStore(cfg.DataPath, dataset.NewMemoryCache(), logger)

	markets := smarkets.NewClient(smarkets.ClientConfig{
		BaseURL:    cfg.SmarketsBaseURL,
		APIKey:     cfg.SmarketsAPIKey,
		Timeout:    cfg.SmarketsTimeout,
		MaxRetries: cfg.SmarketsMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SmarketsCircuitEnabled,
			FailureThreshold: cfg.SmarketsCircuitFailureCount,
			OpenTimeout:      cfg.SmarketsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SmarketsCircuitHalfOpenMaxReq,
		},
	})

	feeds := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL: cfg.FootballDataBaseURL,
		Timeout: cfg.FootballDataTimeout,
		Logger:  logger,
	})

	pool, err := ants.NewPool(cfg.InsightWorkers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	return &Services{
		Insights: usecase.NewInsightService(markets, store, pool, logger),
		Stats:    usecase.NewStatsService(store),
		Refresh:  usecase.NewRefreshService(feeds, store, logger),
		pool:     pool,
	}, nil
}

// Close releases the worker pool.
func (s *Services) Close() {
	if s.pool != nil {
		s.pool.Release()
	}
}

func NewHTTPServer(cfg config.Config, svcs *Services, logger *logging.Logger) (*http.Server, error) {
	if svcs == nil {
		return nil, fmt.Errorf("services are required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	handler := httpapi.NewHandler(svcs.Insights, svcs.Stats, svcs.Refresh, cfg.InsightsTTL, logger)
	router := httpapi.NewRouter(handler, cfg.AdminToken, cfg.CORSAllowedOrigins, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
