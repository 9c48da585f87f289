package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/fpl-superlatives/external/fpl"
	"github.com/riskibarqy/fpl-superlatives/internal/config"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/season"
	repocache "github.com/riskibarqy/fpl-superlatives/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fpl-superlatives/internal/infrastructure/repository/jsonfile"
	"github.com/riskibarqy/fpl-superlatives/internal/observability"
	"github.com/riskibarqy/fpl-superlatives/internal/platform/cache"
	"github.com/riskibarqy/fpl-superlatives/internal/platform/logging"
	"github.com/riskibarqy/fpl-superlatives/internal/platform/resilience"
	"github.com/riskibarqy/fpl-superlatives/internal/usecase"
)

// App holds the wired use cases behind the CLI commands.
type App struct {
	Ingestion *usecase.IngestionService
	Analysis  *usecase.AnalysisService

	logger       *logging.Logger
	stopProfiler func() error
	stopTracing  func(context.Context) error
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	stopTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		_ = stopTracing(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}

	client := fpl.NewClient(fpl.ClientConfig{
		BaseURL:    cfg.FPLBaseURL,
		Timeout:    cfg.FPLTimeout,
		MaxRetries: cfg.FPLMaxRetries,
		RateLimit:  cfg.FPLRateLimit,
		RateBurst:  cfg.FPLRateBurst,
		CacheTTL:   cfg.FPLCacheTTL,
		Logger:     logger.With("component", "fpl_client"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})
	repo := repocache.NewSeasonRepository(
		jsonfile.NewSnapshotRepository(cfg.DataDir),
		cache.NewStore[season.Snapshot](0),
	)

	engine := usecase.EngineConfig{
		Rules:      cfg.Rules,
		MaxWorkers: cfg.SimWorkers,
	}
	simulation := usecase.NewSimulationService(engine, logger)
	statistics := usecase.NewStatisticsService(engine, logger)

	return &App{
		Ingestion:    usecase.NewIngestionService(client, repo, cfg.FetchWorkers, logger),
		Analysis:     usecase.NewAnalysisService(repo, simulation, statistics, logger),
		logger:       logger,
		stopProfiler: stopProfiler,
		stopTracing:  stopTracing,
	}, nil
}

// Close flushes telemetry and stops profiling.
func (a *App) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.stopProfiler != nil {
		if err := a.stopProfiler(); err != nil {
			errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
		}
	}
	if a.stopTracing != nil {
		if err := a.stopTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown uptrace: %w", err))
		}
	}
	return errors.Join(errs...)
}
