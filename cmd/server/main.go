// Command server runs the referral pipeline API. APP_PROFILE selects the
// configs/<profile>.yaml overlay; SIGINT or SIGTERM drains in-flight
// requests before the store is closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/referral-pipeline/internal/adapters/http"
	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/storage/sqlstore"

	"github.com/jsamuelsen11/referral-pipeline/internal/app"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/config"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/health"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/logging"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/telemetry"
	"github.com/jsamuelsen11/referral-pipeline/internal/ports"
)

const telemetryFlushTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "referral-pipeline: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE must name a config profile (local, test, prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer flushTelemetry(providers, logger)

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, providers.Metrics)
	registerDependencies(injector, cfg, logger)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("wiring server: %w", err)
	}
	store := do.MustInvoke[ports.Store](injector)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("closing store", slog.Any("error", err))
		}
	}()
	do.MustInvoke[ports.HealthRegistry](injector).Register(store)

	logger.Info("store opened",
		slog.String("profile", profile),
		slog.String("driver", cfg.Storage.Driver),
		slog.Bool("atomic", store.Atomic()),
	)

	if err := server.Run(ctx); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		return err
	}
	logger.Info("server drained")
	return nil
}

func flushTelemetry(p *telemetry.Providers, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		logger.Error("flushing telemetry", slog.Any("error", err))
	}
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (ports.Store, error) {
		return openStore(context.Background(), cfg.Storage)
	})

	do.ProvideValue(injector, pipeline.DefaultCatalog())

	do.Provide(injector, func(i do.Injector) (ports.PipelineService, error) {
		store := do.MustInvoke[ports.Store](i)
		catalog := do.MustInvoke[pipeline.Catalog](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewPipelineService(store, catalog, app.PipelineConfig{
			BulkWorkers: cfg.Pipeline.BulkWorkers,
		}, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ReportService, error) {
		store := do.MustInvoke[ports.Store](i)
		catalog := do.MustInvoke[pipeline.Catalog](i)
		rate, err := report.ParseIncomeRate(cfg.Reports.IncomeRate)
		if err != nil {
			return nil, fmt.Errorf("reports.income_rate: %w", err)
		}
		return app.NewReportService(store, store, catalog, app.ReportConfig{
			SignedStage: pipeline.Stage(cfg.Pipeline.SignedStage),
			IncomeRate:  rate,
		}, logger)
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.PipelineHandler, error) {
		return handlers.NewPipelineHandler(do.MustInvoke[ports.PipelineService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ReportHandler, error) {
		return handlers.NewReportHandler(do.MustInvoke[ports.ReportService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		pipelineH := do.MustInvoke[*handlers.PipelineHandler](i)
		reportH := do.MustInvoke[*handlers.ReportHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(pipelineH, reportH, healthH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(requestTimeout(cfg.Server)),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

// openStore selects the storage adapter named by cfg.Driver.
func openStore(ctx context.Context, cfg config.StorageConfig) (ports.Store, error) {
	if cfg.Driver == "memory" {
		return memory.New(), nil
	}
	store, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:          cfg.Driver,
		DSN:             cfg.DSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Driver, err)
	}
	return store, nil
}

// requestTimeout falls back to the write timeout when no per-request
// deadline is configured.
func requestTimeout(cfg config.ServerConfig) time.Duration {
	if cfg.RequestTimeout > 0 {
		return cfg.RequestTimeout
	}
	return cfg.WriteTimeout
}
