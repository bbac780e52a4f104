// cmd/inventory-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"inventory-service/internal/common/auth"
	"inventory-service/internal/common/config"
	"inventory-service/internal/common/database"
	"inventory-service/internal/common/logger"
	"inventory-service/internal/common/metrics"
	"inventory-service/internal/common/observability"
	"inventory-service/internal/handlers"
	"inventory-service/internal/schemas"
	"inventory-service/internal/store"
	"inventory-service/internal/validation"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()

	if err := run(cfg, zapLog); err != nil {
		zapLog.Error("inventory service stopped with error", zap.Error(err))
		_ = zapLog.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, zapLog *zap.Logger) error {
	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting inventory service...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err := retryWithBackoff(ctx, func() error {
		var err error
		if pg == nil {
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		return err
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	clk := clock.New()

	version, err := database.NewMigrator(pg.GetDB(), clk, log).
		Up(ctx, database.Migrations(cfg.Database.MigrationsPath))
	if err != nil {
		return err
	}
	metrics.SchemaVersion.Set(float64(version))
	zapLog.Info("Database schema up to date", zap.Int("version", version))

	registry, err := schemas.NewRegistry()
	if err != nil {
		return fmt.Errorf("schema registry: %w", err)
	}

	router := handlers.NewRouter(handlers.Dependencies{
		Store:         store.NewPostgresStore(pg.GetDB(), clk, log),
		Registry:      registry,
		Validators:    validation.NewValidators(registry, cfg.Validation.Limits()),
		Resolver:      auth.NewIdentityClient(cfg.Identity.ServiceDomain, cfg.Identity.TimeoutDuration()),
		Logger:        log,
		Observability: obs,
		Clients:       cfg.CORS.Clients,
		MaxBodyBytes:  cfg.Server.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zapLog.Info("HTTP server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// --- Graceful Shutdown ---
	g.Go(func() error {
		<-gctx.Done()
		zapLog.Info("Shutdown signal received, draining requests...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	zapLog.Info("Inventory service stopped gracefully")
	return nil
}
