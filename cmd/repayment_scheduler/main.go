package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/services"
	"github.com/SscSPs/repayment_tracker/internal/middleware"
	"github.com/SscSPs/repayment_tracker/internal/platform/config"
	"github.com/SscSPs/repayment_tracker/internal/repositories/cache"
	"github.com/SscSPs/repayment_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/repayment_tracker/pkg/database"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const sweepTimeout = 10 * time.Minute

// The scheduler moves Future entries past their demand date to Overdue on a cron schedule.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryProvider(dbPool)
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.CloseRedisClient(redisClient)
		repos.SummaryCache = cache.NewRedisSummaryCache(redisClient, cfg.SummaryCacheTTL)
		repos.Locker = cache.NewRedisLedgerLocker(redisClient, cfg.LedgerLockTTL, cfg.LedgerLockRetries, cfg.LedgerLockBackoff)
	}

	statusService := services.NewServiceContainer(cfg, repos).Status

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.BusinessLocation),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	_, err = c.AddFunc(cfg.OverdueSweepSchedule, func() {
		runLogger := logger.With(slog.String("run_id", uuid.NewString()), slog.String("job", "overdue_sweep"))
		runCtx, cancel := context.WithTimeout(middleware.WithLogger(ctx, runLogger), sweepTimeout)
		defer cancel()

		result, err := statusService.SweepOverdue(runCtx, time.Now())
		if err != nil {
			runLogger.Error("Overdue sweep failed", slog.String("error", err.Error()))
			return
		}
		runLogger.Info("Overdue sweep finished",
			slog.Int("candidates", result.Candidates),
			slog.Int("updated", result.Updated),
			slog.Int("skipped", result.Skipped),
			slog.Int("failed", result.Failed))
	})
	if err != nil {
		logger.Error("Invalid overdue sweep schedule", slog.String("schedule", cfg.OverdueSweepSchedule), slog.String("error", err.Error()))
		os.Exit(1)
	}

	c.Start()
	logger.Info("Scheduler started", slog.String("schedule", cfg.OverdueSweepSchedule), slog.String("location", cfg.BusinessLocation.String()))

	<-ctx.Done()
	logger.Info("Stopping scheduler")
	<-c.Stop().Done()
}
