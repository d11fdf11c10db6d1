package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/config"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/handler"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/health"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/infra/deliveryrecorder"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/infra/permission"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/infra/presenter"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/infra/repository"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/infra/streak"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/observability"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/observability/logging"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/observability/metrics"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/alarm"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/dispatch"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/engine"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/prompt"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/verify"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	reminderMetrics, err := metrics.NewReminderMetrics()
	if err != nil {
		slog.Error("failed to initialize reminder metrics", slog.String("error", err.Error()))
		return 1
	}

	// Delivery outcome recorder (InfluxDB, or noop when unconfigured)
	recorderCfg := deliveryrecorder.LoadConfig()
	recorder, err := deliveryrecorder.NewRecorder(ctx, recorderCfg)
	if err != nil {
		slog.Error("failed to initialize delivery recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close delivery recorder", slog.String("error", err.Error()))
		}
	}()

	db, err := repository.NewDB(cfg.JournalDBPath)
	if err != nil {
		slog.Error("failed to open journal database", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Warn("failed to close journal database", slog.String("error", err.Error()))
			}
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	reminderRepo := repository.NewReminderRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	checkInRepo := repository.NewCheckInRepository(redisClient)
	ledger := repository.NewDeliveryLedgerRepository(redisClient)

	oracle := permission.NewRuntimeOracle(cfg.ExactWakeupsGranted, cfg.NotificationsGranted)

	var notifyPresenter domain.NotificationPresenter
	if cfg.PushGatewayURL != "" {
		notifyPresenter = presenter.NewPushClient(cfg.PushGatewayURL, cfg.PushMaxRetries)
		slog.Info("push gateway presenter initialized",
			slog.String("url", cfg.PushGatewayURL),
		)
	} else {
		notifyPresenter = presenter.NewLogPresenter()
		slog.Warn("PUSH_GATEWAY_URL not set, notifications will be logged only")
	}

	var streakService domain.StreakService
	if cfg.StreakServiceURL != "" {
		streakService = streak.NewClient(cfg.StreakServiceURL)
	} else {
		slog.Warn("STREAK_SERVICE_URL not set, nudges will not mention streaks")
	}

	prompts := prompt.NewPicker()
	gate := verify.NewGate()
	verifier := verify.NewVerifier(
		entryRepo,
		streakService,
		notifyPresenter,
		prompts,
		gate,
		cfg.Scheduler.VerifyTimeout,
		reminderMetrics,
	)

	dispatcher := dispatch.NewDispatcher(
		reminderRepo,
		goalRepo,
		checkInRepo,
		ledger,
		notifyPresenter,
		oracle,
		verifier,
		prompts,
		reminderMetrics,
		recorder,
	)

	alarms := alarm.NewTimerScheduler(oracle)
	alarms.SetGranularity(cfg.Scheduler.BestEffortGranularity)
	defer alarms.Stop()

	eng := engine.New(
		reminderRepo,
		goalRepo,
		alarms,
		dispatcher,
		cfg.Scheduler.FallbackOffset,
		reminderMetrics,
	)
	alarms.OnFire(eng.HandleFire)

	// Boot-time reconciliation is awaited: schedules must be live before the
	// process reports ready.
	bootResult, err := eng.RescheduleAll(ctx)
	if err != nil {
		slog.Warn("boot reconciliation reported errors", slog.String("error", err.Error()))
	}
	if bootResult != nil {
		slog.Info("boot reconciliation complete",
			slog.Int("reminders_installed", bootResult.RemindersInstalled),
			slog.Int("goals_installed", bootResult.GoalsInstalled),
			slog.Int("failed", bootResult.Failed),
		)
	}

	// Periodic safety-net sweep re-derives all schedules in case a wakeup was
	// lost underneath us.
	sweeper := cron.New()
	sweepSpec := fmt.Sprintf("@every %s", cfg.Scheduler.ReconcileInterval)
	if _, err := sweeper.AddFunc(sweepSpec, func() {
		if _, err := eng.RescheduleAll(context.Background()); err != nil {
			slog.Warn("periodic reconciliation reported errors", slog.String("error", err.Error()))
		}
	}); err != nil {
		slog.Error("failed to schedule reconciliation sweep", slog.String("error", err.Error()))
		return 1
	}
	sweeper.Start()
	defer sweeper.Stop()

	reminderHandler := handler.NewReminderHandler(reminderRepo, eng, cfg.Scheduler.SnoozeDefault)
	goalHandler := handler.NewGoalHandler(goalRepo, eng, dispatcher)
	rescheduleHandler := handler.NewRescheduleHandler(eng)
	permissionHandler := handler.NewPermissionHandler(oracle)

	r := gin.New()
	r.Use(gin.Recovery())

	healthChecker := health.NewChecker(redisClient, db, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/reminders", reminderHandler.HandleCreate)
		v1.GET("/reminders/:id", reminderHandler.HandleGet)
		v1.PUT("/reminders/:id", reminderHandler.HandleUpdate)
		v1.DELETE("/reminders/:id", reminderHandler.HandleDelete)
		v1.POST("/reminders/:id/snooze", reminderHandler.HandleSnooze)

		v1.POST("/goals", goalHandler.HandleCreate)
		v1.GET("/goals/:id", goalHandler.HandleGet)
		v1.PUT("/goals/:id", goalHandler.HandleUpdate)
		v1.DELETE("/goals/:id", goalHandler.HandleDelete)
		v1.POST("/goals/:id/checkin", goalHandler.HandleCheckIn)

		v1.POST("/reschedule", rescheduleHandler.HandleReschedule)
		v1.PUT("/permissions", permissionHandler.HandleUpdate)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Duration("fallback_offset", cfg.Scheduler.FallbackOffset),
			slog.Duration("reconcile_interval", cfg.Scheduler.ReconcileInterval),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		// Drain in-flight fallback checks before tearing down storage.
		if err := gate.Wait(shutdownCtx); err != nil {
			slog.Warn("fallback checks still in flight at shutdown", slog.String("error", err.Error()))
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "reminder-engine"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment: env,
		LogLevel:    config.ParseLogLevel(os.Getenv("LOG_LEVEL")),
	})
}
