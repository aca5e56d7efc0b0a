package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/oseme/esusu/internal/adapter/http"
	"github.com/oseme/esusu/internal/adapter/http/handler"
	"github.com/oseme/esusu/internal/adapter/http/middleware"
	postgresRepo "github.com/oseme/esusu/internal/adapter/repository/postgres"
	redisRepo "github.com/oseme/esusu/internal/adapter/repository/redis"
	"github.com/oseme/esusu/internal/infrastructure/auth"
	"github.com/oseme/esusu/internal/infrastructure/config"
	"github.com/oseme/esusu/internal/infrastructure/logger"
	"github.com/oseme/esusu/internal/infrastructure/postgres"
	"github.com/oseme/esusu/internal/infrastructure/redis"
	"github.com/oseme/esusu/internal/infrastructure/scheduler"
	"github.com/oseme/esusu/internal/usecase"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	fundRepo := postgresRepo.NewFundRepository(pool)
	policyRepo := postgresRepo.NewPolicyRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	depositRepo := postgresRepo.NewDepositRepository(pool)
	notificationRepo := postgresRepo.NewNotificationRepository(pool)
	activityRepo := postgresRepo.NewActivityRepository(pool)
	memberRepo := postgresRepo.NewMemberRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)
	clock := usecase.SystemClock{}

	// Use cases
	policyUC := usecase.NewPolicyUseCase(txManager, policyRepo, depositRepo, activityRepo, idGen, clock, cache)
	fundUC := usecase.NewFundUseCase(txManager, fundRepo, activityRepo, idGen, clock)
	transferUC := usecase.NewTransferUseCase(txManager, fundRepo, transactionRepo, activityRepo, idGen, clock, retrier)
	depositUC := usecase.NewDepositUseCase(txManager, depositRepo, fundRepo, policyRepo, activityRepo, notificationRepo, idGen, clock)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, depositRepo, memberRepo, policyRepo, idGen, clock)
	memberUC := usecase.NewMemberUseCase(memberRepo, activityRepo, clock)
	activityUC := usecase.NewActivityUseCase(activityRepo)
	ledgerUC := usecase.NewLedgerUseCase(fundRepo, depositRepo)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PolicyHandler:       handler.NewPolicyHandler(policyUC),
		FundHandler:         handler.NewFundHandler(fundUC),
		TransferHandler:     handler.NewTransferHandler(transferUC),
		DepositHandler:      handler.NewDepositHandler(depositUC),
		NotificationHandler: handler.NewNotificationHandler(notificationUC),
		MemberHandler:       handler.NewMemberHandler(memberUC),
		ActivityHandler:     handler.NewActivityHandler(activityUC),
		LedgerHandler:       handler.NewLedgerHandler(ledgerUC),
		HealthHandler:       handler.NewHealthHandler(pool, redisClient),
		JWTManager:          jwtManager,
		IdempotencyStore:    idempotencyStore,
		RateLimiter:         middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		Logger:              appLogger,
	})

	var reminderScheduler *scheduler.Scheduler
	if cfg.SchedulerEnabled {
		reminderScheduler = scheduler.New(notificationUC, appLogger)
		if err := reminderScheduler.Register(cfg.ReminderCron); err != nil {
			log.Fatal().Err(err).Str("spec", cfg.ReminderCron).Msg("invalid reminder cron spec")
		}
		reminderScheduler.Start()
		log.Info().Str("spec", cfg.ReminderCron).Msg("reminder scheduler started")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	if reminderScheduler != nil {
		reminderScheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
