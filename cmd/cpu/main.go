package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"main/internal/application/service/execution"
	"main/internal/application/service/positions"
	"main/internal/config"
	"main/internal/infrastructure/broker"
	"main/internal/infrastructure/redislock"
	"main/internal/infrastructure/redisstore"
	"main/internal/infrastructure/schedules"
	"main/internal/infrastructure/users"
	infrahttp "main/internal/interfaces/http"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	userRepo, err := users.NewRepository(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatalf("failed to init user directory: %v", err)
	}
	defer userRepo.Close()

	scheduleRepo, err := schedules.NewRepository(cfg.Postgres.DSN)
	if err != nil {
		logger.Fatalf("failed to init schedules repo: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	quoteCache := redisstore.NewQuoteCache(redisClient)
	positionStore := redisstore.NewPositionStore(redisClient)
	locker := redislock.New(redisClient)
	ledger := positions.NewService(positionStore)

	amqpConn, err := amqp.Dial(cfg.AMQP.URL)
	if err != nil {
		logger.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer amqpConn.Close()

	publisher, err := broker.NewPublisher(amqpConn, cfg.AMQP, logger)
	if err != nil {
		logger.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	pipeline := execution.NewService(execution.Config{
		ProcessingLockAcquire: cfg.Locks.ProcessingAcquire,
		ProcessingLockExpiry:  cfg.Locks.ProcessingExpiry,
		PositionsLockAcquire:  cfg.Locks.PositionsAcquire,
		PositionsLockExpiry:   cfg.Locks.PositionsExpiry,
	}, userRepo, quoteCache, locker, ledger, publisher, logger)

	consumer, err := broker.NewConsumer(cfg.AMQP, pipeline, logger)
	if err != nil {
		logger.Fatalf("failed to init consumer: %v", err)
	}

	registry := users.NewRegistry()
	dispatcher := positions.NewDispatcher(positions.DispatcherConfig{
		OfficeID:    cfg.AMQP.OfficeID,
		Interval:    cfg.Dispatch.Interval,
		LockAcquire: cfg.Locks.PositionsAcquire,
		LockExpiry:  cfg.Locks.PositionsExpiry,
	}, registry, locker, ledger, publisher, logger)

	if active, err := scheduleRepo.Active(ctx); err != nil {
		logger.WithError(err).Warn("could not load trading schedules")
	} else {
		logger.WithField("active_schedules", len(active)).Info("trading schedule loaded")
	}

	handler := infrahttp.NewHandler(userRepo, scheduleRepo, locker, ledger, cfg.Locks, logger)
	server := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: handler,
	}

	if err := consumer.Start(ctx); err != nil {
		logger.Fatalf("failed to start consumer: %v", err)
	}
	defer consumer.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return registry.Run(gctx, userRepo, cfg.AMQP.OfficeID, cfg.Dispatch.RegistryRefresh, logger.WithField("component", "registry"))
	})
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	g.Go(func() error {
		logger.Infof("HTTP server listening on %s", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("shutdown error: %v", err)
	}
	logger.Info("trade processor stopped")
}
