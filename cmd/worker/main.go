package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"news_cache/internal/cache"
	"news_cache/internal/config"
	"news_cache/internal/queue"
	"news_cache/internal/service"
	"news_cache/internal/source/mediastack"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if err := cfg.ValidateProvider(); err != nil {
		logger.Error("invalid provider config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := cache.NewSnapshotStore(ctx, cache.Config{
		Addr:      cfg.Redis.Addr,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		KeyPrefix: cfg.Cache.KeyPrefix,
		TTL:       cfg.Cache.TTL,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	consumer, err := queue.NewConsumer(queue.Config{
		URL:         cfg.RabbitMQ.URL,
		Exchange:    cfg.RabbitMQ.Exchange,
		RoutingKey:  cfg.RabbitMQ.RoutingKey,
		QueueName:   cfg.RabbitMQ.QueueName,
		ConsumerTag: cfg.RabbitMQ.ConsumerTag,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	provider := mediastack.New(mediastack.Config{
		BaseURL:   cfg.Provider.BaseURL,
		AccessKey: cfg.Provider.AccessKey,
		Countries: cfg.Provider.Countries,
		Limit:     cfg.Provider.Limit,
		Timeout:   cfg.Provider.Timeout,
	}, logger)

	backfillService := service.NewBackfillService(store, provider, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting backfill worker",
		"queue", cfg.RabbitMQ.QueueName,
		"cache_ttl", cfg.Cache.TTL,
	)

	if err := consumer.Start(ctx, backfillService.Process); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
