package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"currency-converter/internal/config"
	"currency-converter/internal/kafka"
	"currency-converter/internal/storage"
	"currency-converter/internal/storage/mongodb"
	"currency-converter/pkg/logger"
)

// RateHistoryApp пишет события о новых курсах из kafka в MongoDB.
type RateHistoryApp struct {
	log      *slog.Logger
	logFile  *os.File
	cfg      *config.RateHistoryConfig
	consumer *kafka.Consumer
	storage  storage.RateHistory
}

func NewRateHistoryApp() (*RateHistoryApp, error) {
	cfg, err := config.NewRateHistoryConfig()
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	loggerWithFile, err := logger.NewLoggerWithFile(cfg.LogFile, os.Stdout, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	log := loggerWithFile.Logger

	log.Info("инициализация rate-history приложения")
	log.Info("конфигурация загружена",
		slog.String("kafka_topic", cfg.Kafka.Topic),
		slog.String("mongo_database", cfg.MongoDB.Database))

	log.Info("подключение к MongoDB")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
	defer cancel()

	store, err := mongodb.NewMongoStorage(
		ctx,
		cfg.MongoDB.URI,
		cfg.MongoDB.Database,
		cfg.MongoDB.Collection,
		cfg.MongoDB.Timeout,
	)
	if err != nil {
		_ = loggerWithFile.LogFile.Close()
		return nil, fmt.Errorf("ошибка подключения к MongoDB: %w", err)
	}
	log.Info("подключение к MongoDB установлено")

	log.Info("инициализация kafka consumer")
	consumer, err := kafka.NewConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.GroupID,
		cfg.Kafka.Topic,
		cfg.Kafka.Workers,
		store,
		log,
	)
	if err != nil {
		_ = store.Close()
		_ = loggerWithFile.LogFile.Close()
		return nil, fmt.Errorf("ошибка создания kafka consumer: %w", err)
	}

	return &RateHistoryApp{
		log:      log,
		logFile:  loggerWithFile.LogFile,
		cfg:      cfg,
		consumer: consumer,
		storage:  store,
	}, nil
}

func (a *RateHistoryApp) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.consumer.Start(ctx); err != nil {
		return fmt.Errorf("ошибка запуска consumer: %w", err)
	}
	a.log.Info("kafka consumer запущен, ожидание событий о курсах",
		slog.String("topic", a.cfg.Kafka.Topic),
		slog.String("collection", a.cfg.MongoDB.Collection))

	<-ctx.Done()
	a.log.Info("получен сигнал завершения, приложение останавливается")

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	closeAll(a.log,
		closeStep{name: "kafka consumer", fn: func() error { return a.consumer.Close(closeCtx) }},
		closeStep{name: "mongodb", fn: a.storage.Close},
		closeStep{name: "log file", fn: a.logFile.Close},
	)
	return nil
}
