package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"currency-converter/internal/api/handlers"
	"currency-converter/internal/api/middlew"
	"currency-converter/internal/config"
	"currency-converter/internal/kafka"
	"currency-converter/internal/messaging"
	"currency-converter/internal/server"
	"currency-converter/internal/service"
	"currency-converter/pkg/logger"

	"github.com/go-chi/chi/v5/middleware"
)

// RateProviderApp фоновый процесс: HTTP API поверх RateProvider.
type RateProviderApp struct {
	log           *slog.Logger
	logFile       *os.File
	cfg           *config.RateProviderConfig
	server        *server.Server
	kafkaProducer kafka.Producer
	rateProvider  *service.RateProvider
}

func NewRateProviderApp() (*RateProviderApp, error) {
	cfg, err := config.NewRateProviderConfig()
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации конфига: %w", err)
	}

	loggerWithFile, err := logger.NewLoggerWithFile(cfg.LogFile, os.Stdout, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	log := loggerWithFile.Logger
	log.Info("инициализация приложения")
	log.Info("конфигурация загружена", slog.String("port", cfg.HTTPPort))

	kafkaProducer, err := newProducer(cfg.Kafka, log)
	if err != nil {
		_ = loggerWithFile.LogFile.Close()
		return nil, err
	}

	srv := server.NewServer(cfg.HTTPPort)
	log.Info("сервер инициализирован", slog.String("port", cfg.HTTPPort))
	srv.Router.Use(middleware.RequestID)
	srv.Router.Use(middlew.WithLogger(log))
	srv.Router.Use(middleware.RealIP)
	srv.Router.Use(middlew.AccessLog)
	srv.Router.Use(middleware.Recoverer)
	srv.RegisterSwagger(cfg.SwaggerURL)

	return &RateProviderApp{
		log:           log,
		logFile:       loggerWithFile.LogFile,
		cfg:           cfg,
		server:        srv,
		kafkaProducer: kafkaProducer,
	}, nil
}

func (a *RateProviderApp) BuildRateLayer() error {
	if a.kafkaProducer == nil {
		err := errors.New("kafkaProducer not initialized")
		a.log.Error(err.Error())
		return err
	}

	a.rateProvider = newRateProvider(a.cfg.Source, a.kafkaProducer, a.log)
	dispatcher := messaging.NewDispatcher(a.rateProvider, a.log)
	messageHandler := handlers.NewMessageHandler(dispatcher)

	a.server.Router.Post(messaging.MessagesPath, messageHandler.PostMessage)
	a.server.Router.Get("/api/v1/exchange/rate", messageHandler.GetExchangeRate)

	a.log.Info("слой 'rates' собран и маршруты зарегистрированы")
	return nil
}

func (a *RateProviderApp) Run() error {
	a.log.Info("сервер запускается", slog.String("addr", a.server.Addr()))
	serverErr := a.server.Start()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case err, ok := <-serverErr:
		if ok && err != nil {
			runErr = fmt.Errorf("ошибка запуска сервера: %w", err)
		}
	case <-ctx.Done():
		a.log.Info("получен сигнал завершения")
	}

	a.log.Info("приложение останавливается")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	steps := []closeStep{
		{name: "http server", fn: func() error { return a.server.Shutdown(shutdownCtx) }},
	}
	if a.rateProvider != nil {
		steps = append(steps, closeStep{name: "rate provider", fn: func() error { return a.rateProvider.Shutdown(shutdownCtx) }})
	}
	steps = append(steps,
		closeStep{name: "kafka producer", fn: a.kafkaProducer.Close},
		closeStep{name: "log file", fn: a.logFile.Close},
	)
	closeAll(a.log, steps...)

	return runErr
}
