package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"currency-converter/internal/config"
	"currency-converter/internal/console"
	"currency-converter/internal/converter"
	"currency-converter/internal/kafka"
	"currency-converter/internal/messaging"
	"currency-converter/internal/models"
	"currency-converter/internal/service"
	"currency-converter/internal/storage"
	"currency-converter/pkg/logger"
)

// ConverterApp консольный конвертер. В embedded режиме RateProvider работает в том же процессе.
type ConverterApp struct {
	log          *slog.Logger
	logFile      *os.File
	cfg          *config.ConverterConfig
	store        storage.LocalStorage
	rateProvider *service.RateProvider
	popup        *converter.Popup
	shell        *console.Shell
}

func NewConverterApp(in io.Reader, out io.Writer) (*ConverterApp, error) {
	cfg, err := config.NewConverterConfig()
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации конфига: %w", err)
	}

	// stdout занят интерфейсом, логи только в файл
	loggerWithFile, err := logger.NewLoggerWithFile(cfg.LogFile, io.Discard, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	log := loggerWithFile.Logger
	log.Info("инициализация конвертера",
		slog.Bool("embedded", cfg.Embedded),
		slog.String("storage", cfg.Storage.Driver))

	store, err := openStorage(context.Background(), cfg, log)
	if err != nil {
		_ = loggerWithFile.LogFile.Close()
		return nil, err
	}

	a := &ConverterApp{
		log:     log,
		logFile: loggerWithFile.LogFile,
		cfg:     cfg,
		store:   store,
	}

	var messenger messaging.Messenger
	if cfg.Embedded {
		a.rateProvider = newRateProvider(cfg.Source, kafka.NewNoOpProducer(log), log)
		messenger = messaging.NewLocalMessenger(messaging.NewDispatcher(a.rateProvider, log))
	} else {
		log.Info("rate-provider", slog.String("url", cfg.ProviderURL))
		messenger = messaging.NewHTTPMessenger(cfg.ProviderURL, cfg.ProviderTimeout, log)
	}

	a.popup = converter.NewPopup(messenger, store, converter.Options{
		BaseCurrency:   models.Currency(cfg.BaseCurrency),
		TargetCurrency: models.Currency(cfg.TargetCurrency),
	}, log)
	a.shell = console.NewShell(a.popup, in, out, log)

	return a, nil
}

func (a *ConverterApp) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.popup.Load(ctx); err != nil {
		a.log.Warn("начальный курс не получен", slog.String("error", err.Error()))
	}

	runErr := a.shell.Run(ctx)

	a.log.Info("конвертер останавливается")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	steps := []closeStep{{name: "storage", fn: a.store.Close}}
	if a.rateProvider != nil {
		steps = append(steps, closeStep{name: "rate provider", fn: func() error { return a.rateProvider.Shutdown(shutdownCtx) }})
	}
	steps = append(steps, closeStep{name: "log file", fn: a.logFile.Close})
	closeAll(a.log, steps...)

	return runErr
}
