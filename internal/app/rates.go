package app

import (
	"currency-converter/internal/config"
	"currency-converter/internal/kafka"
	"currency-converter/internal/scraper"
	"currency-converter/internal/service"
	"fmt"
	"log/slog"
)

// newRateProvider собирает scraper, кэш на одну пару и очередь событий.
func newRateProvider(src config.SourceConfig, producer kafka.Producer, log *slog.Logger) *service.RateProvider {
	fetcher := scraper.NewNaverClient(src.URLTemplate, src.Timeout, log)
	cache := service.NewRateCache(src.CacheTTL)

	log.Info("rate provider инициализирован",
		slog.String("cache_ttl", cache.TTL().String()),
		slog.String("source_timeout", src.Timeout.String()))

	return service.NewRateProvider(fetcher, cache, service.SystemClock{}, producer, log)
}

func newProducer(cfg config.KafkaProducerConfig, log *slog.Logger) (kafka.Producer, error) {
	if !cfg.Enabled {
		log.Info("kafka отключен в конфигурации")
		return kafka.NewNoOpProducer(log), nil
	}

	log.Info("инициализация kafka producer", slog.Any("brokers", cfg.Brokers))
	producer, err := kafka.NewKafkaProducer(cfg.Brokers, cfg.Topic, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации kafka: %w", err)
	}
	return producer, nil
}
