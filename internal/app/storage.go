package app

import (
	"context"
	"fmt"
	"log/slog"

	"currency-converter/internal/config"
	"currency-converter/internal/db"
	"currency-converter/internal/storage"
	"currency-converter/internal/storage/memory"
	"currency-converter/internal/storage/postgres"
	"currency-converter/internal/storage/redisstore"

	"github.com/redis/go-redis/v9"
)

// openStorage выбирает хранилище избранного по STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg *config.ConverterConfig, log *slog.Logger) (storage.LocalStorage, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		log.Info("выполнение миграций базы данных")
		if err := db.RunMigrations(cfg.DB.MigrationURL(), cfg.Storage.Migrations); err != nil {
			return nil, fmt.Errorf("ошибка выполнения миграций: %w", err)
		}
		log.Info("миграции успешно применены")

		pool, err := db.NewPool(ctx, cfg.DB.DSN(), db.DefaultPoolConfig(), log)
		if err != nil {
			return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
		}
		return postgres.NewExtensionStorage(pool), nil

	case config.StorageRedis:
		log.Info("подключение к redis", slog.String("addr", cfg.Redis.Addr))
		store, err := redisstore.NewRedisStorage(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.Prefix, cfg.Redis.Timeout)
		if err != nil {
			return nil, fmt.Errorf("не удалось подключиться к redis: %w", err)
		}
		return store, nil

	default:
		log.Info("избранное хранится в памяти процесса")
		return memory.NewStorage(), nil
	}
}
