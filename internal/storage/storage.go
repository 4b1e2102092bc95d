package storage

import (
	"context"
	"currency-converter/internal/models"
)

// LocalStorage именованные JSON-записи конвертера (избранные пары и т.п.)
type LocalStorage interface {
	// Get декодирует запись key в dst. found=false, если записи нет.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Close() error
}

// RateHistory история полученных курсов
type RateHistory interface {
	SaveRate(ctx context.Context, record *models.RateRecord) error
	Close() error
}
