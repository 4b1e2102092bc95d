package service

import (
	"currency-converter/internal/models"
	"sync"
	"time"
)

// DefaultCacheTTL срок жизни закэшированного курса
const DefaultCacheTTL = 300000 * time.Millisecond

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// RateCache хранит курс только для одной пары. Запрос другой пары всегда промах,
// даже если сохраненное значение еще свежее.
type RateCache struct {
	mu        sync.RWMutex
	data      *models.RatePoint
	fetchedAt time.Time
	ttl       time.Duration
}

func NewRateCache(ttl time.Duration) *RateCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RateCache{ttl: ttl}
}

func (c *RateCache) TTL() time.Duration {
	return c.ttl
}

// Get возвращает курс, если слот занят той же упорядоченной парой и now-fetchedAt < ttl.
func (c *RateCache) Get(from, to models.Currency, now time.Time) (models.RatePoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.data == nil || c.fetchedAt.IsZero() {
		return models.RatePoint{}, false
	}
	if c.data.FromCurrency != from || c.data.ToCurrency != to {
		return models.RatePoint{}, false
	}
	if now.Sub(c.fetchedAt) >= c.ttl {
		return models.RatePoint{}, false
	}
	return *c.data, true
}

// Put перезаписывает слот целиком.
func (c *RateCache) Put(point models.RatePoint, fetchedAt time.Time) {
	c.mu.Lock()
	c.data = &point
	c.fetchedAt = fetchedAt
	c.mu.Unlock()
}
