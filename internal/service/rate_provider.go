package service

import (
	"context"
	"currency-converter/internal/kafka"
	"currency-converter/internal/models"
	"currency-converter/internal/scraper"
	"log/slog"
	"sync"
	"time"
)

const (
	eventWorkers   = 5
	eventQueueSize = 100
	eventTimeout   = 5 * time.Second
)

type Rates interface {
	GetRate(ctx context.Context, from, to models.Currency) (models.RatePoint, models.Source, error)
}

type RateProvider struct {
	fetcher       scraper.RateFetcher
	cache         *RateCache
	clock         Clock
	kafkaProducer kafka.Producer
	log           *slog.Logger

	eventQueue chan models.RateFetchedEvent
	wg         sync.WaitGroup
	stopCh     chan struct{}
	stopOnce   sync.Once
}

func NewRateProvider(
	fetcher scraper.RateFetcher,
	cache *RateCache,
	clock Clock,
	kafkaProducer kafka.Producer,
	log *slog.Logger,
) *RateProvider {
	if clock == nil {
		clock = SystemClock{}
	}
	svc := &RateProvider{
		fetcher:       fetcher,
		cache:         cache,
		clock:         clock,
		kafkaProducer: kafkaProducer,
		log:           log,
		eventQueue:    make(chan models.RateFetchedEvent, eventQueueSize),
		stopCh:        make(chan struct{}),
	}

	for i := 0; i < eventWorkers; i++ {
		svc.wg.Add(1)
		go svc.kafkaWorker(i)
	}

	return svc
}

func (s *RateProvider) kafkaWorker(id int) {
	defer s.wg.Done()
	s.log.Debug("kafka worker started", slog.Int("worker_id", id))

	for {
		select {
		case event := <-s.eventQueue:
			ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
			if err := s.kafkaProducer.SendRateFetchedEvent(ctx, event); err != nil {
				s.log.Error("kafka send failed",
					slog.Int("worker_id", id),
					slog.String("event_id", event.EventID.String()),
					slog.String("error", err.Error()))
			} else {
				s.log.Debug("event sent to kafka",
					slog.Int("worker_id", id),
					slog.String("event_id", event.EventID.String()))
			}
			cancel()

		case <-s.stopCh:
			s.log.Debug("kafka worker stopping", slog.Int("worker_id", id))
			return
		}
	}
}

func (s *RateProvider) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down rate provider")

	s.stopOnce.Do(func() { close(s.stopCh) })

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("all kafka workers stopped")
		return nil
	case <-ctx.Done():
		s.log.Warn("shutdown timeout exceeded")
		return ctx.Err()
	}
}

// GetRate отдает курс из кэша, если он свежий и для той же пары, иначе идет на сайт.
// Ошибка получения не трогает кэш и не повторяется.
func (s *RateProvider) GetRate(ctx context.Context, from, to models.Currency) (models.RatePoint, models.Source, error) {
	const op = "service.GetRate"

	if cached, ok := s.cache.Get(from, to, s.clock.Now()); ok {
		s.log.Debug("курс взят из кэша",
			slog.String("op", op),
			slog.String("from", string(from)),
			slog.String("to", string(to)),
			slog.Float64("rate", cached.Rate))
		return cached, models.SourceCache, nil
	}

	rate, err := s.fetcher.FetchRate(ctx, from, to)
	if err != nil {
		s.log.Warn("не удалось получить курс",
			slog.String("op", op),
			slog.String("from", string(from)),
			slog.String("to", string(to)),
			slog.String("error", err.Error()))
		return models.RatePoint{}, "", err
	}

	now := s.clock.Now()
	point := models.NewRatePoint(rate, from, to, now)
	s.cache.Put(point, now)

	s.log.Info("курс обновлен в кэше",
		slog.String("op", op),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.Float64("rate", rate))

	s.publish(models.NewRateFetchedEvent(point, now))

	return point, models.SourceAPI, nil
}

func (s *RateProvider) publish(event models.RateFetchedEvent) {
	select {
	case s.eventQueue <- event:
		s.log.Debug("событие о новом курсе добавлено в очередь", slog.String("event_id", event.EventID.String()))
	default:
		s.log.Error("очередь событий переполнена, событие отброшено",
			slog.String("event_id", event.EventID.String()),
			slog.String("from", event.FromCurrency),
			slog.String("to", event.ToCurrency))
	}
}
