package kafka

import (
	"context"
	"currency-converter/internal/models"
	"currency-converter/internal/storage"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

// Consumer читает RateFetchedEvent из топика и сохраняет их в историю курсов.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler *consumerGroupHandler
	topic   string
	workers int
	log     *slog.Logger
	wg      sync.WaitGroup
}

func consumerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "currency-converter-history"
	cfg.Version = sarama.V3_0_0_0
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Return.Errors = true
	return cfg
}

func NewConsumer(brokers []string, groupID, topic string, workers int, history storage.RateHistory, log *slog.Logger) (*Consumer, error) {
	const op = "kafka.NewConsumer"

	group, err := sarama.NewConsumerGroup(brokers, groupID, consumerConfig())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("kafka consumer создан",
		slog.String("group_id", groupID),
		slog.String("topic", topic),
		slog.Int("workers", workers))

	return &Consumer{
		group:   group,
		handler: &consumerGroupHandler{storage: history, log: log, now: time.Now},
		topic:   topic,
		workers: max(workers, 1),
		log:     log,
	}, nil
}

// Start запускает воркеров и возвращается сразу; остановка через отмену ctx и Close.
func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("запуск kafka consumer", slog.Int("workers", c.workers))

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.runWorker(ctx, i)
	}
	go c.logErrors()

	return nil
}

// runWorker повторяет Consume после каждой перебалансировки до отмены ctx.
func (c *Consumer) runWorker(ctx context.Context, id int) {
	defer c.wg.Done()
	log := c.log.With(slog.Int("worker_id", id))
	log.Info("воркер запущен")

	for ctx.Err() == nil {
		err := c.group.Consume(ctx, []string{c.topic}, c.handler)
		switch {
		case errors.Is(err, sarama.ErrClosedConsumerGroup):
			log.Info("consumer group закрыта, воркер завершается")
			return
		case err != nil:
			log.Error("ошибка consume", slog.String("error", err.Error()))
			return
		}
	}
}

func (c *Consumer) logErrors() {
	for err := range c.group.Errors() {
		c.log.Error("ошибка consumer group", slog.String("error", err.Error()))
	}
}

func (c *Consumer) Close(ctx context.Context) error {
	const op = "kafka.Close"
	c.log.Info("закрытие kafka consumer")

	done := make(chan error, 1)
	go func() {
		err := c.group.Close()
		c.wg.Wait()
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		c.log.Info("kafka consumer закрыт")
		return nil
	case <-ctx.Done():
		c.log.Warn("kafka consumer close timeout")
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

type consumerGroupHandler struct {
	storage storage.RateHistory
	log     *slog.Logger
	now     func() time.Time
}

func (h *consumerGroupHandler) Setup(session sarama.ConsumerGroupSession) error {
	h.log.Debug("сессия consumer group начата", slog.Any("claims", session.Claims()))
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim сообщение с ошибкой сохранения не помечается и будет прочитано повторно после перезапуска.
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				h.log.Error("failed to process message",
					slog.String("topic", message.Topic),
					slog.Int64("offset", message.Offset),
					slog.String("error", err.Error()))
				continue
			}
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

// processMessage нераспознанные сообщения пропускаются без ошибки.
func (h *consumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event models.RateFetchedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.log.Error("ошибка десериализации сообщения",
			slog.Int64("offset", message.Offset),
			slog.String("error", err.Error()),
			slog.String("raw_message", string(message.Value)))
		return nil
	}

	record := &models.RateRecord{
		EventID:      event.EventID.String(),
		FromCurrency: event.FromCurrency,
		ToCurrency:   event.ToCurrency,
		Rate:         event.Rate,
		Timestamp:    event.Timestamp,
		FetchedAt:    event.FetchedAt,
		ProcessedAt:  h.now(),
	}

	if err := h.storage.SaveRate(ctx, record); err != nil {
		return err
	}

	h.log.Info("курс сохранен в историю",
		slog.String("event_id", record.EventID),
		slog.String("pair", record.FromCurrency+"/"+record.ToCurrency),
		slog.Float64("rate", record.Rate))
	return nil
}
