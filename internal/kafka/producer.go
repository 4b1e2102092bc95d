package kafka

import (
	"context"
	"currency-converter/internal/models"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
)

const eventTypeRateFetched = "rate_fetched"

type Producer interface {
	SendRateFetchedEvent(ctx context.Context, event models.RateFetchedEvent) error
	Close() error
}

type KafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      *slog.Logger
}

func producerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "currency-converter"
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Retry.Backoff = 200 * time.Millisecond
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Producer.Timeout = 5 * time.Second
	return cfg
}

func NewKafkaProducer(brokers []string, topic string, log *slog.Logger) (Producer, error) {
	const op = "kafka.NewKafkaProducer"

	producer, err := sarama.NewSyncProducer(brokers, producerConfig())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("kafka producer создан", slog.String("topic", topic), slog.Any("brokers", brokers))
	return newKafkaProducer(producer, topic, log), nil
}

func newKafkaProducer(producer sarama.SyncProducer, topic string, log *slog.Logger) *KafkaProducer {
	return &KafkaProducer{
		producer: producer,
		topic:    topic,
		log:      log,
	}
}

// buildMessage ключ сообщения FROM+TO.
func (p *KafkaProducer) buildMessage(event models.RateFetchedEvent) (*sarama.ProducerMessage, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.FromCurrency + event.ToCurrency),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: event.FetchedAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(eventTypeRateFetched)},
			{Key: []byte("event_id"), Value: []byte(event.EventID.String())},
		},
	}, nil
}

// SendRateFetchedEvent ждет SyncProducer не дольше ctx; прерванное сообщение все равно может дойти до брокера.
func (p *KafkaProducer) SendRateFetchedEvent(ctx context.Context, event models.RateFetchedEvent) error {
	const op = "kafka.SendRateFetchedEvent"
	log := p.log.With(slog.String("op", op), slog.String("event_id", event.EventID.String()))

	msg, err := p.buildMessage(event)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	done := make(chan error, 1)
	go func() {
		partition, offset, err := p.producer.SendMessage(msg)
		if err == nil {
			log.Debug("событие записано в kafka",
				slog.Int("partition", int(partition)),
				slog.Int64("offset", offset))
		}
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Error("kafka send failed", slog.String("error", err.Error()))
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	case <-ctx.Done():
		log.Warn("отправка в kafka прервана по контексту")
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

func (p *KafkaProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	p.log.Info("закрытие kafka producer")
	return p.producer.Close()
}

// NoOpProducer используется, когда KAFKA_ENABLED=false.
type NoOpProducer struct {
	log *slog.Logger
}

func NewNoOpProducer(log *slog.Logger) Producer {
	return &NoOpProducer{log: log}
}

func (p *NoOpProducer) SendRateFetchedEvent(ctx context.Context, event models.RateFetchedEvent) error {
	p.log.Debug("kafka отключен, событие не отправлено",
		slog.String("event_id", event.EventID.String()))
	return nil
}

func (p *NoOpProducer) Close() error {
	return nil
}
