package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"currency-converter/internal/models"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateHistory struct {
	mock.Mock
}

func (m *MockRateHistory) SaveRate(ctx context.Context, record *models.RateRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRateHistory) Close() error {
	args := m.Called()
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() models.RateFetchedEvent {
	fetchedAt := time.Date(2025, 6, 13, 9, 30, 0, 0, time.UTC)
	point := models.NewRatePoint(1324.5, models.CurrencyUSD, models.CurrencyKRW, fetchedAt)
	return models.NewRateFetchedEvent(point, fetchedAt)
}

func TestKafkaProducer_SendRateFetchedEvent(t *testing.T) {
	event := testEvent()

	syncProducer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	syncProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got models.RateFetchedEvent
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.EventID != event.EventID || got.Rate != 1324.5 {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	producer := newKafkaProducer(syncProducer, "rate-fetched", testLogger())

	err := producer.SendRateFetchedEvent(context.Background(), event)

	assert.NoError(t, err)
	assert.NoError(t, producer.Close())
}

func TestKafkaProducer_MessageKeyAndHeaders(t *testing.T) {
	event := testEvent()

	syncProducer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	syncProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "USDKRW" {
			return errors.New("unexpected key " + string(key))
		}
		if msg.Topic != "rate-fetched" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		headers := map[string]string{}
		for _, h := range msg.Headers {
			headers[string(h.Key)] = string(h.Value)
		}
		if headers["event_type"] != "rate_fetched" || headers["event_id"] != event.EventID.String() {
			return errors.New("unexpected headers")
		}
		return nil
	})

	producer := newKafkaProducer(syncProducer, "rate-fetched", testLogger())

	assert.NoError(t, producer.SendRateFetchedEvent(context.Background(), event))
	assert.NoError(t, producer.Close())
}

func TestKafkaProducer_SendRateFetchedEvent_Error(t *testing.T) {
	syncProducer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	syncProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	producer := newKafkaProducer(syncProducer, "rate-fetched", testLogger())

	err := producer.SendRateFetchedEvent(context.Background(), testEvent())

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	assert.NoError(t, producer.Close())
}

func TestNoOpProducer(t *testing.T) {
	producer := NewNoOpProducer(testLogger())

	assert.NoError(t, producer.SendRateFetchedEvent(context.Background(), testEvent()))
	assert.NoError(t, producer.Close())
}

func TestConsumerGroupHandler_ProcessMessage(t *testing.T) {
	storage := new(MockRateHistory)
	processedAt := time.Date(2025, 6, 13, 9, 31, 0, 0, time.UTC)
	handler := &consumerGroupHandler{
		storage: storage,
		log:     testLogger(),
		now:     func() time.Time { return processedAt },
	}
	ctx := context.Background()
	event := testEvent()
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	storage.On("SaveRate", ctx, &models.RateRecord{
		EventID:      event.EventID.String(),
		FromCurrency: "USD",
		ToCurrency:   "KRW",
		Rate:         1324.5,
		Timestamp:    "2025-06-13T09:30:00.000Z",
		FetchedAt:    event.FetchedAt,
		ProcessedAt:  processedAt,
	}).Return(nil).Once()

	err = handler.processMessage(ctx, &sarama.ConsumerMessage{Topic: "rate-fetched", Value: payload})

	assert.NoError(t, err)
	storage.AssertExpectations(t)
}

func TestConsumerGroupHandler_ProcessMessage_SkipsGarbage(t *testing.T) {
	storage := new(MockRateHistory)
	handler := &consumerGroupHandler{storage: storage, log: testLogger(), now: time.Now}

	err := handler.processMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte("not json")})

	assert.NoError(t, err)
	storage.AssertNotCalled(t, "SaveRate", mock.Anything, mock.Anything)
}

func TestConsumerGroupHandler_ProcessMessage_StorageError(t *testing.T) {
	storage := new(MockRateHistory)
	handler := &consumerGroupHandler{storage: storage, log: testLogger(), now: time.Now}
	payload, err := json.Marshal(models.RateFetchedEvent{EventID: uuid.New(), Rate: 1})
	require.NoError(t, err)

	storage.On("SaveRate", mock.Anything, mock.Anything).Return(errors.New("mongo down")).Once()

	err = handler.processMessage(context.Background(), &sarama.ConsumerMessage{Value: payload})

	assert.EqualError(t, err, "mongo down")
	storage.AssertExpectations(t)
}
