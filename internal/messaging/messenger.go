package messaging

import (
	"bytes"
	"context"
	"currency-converter/internal/models"
	"currency-converter/pkg/response"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const MessagesPath = "/api/v1/messages"

// Messenger доставляет сообщение фоновому процессу и возвращает его ответ.
// Ошибка означает сбой доставки, а не отказ в курсе.
type Messenger interface {
	Send(ctx context.Context, msg models.Message) (models.MessageResponse, error)
}

// LocalMessenger вызывает диспетчер в том же процессе.
type LocalMessenger struct {
	dispatcher *Dispatcher
}

func NewLocalMessenger(dispatcher *Dispatcher) *LocalMessenger {
	return &LocalMessenger{dispatcher: dispatcher}
}

func (m *LocalMessenger) Send(ctx context.Context, msg models.Message) (models.MessageResponse, error) {
	return m.dispatcher.Handle(ctx, msg), nil
}

// HTTPMessenger отправляет сообщение в сервис rate-provider.
type HTTPMessenger struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

func NewHTTPMessenger(baseURL string, timeout time.Duration, log *slog.Logger) *HTTPMessenger {
	return &HTTPMessenger{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (m *HTTPMessenger) Send(ctx context.Context, msg models.Message) (models.MessageResponse, error) {
	const op = "messaging.Send"

	body, err := json.Marshal(msg)
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+MessagesPath, bytes.NewReader(body))
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.log.Error("rate-provider недоступен", slog.String("op", op), slog.String("error", err.Error()))
		return models.MessageResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr response.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			return models.MessageResponse{}, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
		}
		return models.MessageResponse{}, errors.New(apiErr.Message)
	}

	var out models.MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.MessageResponse{}, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return out, nil
}
