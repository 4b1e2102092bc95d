package messaging

import (
	"context"
	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"
	"currency-converter/internal/service"
	"fmt"
	"log/slog"
)

// Dispatcher принимает сообщения конвертера на стороне фонового процесса.
type Dispatcher struct {
	rates service.Rates
	log   *slog.Logger
}

func NewDispatcher(rates service.Rates, log *slog.Logger) *Dispatcher {
	return &Dispatcher{rates: rates, log: log}
}

// Handle никогда не возвращает ошибку: она уходит в ответ как success=false.
func (d *Dispatcher) Handle(ctx context.Context, msg models.Message) models.MessageResponse {
	const op = "messaging.Handle"

	switch msg.Type {
	case models.MessageGetExchangeRate:
		d.log.Info("получено сообщение GET_EXCHANGE_RATE",
			slog.String("op", op),
			slog.String("from", string(msg.FromCurrency)),
			slog.String("to", string(msg.ToCurrency)))
		return d.getExchangeRate(ctx, msg.FromCurrency, msg.ToCurrency)
	default:
		d.log.Warn("неизвестный тип сообщения", slog.String("op", op), slog.String("type", string(msg.Type)))
		return models.FailureResponse(fmt.Errorf("%w: %q", custom_err.ErrUnknownMessageType, msg.Type))
	}
}

func (d *Dispatcher) getExchangeRate(ctx context.Context, from, to models.Currency) models.MessageResponse {
	if !from.IsValid() || !to.IsValid() {
		return models.FailureResponse(fmt.Errorf("%w: %q/%q", custom_err.ErrInvalidCurrency, from, to))
	}

	point, source, err := d.rates.GetRate(ctx, from, to)
	if err != nil {
		return models.FailureResponse(err)
	}

	d.log.Debug("курс отправлен",
		slog.String("source", string(source)),
		slog.Float64("rate", point.Rate))
	return models.SuccessResponse(point, source)
}
