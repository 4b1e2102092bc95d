package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"currency-converter/internal/api/middlew"
	"currency-converter/internal/models"
	"currency-converter/pkg/response"
)

// MessageDispatcher принимает сообщение конвертера и всегда отвечает MessageResponse.
type MessageDispatcher interface {
	Handle(ctx context.Context, msg models.Message) models.MessageResponse
}

type MessageHandler struct {
	dispatcher MessageDispatcher
}

func NewMessageHandler(dispatcher MessageDispatcher) *MessageHandler {
	return &MessageHandler{
		dispatcher: dispatcher,
	}
}

// PostMessage godoc
// @Summary      Отправить сообщение фоновому процессу
// @Description  Принимает сообщение конвертера. Отказ в курсе возвращается как success=false со статусом 200
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        request body models.Message true "Сообщение"
// @Success      200 {object} models.MessageResponse
// @Failure      400 {object} response.ErrorResponse
// @Router       /messages [post]
func (h *MessageHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	const op = "handler.PostMessage"
	log := middlew.GetLogger(r.Context())

	defer r.Body.Close()

	var msg models.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	resp := h.dispatcher.Handle(r.Context(), msg)
	if !resp.Success {
		log.Warn("запрос курса завершился ошибкой", slog.String("op", op), slog.String("error", resp.Error))
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, resp)
}

// GetExchangeRate godoc
// @Summary      Получить курс пары
// @Description  То же, что сообщение GET_EXCHANGE_RATE: свежий кэш или курс со страницы котировок
// @Tags         exchange
// @Produce      json
// @Param        from query string true "Исходная валюта" example(USD)
// @Param        to   query string true "Целевая валюта"  example(KRW)
// @Success      200 {object} models.MessageResponse
// @Failure      400 {object} response.ErrorResponse
// @Router       /exchange/rate [get]
func (h *MessageHandler) GetExchangeRate(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetExchangeRate"
	log := middlew.GetLogger(r.Context())

	from := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("from")))
	to := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("to")))
	if from == "" || to == "" {
		log.Warn("не указаны валюты", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "Query parameters 'from' and 'to' are required")
		return
	}

	resp := h.dispatcher.Handle(r.Context(), models.Message{
		Type:         models.MessageGetExchangeRate,
		FromCurrency: models.Currency(from),
		ToCurrency:   models.Currency(to),
	})

	response.WriteJSONSuccess(w, log, http.StatusOK, resp)
}
