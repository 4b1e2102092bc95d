package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const contentTypeJSON = "application/json; charset=utf-8"

// ErrorResponse тело ответа, когда запрос не удалось разобрать.
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_json"`
	Message string `json:"message,omitempty" example:"Invalid JSON body"`
}

func WriteJSONError(w http.ResponseWriter, log *slog.Logger, status int, errCode, message string) {
	writeJSON(w, log, status, ErrorResponse{Error: errCode, Message: message})
}

// WriteJSONSuccess при data == nil пишет только статус.
func WriteJSONSuccess(w http.ResponseWriter, log *slog.Logger, status int, data any) {
	if data == nil {
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(status)
		return
	}
	writeJSON(w, log, status, data)
}

// writeJSON ошибка кодирования дает 500 без частично записанного тела.
func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Error("ошибка при кодировании JSON-ответа", slog.String("error", err.Error()))
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal_error"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Warn("не удалось отправить ответ клиенту", slog.String("error", err.Error()))
	}
}
