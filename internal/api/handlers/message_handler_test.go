package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"currency-converter/internal/models"
	"currency-converter/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Handle(ctx context.Context, msg models.Message) models.MessageResponse {
	args := m.Called(ctx, msg)
	return args.Get(0).(models.MessageResponse)
}

func setupRouter(t *testing.T) (*chi.Mux, *MockDispatcher) {
	dispatcher := new(MockDispatcher)
	h := NewMessageHandler(dispatcher)

	r := chi.NewRouter()
	r.Post("/api/v1/messages", h.PostMessage)
	r.Get("/api/v1/exchange/rate", h.GetExchangeRate)
	return r, dispatcher
}

func okResponse() models.MessageResponse {
	point := models.NewRatePoint(1324.5, models.CurrencyUSD, models.CurrencyKRW, time.Date(2025, 6, 13, 9, 30, 0, 0, time.UTC))
	return models.SuccessResponse(point, models.SourceAPI)
}

func TestPostMessage_Success(t *testing.T) {
	r, dispatcher := setupRouter(t)
	msg := models.Message{Type: models.MessageGetExchangeRate, FromCurrency: "USD", ToCurrency: "KRW"}
	dispatcher.On("Handle", mock.Anything, msg).Return(okResponse()).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages",
		strings.NewReader(`{"type":"GET_EXCHANGE_RATE","fromCurrency":"USD","toCurrency":"KRW"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"source": "api",
		"data": {"rate": 1324.5, "fromCurrency": "USD", "toCurrency": "KRW", "timestamp": "2025-06-13T09:30:00.000Z"}
	}`, rec.Body.String())
	dispatcher.AssertExpectations(t)
}

func TestPostMessage_FailureIsStill200(t *testing.T) {
	r, dispatcher := setupRouter(t)
	dispatcher.On("Handle", mock.Anything, mock.Anything).
		Return(models.MessageResponse{Success: false, Error: "fetch error: HTTP error! status: 503"}).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages",
		strings.NewReader(`{"type":"GET_EXCHANGE_RATE","fromCurrency":"USD","toCurrency":"KRW"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": false, "error": "fetch error: HTTP error! status: 503"}`, rec.Body.String())
}

func TestPostMessage_InvalidJSON(t *testing.T) {
	r, dispatcher := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(`{"type":`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body response.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "invalid_json", body.Error)
	dispatcher.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetExchangeRate(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantMsg    *models.Message
	}{
		{
			name:       "ok",
			query:      "?from=USD&to=KRW",
			wantStatus: http.StatusOK,
			wantMsg:    &models.Message{Type: models.MessageGetExchangeRate, FromCurrency: "USD", ToCurrency: "KRW"},
		},
		{
			name:       "lower case codes",
			query:      "?from=usd&to=krw",
			wantStatus: http.StatusOK,
			wantMsg:    &models.Message{Type: models.MessageGetExchangeRate, FromCurrency: "USD", ToCurrency: "KRW"},
		},
		{
			name:       "missing to",
			query:      "?from=USD",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no params",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, dispatcher := setupRouter(t)
			if tt.wantMsg != nil {
				dispatcher.On("Handle", mock.Anything, *tt.wantMsg).Return(okResponse()).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/exchange/rate"+tt.query, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			dispatcher.AssertExpectations(t)
		})
	}
}
