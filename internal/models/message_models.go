package models

// MessageType тип сообщения от конвертера к фоновому процессу
type MessageType string

const MessageGetExchangeRate MessageType = "GET_EXCHANGE_RATE"

// Message запрос конвертера
type Message struct {
	Type         MessageType `json:"type" example:"GET_EXCHANGE_RATE"`
	FromCurrency Currency    `json:"fromCurrency" example:"USD"`
	ToCurrency   Currency    `json:"toCurrency" example:"KRW"`
}

// MessageResponse ответ фонового процесса
type MessageResponse struct {
	Success bool       `json:"success"`
	Data    *RatePoint `json:"data,omitempty"`
	Source  Source     `json:"source,omitempty"`
	Error   string     `json:"error,omitempty"`
}

func SuccessResponse(point RatePoint, source Source) MessageResponse {
	return MessageResponse{Success: true, Data: &point, Source: source}
}

func FailureResponse(err error) MessageResponse {
	return MessageResponse{Success: false, Error: err.Error()}
}
