package models

import (
	"time"

	"github.com/google/uuid"
)

// RateFetchedEvent публикуется после каждого успешного получения курса с сайта
type RateFetchedEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	FromCurrency string    `json:"from_currency"`
	ToCurrency   string    `json:"to_currency"`
	Rate         float64   `json:"rate"`
	Timestamp    string    `json:"timestamp"`
	FetchedAt    time.Time `json:"fetched_at"`
}

func NewRateFetchedEvent(point RatePoint, fetchedAt time.Time) RateFetchedEvent {
	return RateFetchedEvent{
		EventID:      uuid.New(),
		FromCurrency: string(point.FromCurrency),
		ToCurrency:   string(point.ToCurrency),
		Rate:         point.Rate,
		Timestamp:    point.Timestamp,
		FetchedAt:    fetchedAt,
	}
}

// RateRecord документ истории курсов в MongoDB
type RateRecord struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	EventID      string    `bson:"event_id" json:"event_id"`
	FromCurrency string    `bson:"from_currency" json:"from_currency"`
	ToCurrency   string    `bson:"to_currency" json:"to_currency"`
	Rate         float64   `bson:"rate" json:"rate"`
	Timestamp    string    `bson:"timestamp" json:"timestamp"`
	FetchedAt    time.Time `bson:"fetched_at" json:"fetched_at"`
	ProcessedAt  time.Time `bson:"processed_at" json:"processed_at"`
}
