package models

import "time"

// TimestampLayout форматирует момент получения курса в UTC с миллисекундами.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Currency код валюты из трех латинских букв
type Currency string

const (
	CurrencyKRW Currency = "KRW"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyJPY Currency = "JPY"
	CurrencyCNY Currency = "CNY"
	CurrencyGBP Currency = "GBP"
)

// IsValid проверяет формат кода: ровно три заглавные латинские буквы.
func (c Currency) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	return true
}

// IsSupported сообщает, есть ли валюта в списке выбора конвертера.
func (c Currency) IsSupported() bool {
	for _, s := range SupportedCurrencies() {
		if s == c {
			return true
		}
	}
	return false
}

// SupportedCurrencies возвращает валюты, доступные в селекторах конвертера
func SupportedCurrencies() []Currency {
	return []Currency{CurrencyKRW, CurrencyUSD, CurrencyEUR, CurrencyJPY, CurrencyCNY, CurrencyGBP}
}

// RatePoint курс для упорядоченной пары валют
type RatePoint struct {
	Rate         float64  `json:"rate"`
	FromCurrency Currency `json:"fromCurrency"`
	ToCurrency   Currency `json:"toCurrency"`
	Timestamp    string   `json:"timestamp"`
}

func NewRatePoint(rate float64, from, to Currency, at time.Time) RatePoint {
	return RatePoint{
		Rate:         rate,
		FromCurrency: from,
		ToCurrency:   to,
		Timestamp:    at.UTC().Format(TimestampLayout),
	}
}

// Time разбирает Timestamp обратно во время.
func (p RatePoint) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, p.Timestamp)
}

// Source откуда взят курс
type Source string

const (
	SourceCache Source = "cache"
	SourceAPI   Source = "api"
)
