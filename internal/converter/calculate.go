package converter

import (
	"currency-converter/pkg/numfmt"
	"math"
)

// CalculateExchange amount*rate с двумя знаками; NaN на входе или нулевой курс дают "0.00".
func CalculateExchange(amount, rate float64) string {
	if math.IsNaN(amount) || math.IsNaN(rate) || rate == 0 {
		return "0.00"
	}
	return numfmt.Fixed(amount*rate, 2)
}

// parseAmount пустой или нечисловой ввод считается нулем.
func parseAmount(text string) float64 {
	v, ok := numfmt.ParseLeadingFloat(text)
	if !ok || v == 0 {
		return 0
	}
	return v
}
