// Package numfmt formats and parses the decimal numbers shown in the converter.
package numfmt

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// exactDigits is enough fractional digits to tell a real decimal tie from a
// neighbouring binary value for any magnitude that survives rounding to cents.
const exactDigits = 40

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Fixed renders x with the given number of fractional digits. Rounding is
// half away from zero and is applied to the exact binary value of x, so
// 1.005 renders as "1.00" and 0.125 as "0.13".
func Fixed(x float64, places int32) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}
	d, err := decimal.NewFromString(strconv.FormatFloat(x, 'f', exactDigits, 64))
	if err != nil {
		return decimal.NewFromFloat(x).StringFixed(places)
	}
	return d.StringFixed(places)
}

// ParseLeadingFloat reads the longest decimal number at the start of s,
// ignoring leading whitespace. Trailing garbage is ignored ("1.2.3" is 1.2).
// ok is false when s does not start with a number.
func ParseLeadingFloat(s string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// out of range values still parse to ±Inf
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return math.NaN(), false
	}
	return v, true
}

// StripThousands removes comma group separators ("1,324.50" -> "1324.50").
func StripThousands(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
