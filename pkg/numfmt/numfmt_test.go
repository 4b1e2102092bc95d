package numfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"integer", 1324, "1324.00"},
		{"two places", 1324.5, "1324.50"},
		{"rounds up", 2.675001, "2.68"},
		{"binary value below tie", 1.005, "1.00"},
		{"exact tie rounds away from zero", 0.125, "0.13"},
		{"negative tie", -0.375, "-0.38"},
		{"small value", 0.0001, "0.00"},
		{"large value", 123456789.987, "123456789.99"},
		{"nan", math.NaN(), "NaN"},
		{"inf", math.Inf(1), "Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fixed(tt.in, 2))
		})
	}
}

func TestParseLeadingFloat(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   float64
		wantOK bool
	}{
		{"plain", "1324.50", 1324.5, true},
		{"spaces", "  12 ", 12, true},
		{"trailing garbage", "1.2.3", 1.2, true},
		{"leading dot", ".5", 0.5, true},
		{"exponent", "1e3", 1000, true},
		{"negative", "-4", -4, true},
		{"empty", "", 0, false},
		{"dot only", ".", 0, false},
		{"letters", "abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLeadingFloat(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			} else {
				assert.True(t, math.IsNaN(got))
			}
		})
	}
}

func TestStripThousands(t *testing.T) {
	assert.Equal(t, "1324.50", StripThousands("1,324.50"))
	assert.Equal(t, "1234567", StripThousands("1,234,567"))
}
