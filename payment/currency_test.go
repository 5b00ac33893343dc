package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSubUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		want     int64
	}{
		{"INR two decimal", 499.00, "INR", 49900},
		{"INR with paise", 299.99, "INR", 29999},
		{"USD", 19.95, "USD", 1995},
		{"JPY zero decimal", 295, "JPY", 295},
		{"KRW zero decimal rounds", 1000.4, "KRW", 1000},
		{"KWD three decimal", 10.999, "KWD", 11000},
		{"BHD three decimal rounds to ten", 1.234, "BHD", 1230},
		{"OMR exact", 5.550, "OMR", 5550},
		{"lowercase code", 499.00, "inr", 49900},
		{"unknown code defaults to two decimal", 12.34, "XYZ", 1234},
		{"zero amount", 0, "INR", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToSubUnits(tt.amount, tt.currency))
		})
	}
}

func TestFromSubUnits(t *testing.T) {
	assert.Equal(t, 499.00, FromSubUnits(49900, "INR"))
	assert.Equal(t, 295.0, FromSubUnits(295, "JPY"))
	assert.Equal(t, 10.99, FromSubUnits(10990, "KWD"))
}

func TestSubUnitsRoundTrip(t *testing.T) {
	// Converting to sub-units and back must preserve representable prices.
	for _, currency := range []string{"INR", "USD", "JPY", "KWD"} {
		amount := 123.0
		assert.Equal(t, amount, FromSubUnits(ToSubUnits(amount, currency), currency), currency)
	}
}

func TestIsSupportedCurrency(t *testing.T) {
	assert.True(t, IsSupportedCurrency("INR"))
	assert.True(t, IsSupportedCurrency("jpy"))
	assert.True(t, IsSupportedCurrency("KWD"))
	assert.False(t, IsSupportedCurrency("XYZ"))
	assert.False(t, IsSupportedCurrency(""))
}

func TestBoundReceipt(t *testing.T) {
	short := "course_12_7_1700000000000"
	assert.Equal(t, short, BoundReceipt(short))

	long := "course_" + strings.Repeat("9", 60)
	bounded := BoundReceipt(long)
	assert.Len(t, bounded, 40)
	assert.Equal(t, long[:40], bounded)
}
