package payment

import (
	"math"
	"strings"
)

// Currencies whose gateway amount is expressed without decimal places
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true, "VND": true, "KRW": true, "CLP": true, "PYG": true,
	"ISK": true, "BIF": true, "DJF": true, "GNF": true, "KMF": true,
	"MGA": true, "RWF": true, "XOF": true, "XAF": true, "XPF": true,
}

// Currencies with three decimal places. Razorpay requires the last sub-unit
// digit to be zero for these, so converted amounts are rounded to the
// nearest 10.
var threeDecimalCurrencies = map[string]bool{
	"KWD": true, "BHD": true, "OMR": true, "JOD": true, "LYD": true,
}

var twoDecimalCurrencies = map[string]bool{
	"INR": true, "USD": true, "EUR": true, "GBP": true, "CAD": true,
	"AUD": true, "SGD": true, "AED": true, "SAR": true, "QAR": true,
}

// ToSubUnits converts a price in major currency units to the gateway's
// smallest sub-unit representation.
//
// Examples:
//   - INR: 299.99 -> 29999
//   - JPY: 295    -> 295
//   - KWD: 10.999 -> 11000 (last digit forced to 0)
func ToSubUnits(amount float64, currency string) int64 {
	code := strings.ToUpper(currency)

	if zeroDecimalCurrencies[code] {
		return int64(math.Round(amount))
	}

	if threeDecimalCurrencies[code] {
		multiplied := amount * 1000
		return int64(math.Round(multiplied/10)) * 10
	}

	// Default: two decimal currencies
	return int64(math.Round(amount * 100))
}

// FromSubUnits converts a gateway sub-unit amount back to major units.
func FromSubUnits(subUnits int64, currency string) float64 {
	code := strings.ToUpper(currency)

	if zeroDecimalCurrencies[code] {
		return float64(subUnits)
	}

	if threeDecimalCurrencies[code] {
		return float64(subUnits) / 1000
	}

	return float64(subUnits) / 100
}

// IsSupportedCurrency reports whether the currency code is known to the
// conversion table.
func IsSupportedCurrency(currency string) bool {
	code := strings.ToUpper(currency)
	return zeroDecimalCurrencies[code] || threeDecimalCurrencies[code] || twoDecimalCurrencies[code]
}
