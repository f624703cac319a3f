package entity

import (
	"github.com/shopspring/decimal"
)

var koboPerNaira = decimal.NewFromInt(100)

// NairaToKobo converts a naira amount to kobo, rounding half away from zero
func NairaToKobo(naira decimal.Decimal) int64 {
	return naira.Mul(koboPerNaira).Round(0).IntPart()
}

// KoboToNaira converts kobo to a naira decimal
func KoboToNaira(kobo int64) decimal.Decimal {
	return decimal.New(kobo, -2)
}

// FormatNaira renders kobo as a display string, e.g. 50000 -> "₦500.00"
func FormatNaira(kobo int64) string {
	return "₦" + KoboToNaira(kobo).StringFixed(2)
}
