// Package currency provides standardized currency handling across the
// application. All monetary amounts are stored as decimal.Decimal to avoid
// floating-point errors.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents an ISO 4217 currency code.
type Currency string

// Supported currencies.
const (
	EUR Currency = "EUR" // Euro
	USD Currency = "USD" // US Dollar
	GBP Currency = "GBP" // British Pound
	CHF Currency = "CHF" // Swiss Franc
	CAD Currency = "CAD" // Canadian Dollar
	JPY Currency = "JPY" // Japanese Yen
	MAD Currency = "MAD" // Moroccan Dirham
)

// DefaultCurrency is the currency used when none is configured.
const DefaultCurrency = EUR

// Info contains display metadata about a currency.
type Info struct {
	Code          Currency
	Name          string
	Symbol        string
	DecimalPlaces int  // e.g. 2 for EUR, 0 for JPY
	SymbolBefore  bool // whether the symbol appears before the amount
}

var currencies = map[Currency]Info{
	EUR: {Code: EUR, Name: "Euro", Symbol: "€", DecimalPlaces: 2, SymbolBefore: false},
	USD: {Code: USD, Name: "US Dollar", Symbol: "$", DecimalPlaces: 2, SymbolBefore: true},
	GBP: {Code: GBP, Name: "British Pound", Symbol: "£", DecimalPlaces: 2, SymbolBefore: true},
	CHF: {Code: CHF, Name: "Swiss Franc", Symbol: "CHF", DecimalPlaces: 2, SymbolBefore: true},
	CAD: {Code: CAD, Name: "Canadian Dollar", Symbol: "$", DecimalPlaces: 2, SymbolBefore: true},
	JPY: {Code: JPY, Name: "Japanese Yen", Symbol: "¥", DecimalPlaces: 0, SymbolBefore: true},
	MAD: {Code: MAD, Name: "Moroccan Dirham", Symbol: "DH", DecimalPlaces: 2, SymbolBefore: false},
}

// Supported returns all supported currency codes.
func Supported() []Currency {
	return []Currency{EUR, USD, GBP, CHF, CAD, JPY, MAD}
}

// SupportedCodes returns all supported currency codes as strings.
func SupportedCodes() []string {
	codes := Supported()
	result := make([]string, len(codes))
	for i, c := range codes {
		result[i] = string(c)
	}
	return result
}

// IsValid checks whether a currency code is supported.
func IsValid(code string) bool {
	_, ok := currencies[Currency(code)]
	return ok
}

// GetInfo returns metadata for a currency code.
func GetInfo(code Currency) (Info, bool) {
	info, ok := currencies[code]
	return info, ok
}

// SanitizeAmount rounds a monetary amount to the currency's decimal places
// and floors negative values at zero. User-entered amounts pass through this
// before being stored.
func SanitizeAmount(amount decimal.Decimal, curr Currency) decimal.Decimal {
	info, ok := currencies[curr]
	if !ok {
		info = currencies[DefaultCurrency]
	}
	rounded := amount.Round(int32(info.DecimalPlaces))
	if rounded.IsNegative() {
		return decimal.Zero
	}
	return rounded
}

// Format returns an amount formatted with the currency's symbol and standard
// placement, e.g. "1234.50€" or "$1234.50".
func Format(amount decimal.Decimal, curr Currency) string {
	info, ok := currencies[curr]
	if !ok {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), curr)
	}

	fixed := amount.Round(int32(info.DecimalPlaces)).StringFixed(int32(info.DecimalPlaces))
	if info.SymbolBefore {
		return info.Symbol + fixed
	}
	return fixed + info.Symbol
}
