package gateway

import (
	"strings"

	"github.com/shopspring/decimal"
)

// zeroDecimalCurrencies are charged in major units
var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "JPY": {},
	"KMF": {}, "KRW": {}, "MGA": {}, "PYG": {}, "RWF": {},
	"VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// IsZeroDecimalCurrency reports whether currency has no minor unit
func IsZeroDecimalCurrency(currency string) bool {
	_, ok := zeroDecimalCurrencies[strings.ToUpper(currency)]
	return ok
}

// FormatAmount converts a decimal amount into the integer minor units the
// processor expects. Halves round away from zero.
func FormatAmount(amount decimal.Decimal, currency string) int64 {
	if !IsZeroDecimalCurrency(currency) {
		amount = amount.Shift(2)
	}
	return amount.Round(0).IntPart()
}
