package gateway

import (
	"sort"
	"strings"
)

// DefaultCurrency is used when a transaction does not name one
const DefaultCurrency = "usd"

// supportedCurrencies are the ISO 4217 codes the processor accepts
var supportedCurrencies = []string{
	"AED", "AFN", "ALL", "AMD", "ANG", "AOA", "ARS", "AUD", "AWG",
	"AZN", "BAM", "BBD", "BDT", "BGN", "BIF", "BMD", "BND", "BOB",
	"BRL", "BSD", "BWP", "BZD", "CAD", "CDF", "CHF", "CLP", "CNY",
	"COP", "CRC", "CVE", "CZK", "DJF", "DKK", "DOP", "DZD", "EEK",
	"EGP", "ETB", "EUR", "FJD", "FKP", "GBP", "GEL", "GIP", "GMD",
	"GNF", "GTQ", "GYD", "HKD", "HNL", "HRK", "HTG", "HUF", "IDR",
	"ILS", "INR", "ISK", "JMD", "JPY", "KES", "KGS", "KHR", "KMF",
	"KRW", "KYD", "KZT", "LAK", "LBP", "LKR", "LRD", "LSL", "LTL",
	"LVL", "MAD", "MDL", "MGA", "MKD", "MNT", "MOP", "MRO", "MUR",
	"MVR", "MWK", "MXN", "MYR", "MZN", "NAD", "NGN", "NIO", "NOK",
	"NPR", "NZD", "PAB", "PEN", "PGK", "PHP", "PKR", "PLN", "PYG",
	"QAR", "RON", "RSD", "RUB", "RWF", "SAR", "SBD", "SCR", "SEK",
	"SGD", "SHP", "SLL", "SOS", "SRD", "STD", "SVC", "SZL", "THB",
	"TJS", "TOP", "TRY", "TTD", "TWD", "TZS", "UAH", "UGX", "USD",
	"UYI", "UZS", "VEF", "VND", "VUV", "WST", "XAF", "XCD", "XOF",
	"XPF", "YER", "ZAR", "ZMW",
}

var supportedCurrencySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(supportedCurrencies))
	for _, code := range supportedCurrencies {
		set[code] = struct{}{}
	}
	return set
}()

// SupportedCurrencies returns the sorted list of accepted currency codes
func SupportedCurrencies() []string {
	out := make([]string, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	sort.Strings(out)
	return out
}

// IsSupportedCurrency reports whether the processor accepts currency
func IsSupportedCurrency(currency string) bool {
	_, ok := supportedCurrencySet[strings.ToUpper(currency)]
	return ok
}
