package server

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders a price with thousands grouping and two decimals,
// e.g. 1234567.891 becomes "$1,234,567.89".
func FormatUSD(v float64) string {
	return usd.Sprintf("$%.2f", v)
}
