package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatMoney renders whole currency units with thousand separators,
// e.g. $500,000.
func FormatMoney(amount int) string {
	return printer.Sprintf("$%d", amount)
}

// FormatNumber renders n with thousand separators.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}
