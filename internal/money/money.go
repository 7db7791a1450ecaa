// Package money formats dollar amounts the way the dashboard and the
// query engine's answer contract expect: "$" prefix, two decimals,
// thousands separators.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Format renders v as a dollar string, e.g. 1234.5 -> "$1,234.50".
// Negative values keep the sign inside the prefix: "$-1,234.50".
func Format(v float64) string {
	return printer.Sprintf("$%.2f", v)
}
