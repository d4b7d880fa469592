// Package money formats whole-rupee amounts for display.
package money

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Symbol is the rupee sign used by [Format].
const Symbol = "₹"

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Format renders amount with the rupee sign and Indian digit grouping,
// e.g. "₹1,299".
func Format(amount int64) string {
	if amount < 0 {
		return "-" + Symbol + printer.Sprint(number.Decimal(-amount))
	}
	return Symbol + printer.Sprint(number.Decimal(amount))
}

// Code renders amount prefixed by the ISO currency code, e.g. "INR 1,299".
func Code(amount int64) string {
	return currency.INR.String() + " " + printer.Sprint(number.Decimal(amount))
}
