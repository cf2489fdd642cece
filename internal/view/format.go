package view

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fraction digits used by the card and detail views. A negative value uses
// the currency's standard minor unit (2 for USD, 0 for JPY).
const (
	CardFractionDigits   = 0
	DetailFractionDigits = -1
)

var printer = message.NewPrinter(language.AmericanEnglish)

var symbols = map[currency.Unit]string{
	currency.USD: "$",
	currency.EUR: "€",
	currency.GBP: "£",
	currency.JPY: "¥",
	currency.INR: "₹",
	currency.KRW: "₩",
	currency.CNY: "CN¥",
}

// currencyUnit parses an ISO 4217 code. Empty or unknown codes fall back to USD.
func currencyUnit(code string) currency.Unit {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return currency.USD
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.USD
	}
	return unit
}

// FormatPrice renders price in en-US style with grouping, e.g.
// FormatPrice(45000, "", 0) == "$45,000".
func FormatPrice(price float64, code string, fractionDigits int) string {
	unit := currencyUnit(code)
	if fractionDigits < 0 {
		fractionDigits, _ = currency.Standard.Rounding(unit)
	}

	scale := math.Pow10(fractionDigits)
	rounded := math.Round(math.Abs(price)*scale) / scale
	amount := printer.Sprintf(fmt.Sprintf("%%.%df", fractionDigits), rounded)

	sign := ""
	if price < 0 && rounded != 0 {
		sign = "-"
	}

	if sym, ok := symbols[unit]; ok {
		return sign + sym + amount
	}
	return sign + unit.String() + " " + amount
}

// CurrencyCode normalizes code the same way FormatPrice does
func CurrencyCode(code string) string {
	return currencyUnit(code).String()
}
