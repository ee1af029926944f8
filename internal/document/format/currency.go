// Package format renders money, dates and document numbers for display,
// previews and PDFs. Everything here is pure and never returns an error for
// unrecognized input; display code falls back instead of failing.
package format

import (
	"math"
	"strconv"
	"strings"
)

// Currency is one entry of the fixed symbol table.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Currencies is the supported currency table. The first entry doubles as the
// fallback for unrecognized codes.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "MXN", Symbol: "$", Name: "Mexican Peso"},
}

// CurrencyFor returns the table entry for code, or the fallback entry when
// the code is not recognized.
func CurrencyFor(code string) Currency {
	for _, c := range Currencies {
		if c.Code == code {
			return c
		}
	}
	return Currencies[0]
}

// Money renders an amount as "{symbol}{grouped number}" with US-locale
// grouping. The yen renders without decimals, every other code with two.
func Money(amount float64, code string) string {
	currency := CurrencyFor(code)

	decimals := 2
	if code == "JPY" {
		decimals = 0
	}

	return currency.Symbol + group(amount, decimals)
}

// group formats v with fixed decimals and comma thousands separators.
func group(v float64, decimals int) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', decimals, 64)

	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(frac)
	return b.String()
}
