package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyFormatter renders amounts with a symbol, digit grouping and two
// decimals, e.g. "Rp1,234.50". Amounts never pass through float64, so
// cents stay exact at any magnitude.
type CurrencyFormatter struct {
	symbol   string
	printer  *message.Printer
	decimal  string
	grouping string
}

// NewCurrencyFormatter builds a formatter for the given symbol and BCP 47
// locale. An unknown locale falls back to English.
func NewCurrencyFormatter(symbol, locale string) *CurrencyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	printer := message.NewPrinter(tag)
	return &CurrencyFormatter{
		symbol:   symbol,
		printer:  printer,
		decimal:  between(printer.Sprint(number.Decimal(1.5, number.Scale(1))), 1, 1, "."),
		grouping: between(printer.Sprint(number.Decimal(1000)), 1, 3, ","),
	}
}

// between returns s without its first head and last tail runes.
func between(s string, head, tail int, fallback string) string {
	r := []rune(s)
	if len(r) <= head+tail {
		return fallback
	}
	return string(r[head : len(r)-tail])
}

var defaultFormatter = NewCurrencyFormatter("", "en")

// SetDefaultCurrency replaces the formatter used by FormatCurrency.
func SetDefaultCurrency(symbol, locale string) {
	defaultFormatter = NewCurrencyFormatter(symbol, locale)
}

// FormatCurrency formats with the default formatter.
func FormatCurrency(amount decimal.Decimal) string {
	return defaultFormatter.Format(amount)
}

// Format renders amount. The sign goes in front of the symbol.
func (f *CurrencyFormatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	whole, cents, _ := strings.Cut(rounded.StringFixed(2), ".")
	return sign + f.symbol + f.groupWhole(whole) + f.decimal + cents
}

// groupWhole groups the integer digits. Values past uint64 are grouped in
// threes with the locale's separator.
func (f *CurrencyFormatter) groupWhole(whole string) string {
	if n, err := strconv.ParseUint(whole, 10, 64); err == nil {
		return f.printer.Sprint(number.Decimal(n))
	}
	var b strings.Builder
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(f.grouping)
		}
		b.WriteRune(d)
	}
	return b.String()
}
