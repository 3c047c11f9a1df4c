// Package currency converts between integer minor units and decimals and
// formats amounts for display.
package currency

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formats amounts in minor units for one locale.
type Formatter struct {
	tag     language.Tag
	symbol  string
	printer *message.Printer
}

// Default is used by the package level Format function. It is replaced
// at startup when a locale is configured.
var Default = New(language.MustParse("en-AU"), "$")

// New returns a Formatter for the locale and currency symbol.
func New(tag language.Tag, symbol string) *Formatter {
	return &Formatter{
		tag:     tag,
		symbol:  symbol,
		printer: message.NewPrinter(tag),
	}
}

// Configure replaces the Default formatter. It returns an error if the
// locale cannot be parsed.
func Configure(locale, symbol string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("invalid currency locale %q: %w", locale, err)
	}

	Default = New(tag, symbol)
	return nil
}

// Format formats an amount in minor units, e.g. 7000 => "$70.00".
func (f *Formatter) Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	units := FromCents(cents).InexactFloat64()
	return sign + f.symbol + f.printer.Sprint(number.Decimal(units, number.Scale(2)))
}

// FormatDecimal formats a decimal amount in major units.
func (f *Formatter) FormatDecimal(d decimal.Decimal) string {
	return f.Format(ToCents(d))
}

// Format formats cents with the Default formatter.
func Format(cents int64) string {
	return Default.Format(cents)
}

// FromCents converts minor units into a decimal in major units.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCents converts a decimal in major units to minor units, rounding half
// away from zero.
func ToCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// Ordinal returns n with its English ordinal suffix, e.g. 22 => "22nd".
func Ordinal(n int) string {
	suffix := "th"
	switch plural.Ordinal.MatchPlural(language.English, n, 0, 0, 0, 0) {
	case plural.One:
		suffix = "st"
	case plural.Two:
		suffix = "nd"
	case plural.Few:
		suffix = "rd"
	}

	return strconv.Itoa(n) + suffix
}
