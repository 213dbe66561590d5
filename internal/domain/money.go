package domain

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is the ISO code used when configuration supplies none.
const DefaultCurrency = "BDT"

// FormatAmount renders a minor-unit amount for display in the given currency.
// This is the only place monetary values are rounded; all internal arithmetic
// stays in exact int64 minor units.
func FormatAmount(minor int64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %d", code, minor)
	}

	scale, _ := currency.Cash.Rounding(unit)
	value := float64(minor) / math.Pow10(scale)

	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(value)))
}
