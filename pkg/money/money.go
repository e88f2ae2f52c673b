// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

// Package money formats exact decimal amounts for display.
//
// Amounts stay [decimal.Decimal] everywhere in the client; this package is
// the only place they are turned into text, using the ISO 4217 tables of
// golang.org/x/text for currency codes and minor-unit precision.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// NormalizeCode returns the canonical ISO 4217 code for code, or fallback
// when code is empty or unknown.
func NormalizeCode(code, fallback string) string {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return fallback
	}
	return unit.String()
}

// Format renders amount as "<CODE> <grouped amount>" using the minor-unit
// precision of the currency (two digits when the code is unknown). The amount
// is rounded in decimal, never through a float, so large totals stay exact.
func Format(amount decimal.Decimal, code string) string {
	digits := 2
	label := strings.ToUpper(strings.TrimSpace(code))

	if unit, err := currency.ParseISO(label); err == nil {
		scale, _ := currency.Standard.Rounding(unit)
		digits = scale
		label = unit.String()
	}

	text := group(amount.StringFixed(int32(digits)))

	if label == "" {
		return text
	}
	return label + " " + text
}

// group inserts thousands separators into the integer part of a plain
// decimal string ("-1234567.50" becomes "-1,234,567.50").
func group(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}

	whole, fraction, hasFraction := strings.Cut(fixed, ".")

	var out strings.Builder
	out.WriteString(sign)
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(digit)
	}
	if hasFraction {
		out.WriteByte('.')
		out.WriteString(fraction)
	}
	return out.String()
}
