// Package core provides money parsing and handling utilities.
//
// This file contains the functions that turn user-typed amounts into exact
// decimals and back into display strings.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string to an exact decimal value.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Negative
// values and anything that is not a finite number are rejected with
// ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.50") -> 12.5, nil
//	ParseAmount("12,50") -> 12.5, nil
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
//	ParseAmount("1e3")   -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	// Exponent notation would let a short input expand into millions of digits.
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative value %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// FormatAmount renders an amount with exactly two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// SharePercent returns floor(100*part/total), or 0 when total is not positive.
func SharePercent(part, total decimal.Decimal) int {
	if !total.IsPositive() {
		return 0
	}
	scaled := part.Mul(decimal.NewFromInt(100))
	q := scaled.Div(total).Floor()
	// Div rounds, so the quotient may land one off near an integer boundary.
	if q.Mul(total).GreaterThan(scaled) {
		q = q.Sub(decimal.NewFromInt(1))
	} else if q.Add(decimal.NewFromInt(1)).Mul(total).LessThanOrEqual(scaled) {
		q = q.Add(decimal.NewFromInt(1))
	}
	return int(q.IntPart())
}
