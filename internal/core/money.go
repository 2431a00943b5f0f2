// Package core implements the statement-period and cashback computation
// engine: pure functions over snapshots of cards, transactions, and cashback
// policies. Nothing in this package performs I/O or touches storage.
//
// This file contains money parsing and conversion helpers. Amounts are kept
// in integer cents everywhere; floating point appears only transiently inside
// the cashback percentage math and is rounded back to cents at the boundary.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseSignedDecimalToCents converts a signed decimal string to cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and an
// optional leading sign. A leading "-" marks an expense. Half-up rounding is
// applied on the third decimal place. Zero amounts are rejected because a
// transaction must move money in one direction or the other.
//
// Examples:
//
//	ParseSignedDecimalToCents("-12.34") -> -1234, nil
//	ParseSignedDecimalToCents("12,34")  -> 1234, nil
//	ParseSignedDecimalToCents("-0.005") -> -1, nil (rounds up)
func ParseSignedDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if fracPart == "" && len(parts) == 2 {
		return 0, ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents == 0 {
		return 0, ErrInvalidAmount
	}
	if negative {
		cents = -cents
	}
	return cents, nil
}

// Units returns the major currency unit value as a float64 for display.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// roundCents rounds a fractional cent value half-up (away from zero).
func roundCents(v float64) int64 {
	if v >= 0 {
		return int64(v + 0.5)
	}
	return int64(v - 0.5)
}
