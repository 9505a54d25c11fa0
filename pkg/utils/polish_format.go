// Package utils provides Polish display formatting and time helpers for docgen.
package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// GroupSeparator is the pl-PL thousands separator (no-break space).
const GroupSeparator = "\u00a0"

// FormatNumberPL formats a number the way pl-PL locale formatting does by
// default: up to three fraction digits, decimal comma, and digit groups of
// three separated by a no-break space once the integer part has five or more
// digits. e.g., 5000 → "5000", 15000 → "15 000", 2.5 → "2,5"
func FormatNumberPL(v float64) string {
	return FormatDecimalPL(v, 0, 3)
}

// FormatAmountPL formats a money amount with at least two fraction digits.
// e.g., 1500 → "1500,00", 12345.6 → "12 345,60"
func FormatAmountPL(v float64) string {
	return FormatDecimalPL(v, 2, 3)
}

// FormatDecimalPL formats v with between minFrac and maxFrac fraction digits.
func FormatDecimalPL(v float64, minFrac, maxFrac int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 0) {
		if v < 0 {
			return "-∞"
		}
		return "∞"
	}
	if maxFrac < minFrac {
		maxFrac = minFrac
	}

	negative := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', maxFrac, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")
	for len(fracPart) > minFrac && strings.HasSuffix(fracPart, "0") {
		fracPart = fracPart[:len(fracPart)-1]
	}

	out := groupDigits(intPart)
	if fracPart != "" {
		out += "," + fracPart
	}
	if negative && strings.Trim(out, "0,"+GroupSeparator) != "" {
		out = "-" + out
	}
	return out
}

// groupDigits inserts GroupSeparator every three digits from the right.
// Four-digit numbers stay ungrouped, matching pl-PL minimum grouping.
func groupDigits(digits string) string {
	if len(digits) < 5 {
		return digits
	}
	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(GroupSeparator)
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

var monthsGenitive = [...]string{
	"stycznia", "lutego", "marca", "kwietnia", "maja", "czerwca",
	"lipca", "sierpnia", "września", "października", "listopada", "grudnia",
}

// FormatDateLongPL formats a date as "07 października 2026".
func FormatDateLongPL(t time.Time) string {
	return t.Format("02") + " " + monthsGenitive[t.Month()-1] + " " + t.Format("2006")
}

// FormatDateShortPL formats a date as "17.10.2026".
func FormatDateShortPL(t time.Time) string {
	return t.Format("02.01.2006")
}

// Slug lower-cases s and replaces whitespace runs with a dash. Characters
// that cannot appear in file names are dropped; Polish letters are kept.
// e.g., "Salon Beauty  Anna" → "salon-beauty-anna"
func Slug(s string) string {
	var sb strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsSpace(r):
			pendingDash = true
			continue
		case strings.ContainsRune(`/\:*?"<>|`, r), unicode.IsControl(r):
			continue
		}
		if pendingDash && sb.Len() > 0 {
			sb.WriteByte('-')
		}
		pendingDash = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// DocumentNumberFileName turns a document number such as "FV/2026/001" into
// a file name base ("FV-2026-001").
func DocumentNumberFileName(number string) string {
	return strings.ReplaceAll(strings.TrimSpace(number), "/", "-")
}
