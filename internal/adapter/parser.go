// Package adapter turns raw report form strings into chart series.
//
// Form values arrive as locale-formatted text ("15 000", "15,000"). Parsing is
// isolated behind NumberParser so another grouping convention can be swapped
// in without touching the renderers.
package adapter

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// NumberParser converts a form value into a number. Absent or unparseable
// input yields 0.
type NumberParser interface {
	Parse(s string) float64
}

// GroupingParser removes digit-grouping characters and all whitespace, then
// reads the longest leading decimal number, the way a browser's parseFloat
// does. "2.33%" parses as 2.33 and "abc" as 0.
//
// Separators are always treated as grouping, never as a decimal mark, so
// "2,5" parses as 25 under PolishGrouping.
type GroupingParser struct {
	Separators []rune
}

// PolishGrouping is the convention used by the report form: commas and
// spaces (including NBSP) group thousands, a dot marks decimals.
var PolishGrouping = GroupingParser{Separators: []rune{','}}

// Parse implements NumberParser.
func (p GroupingParser) Parse(s string) float64 {
	if s == "" {
		return 0
	}
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		for _, sep := range p.Separators {
			if r == sep {
				return -1
			}
		}
		return r
	}, s)

	prefix := leadingNumber(cleaned)
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// leadingNumber returns the longest prefix of s that forms a decimal
// floating-point literal: [sign] digits [. digits] [e [sign] digits].
func leadingNumber(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	digits := i - intStart
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if digits > 0 || j > i+1 {
			digits += j - i - 1
			i = j
		}
	}
	if digits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			i = j
		}
	}
	return s[:i]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// SplitList splits a comma-separated form list. Unlike Parse it keeps empty
// items so positions line up between parallel lists.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
