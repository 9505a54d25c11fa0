package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func nbsp(s string) string {
	return strings.ReplaceAll(s, " ", GroupSeparator)
}

func TestFormatNumberPL(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0"},
		{5, "5"},
		{5000, "5000"},
		{15000, "15 000"},
		{150000, "150 000"},
		{1234567, "1 234 567"},
		{2.33, "2,33"},
		{20.41, "20,41"},
		{1.23456, "1,235"},
		{-15000.5, "-15 000,5"},
		{-0.0001, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, nbsp(tt.expected), FormatNumberPL(tt.input))
		})
	}
}

func TestFormatAmountPL(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0,00"},
		{1500, "1500,00"},
		{12345.6, "12 345,60"},
		{99.999, "99,999"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, nbsp(tt.expected), FormatAmountPL(tt.input))
		})
	}
}

func TestFormatDatePL(t *testing.T) {
	d := time.Date(2026, 10, 7, 12, 0, 0, 0, Warsaw)
	assert.Equal(t, "07 października 2026", FormatDateLongPL(d))
	assert.Equal(t, "07.10.2026", FormatDateShortPL(d))

	jan := time.Date(2025, 1, 31, 0, 0, 0, 0, Warsaw)
	assert.Equal(t, "31 stycznia 2025", FormatDateLongPL(jan))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Salon Beauty", "salon-beauty"},
		{"  Studio   Urody Ewa ", "studio-urody-ewa"},
		{"Zakład Fryzjerski Łódź", "zakład-fryzjerski-łódź"},
		{"A/B: test?", "ab-test"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slug(tt.input))
		})
	}
}

func TestDocumentNumberFileName(t *testing.T) {
	assert.Equal(t, "FV-2026-001", DocumentNumberFileName("FV/2026/001"))
}
