package utils

import (
	"time"
)

// Warsaw is the Europe/Warsaw location used for document dates.
var Warsaw *time.Location

func init() {
	var err error
	Warsaw, err = time.LoadLocation("Europe/Warsaw")
	if err != nil {
		// Fallback: fixed CET if the tz database is not available
		Warsaw = time.FixedZone("CET", 1*60*60)
	}
}

// DateLayout is the form date format ("2026-10-17").
const DateLayout = "2006-01-02"

// NowWarsaw returns the current time in Warsaw.
func NowWarsaw() time.Time {
	return time.Now().In(Warsaw)
}

// ToWarsaw converts a time.Time to Warsaw time.
func ToWarsaw(t time.Time) time.Time {
	return t.In(Warsaw)
}

// StartOfDay returns midnight of t's calendar day in Warsaw.
func StartOfDay(t time.Time) time.Time {
	d := t.In(Warsaw)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, Warsaw)
}

// TodayWarsaw returns midnight of the current Warsaw day.
func TodayWarsaw() time.Time {
	return StartOfDay(time.Now())
}

// AddDays moves t by n calendar days, keeping the wall-clock time across DST changes.
func AddDays(t time.Time, n int) time.Time {
	return t.In(Warsaw).AddDate(0, 0, n)
}

// ParseDateWarsaw parses a date string in "2006-01-02" format and returns it in Warsaw.
func ParseDateWarsaw(dateStr string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, dateStr, Warsaw)
}

// FormatDateWarsaw formats a time.Time to "2006-01-02" in Warsaw.
func FormatDateWarsaw(t time.Time) string {
	return t.In(Warsaw).Format(DateLayout)
}

// FormatDateTimeWarsaw formats a time.Time to "17.10.2026 14:05" in Warsaw.
func FormatDateTimeWarsaw(t time.Time) string {
	return t.In(Warsaw).Format("02.01.2006 15:04")
}
