package dateutil

import (
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date layout used in input files and responses.
const DateLayout = "2006-01-02"

// acceptedLayouts are tried in order when parsing user supplied dates.
var acceptedLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
	"2006/01/02",
}

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// MonthsBetween returns the number of calendar months from one date to another,
// ignoring the day of month. The result is negative when to precedes from.
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// WholeYearsBetween returns the number of completed calendar-month years from one date to another.
// Negative spans return -1 so callers can distinguish future dates from the current year.
func WholeYearsBetween(from, to time.Time) int {
	months := MonthsBetween(from, to)
	if months < 0 {
		return -1
	}
	return months / 12
}

// ParseDate parses a calendar date in any of the accepted layouts.
func ParseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return DateOnly(t), true
		}
	}
	return time.Time{}, false
}

// DateOnly truncates a time to midnight UTC of the same calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BirthYearForAge returns the birth year of someone who is age years old in the year of atDate.
func BirthYearForAge(age int, atDate time.Time) int {
	return atDate.Year() - age
}
