package domain

import (
	"strings"
	"time"

	"github.com/ilsalary/net-salary-calculator/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

// Date is a calendar date that may be absent. Text that does not parse as a
// date decodes to an absent Date rather than an error.
type Date struct {
	time.Time
}

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf wraps a time value, truncating it to the calendar day.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return Date{dateutil.DateOnly(t)}
}

// IsSet reports whether the date is present.
func (d Date) IsSet() bool { return !d.Time.IsZero() }

// String renders the date as YYYY-MM-DD, or an empty string when absent.
func (d Date) String() string {
	if !d.IsSet() {
		return ""
	}
	return d.Time.Format(dateutil.DateLayout)
}

func (d *Date) setFromText(text string) {
	if t, ok := dateutil.ParseDate(text); ok {
		d.Time = t
		return
	}
	d.Time = time.Time{}
}

// UnmarshalYAML accepts any scalar; unparsable values leave the date absent.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode || value.ShortTag() == "!!null" {
		d.Time = time.Time{}
		return nil
	}
	d.setFromText(value.Value)
	return nil
}

// MarshalYAML writes the date as YYYY-MM-DD or null.
func (d Date) MarshalYAML() (any, error) {
	if !d.IsSet() {
		return nil, nil
	}
	return d.String(), nil
}

// UnmarshalJSON accepts a JSON string or null; unparsable strings leave the date absent.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || len(s) < 2 || s[0] != '"' {
		d.Time = time.Time{}
		return nil
	}
	d.setFromText(s[1 : len(s)-1])
	return nil
}

// MarshalJSON writes the date as "YYYY-MM-DD" or null.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.IsSet() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}
