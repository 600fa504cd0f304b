package model

import (
	"fmt"
	"time"
)

// DateTimeLayout is the textual timestamp format used on every API
// boundary. External callers depend on this exact format.
const DateTimeLayout = "2006-01-02 15:04:05"

// DateTime is a time.Time that marshals as "yyyy-MM-dd HH:mm:ss".
type DateTime time.Time

// Now returns the current instant as a DateTime, truncated to seconds.
func Now() DateTime {
	return DateTime(time.Now().Truncate(time.Second))
}

// ParseDateTime parses a timestamp in the API wire format.
func ParseDateTime(s string) (DateTime, error) {
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return DateTime{}, fmt.Errorf("parse datetime %q: want format %s", s, DateTimeLayout)
	}
	return DateTime(t), nil
}

// Time returns the underlying time.Time.
func (d DateTime) Time() time.Time { return time.Time(d) }

// IsZero reports whether d is the zero instant.
func (d DateTime) IsZero() bool { return time.Time(d).IsZero() }

// String formats d in the API wire format.
func (d DateTime) String() string { return time.Time(d).Format(DateTimeLayout) }

// MarshalJSON encodes d as a quoted wire-format string, or null when zero.
func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted wire-format string; null yields the zero value.
func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*d = DateTime{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("parse datetime: not a JSON string: %s", s)
	}
	parsed, err := ParseDateTime(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
