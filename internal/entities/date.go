package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DateInputLayout is the value format of HTML date inputs.
	DateInputLayout = "2006-01-02"
	// DateDisplayLayout renders dates for list rows, e.g. "Sat Dec 16 1775".
	DateDisplayLayout = "Mon Jan 02 2006"
	// MissingDate is shown in place of an absent date.
	MissingDate = "N/A"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	DateInputLayout,
}

// Date is a calendar date as exchanged with the catalog API. It accepts full
// timestamps and bare YYYY-MM-DD values.
type Date struct {
	time.Time
}

// NewDate wraps t, normalised to UTC.
func NewDate(t time.Time) *Date {
	return &Date{Time: t.UTC()}
}

// ParseDate parses any of the accepted layouts.
func ParseDate(s string) (*Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t), nil
		}
	}
	return nil, fmt.Errorf("unrecognised date %q", s)
}

// Input formats the date for a date input; absent dates give "".
func (d *Date) Input() string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.UTC().Format(DateInputLayout)
}

// Display formats the date for a list row; absent dates give MissingDate.
func (d *Date) Display() string {
	if d == nil || d.IsZero() {
		return MissingDate
	}
	return d.UTC().Format(DateDisplayLayout)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339))
}
