package model

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout is the ISO 8601 calendar date layout used as primary key.
	DateLayout = "2006-01-02"

	// TimeOfDayLayout is the zero-padded 24-hour layout with minute precision.
	TimeOfDayLayout = "15:04"
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)

// DailyRecord is the first and last time a matching network was seen on a day.
type DailyRecord struct {
	Date     string `json:"date"`
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// Widen returns the record extended to include timeOfDay.
func (r DailyRecord) Widen(timeOfDay string) DailyRecord {
	if timeOfDay < r.Earliest {
		r.Earliest = timeOfDay
	}

	if timeOfDay > r.Latest {
		r.Latest = timeOfDay
	}

	return r
}

// FormatDate renders t as a calendar date in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTimeOfDay renders t as HH:MM in t's location.
func FormatTimeOfDay(t time.Time) string {
	return t.Format(TimeOfDayLayout)
}

// ValidateDate checks that s is exactly a YYYY-MM-DD calendar date.
func ValidateDate(s string) error {
	return validateFixed(s, DateLayout, ErrInvalidDate)
}

// ValidateTimeOfDay checks that s is exactly a zero-padded HH:MM time.
func ValidateTimeOfDay(s string) error {
	return validateFixed(s, TimeOfDayLayout, ErrInvalidTimeOfDay)
}

// time.Parse accepts some non-padded input; round-tripping enforces the width.
func validateFixed(s, layout string, sentinel error) error {
	t, err := time.Parse(layout, s)
	if err != nil || t.Format(layout) != s {
		return fmt.Errorf("%w: %q", sentinel, s)
	}

	return nil
}
