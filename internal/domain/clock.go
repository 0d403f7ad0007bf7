package domain

import (
	"fmt"
	"time"
)

// ClockTime is a time of day expressed as minutes from midnight (0..1439).
type ClockTime int

// NewClockTime builds a ClockTime from an hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClockTime parses a "15:04"-style string.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	return NewClockTime(t.Hour(), t.Minute()), nil
}

// ClockOf returns the time of day of t.
func ClockOf(t time.Time) ClockTime {
	return NewClockTime(t.Hour(), t.Minute())
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On returns t's date with the time of day replaced by c, seconds zeroed.
func (c ClockTime) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour(), c.Minute(), 0, 0, t.Location())
}
