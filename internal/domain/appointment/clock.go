package appointment

import (
	"fmt"
	"time"
)

const (
	ClockLayout      = "15:04:05"
	ShortClockLayout = "15:04"
	DateLayout       = "2006-01-02"
)

// Clock is a wall-clock time of day, independent of any date.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ParseClock accepts both "HH:mm:ss" and "HH:mm".
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		t, err = time.Parse(ShortClockLayout, s)
		if err != nil {
			return Clock{}, fmt.Errorf("parse clock %q: %w", s, ErrInvalidTime)
		}
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// On places the clock on the calendar day of date, in date's location.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		c.Hour, c.Minute, c.Second, 0,
		date.Location(),
	)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// DayBounds returns [00:00, next day 00:00) for the day of date.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

// BookingKey scopes the booking mutual exclusion to one practitioner day.
func BookingKey(practitionerID string, date time.Time) string {
	return "booking:" + practitionerID + ":" + date.Format(DateLayout)
}
