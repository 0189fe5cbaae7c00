// Package timeutil holds time-of-day parsing and the interval arithmetic used
// by time tracking.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ClockLayout renders a time of day as "09:00 AM".
const ClockLayout = "03:04 PM"

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// ErrInvalidClock is returned for input that is not a 12-hour clock time.
var ErrInvalidClock = errors.New("timeutil: invalid clock time")

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)

// ParseClock converts a 12-hour clock time such as "09:00 AM" into minutes
// since midnight. 12 AM is hour 0 and 12 PM stays hour 12.
func ParseClock(v string) (int, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return 0, fmt.Errorf("%w %q, want hh:mm AM|PM", ErrInvalidClock, v)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, fmt.Errorf("%w %q", ErrInvalidClock, v)
	}
	pm := strings.EqualFold(m[3], "PM")
	switch {
	case hour == 12 && !pm:
		hour = 0
	case hour != 12 && pm:
		hour += 12
	}
	return hour*minutesPerHour + minute, nil
}

// FormatClock renders the time of day of t as "03:04 PM".
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// ElapsedMinutes returns the minutes from checkIn to checkOut. Both are
// 12-hour clock times on the same nominal day; a check-out earlier than the
// check-in wraps to the next day, so the result is always in [0, 1440).
func ElapsedMinutes(checkIn, checkOut string) (int, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return 0, err
	}
	diff := out - in
	if diff < 0 {
		diff += minutesPerDay
	}
	return diff, nil
}

// Hours returns the elapsed hours between checkIn and checkOut rounded half
// away from zero to one fractional digit.
func Hours(checkIn, checkOut string) (float64, error) {
	minutes, err := ElapsedMinutes(checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	return RoundHours(decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(minutesPerHour))), nil
}

// RoundHours rounds to one fractional digit, half away from zero.
func RoundHours(hours decimal.Decimal) float64 {
	return hours.Round(1).InexactFloat64()
}

// At returns the time on day's date at minutes since midnight, in day's
// location.
func At(day time.Time, minutes int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, minutes, 0, 0, day.Location())
}
