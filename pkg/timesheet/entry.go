// Package timesheet records check-in/check-out intervals.
package timesheet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tableflip.dev/daybook/pkg/collection"
	"tableflip.dev/daybook/pkg/timeutil"
	"tableflip.dev/daybook/pkg/view"
)

const (
	// Key is the storage key of the time entry collection.
	Key = "timeEntries"
	// DateLayout renders the display date of an entry, e.g. "Dec 15".
	DateLayout = "Jan 2"

	// WeekEntries and MonthEntries are how many of the newest entries make up
	// the week and month totals.
	WeekEntries  = 7
	MonthEntries = 30
	// ChartEntries is how many of the newest entries the chart shows.
	ChartEntries = 7
)

// Entry is one worked interval. TotalHours is computed once when the entry
// is created and stored as is.
type Entry struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   string  `json:"checkOut"`
	TotalHours float64 `json:"totalHours"`
}

// NewEntry builds an entry for date, computing TotalHours from the clocks.
func NewEntry(date, checkIn, checkOut string) (Entry, error) {
	hours, err := timeutil.Hours(checkIn, checkOut)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Date:       date,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalHours: hours,
	}, nil
}

// Validate reports why e cannot be stored.
func Validate(e Entry) error {
	if strings.TrimSpace(e.Date) == "" {
		return errors.New("timesheet: date required")
	}
	if _, err := timeutil.ParseClock(e.CheckIn); err != nil {
		return fmt.Errorf("timesheet: check-in: %w", err)
	}
	if _, err := timeutil.ParseClock(e.CheckOut); err != nil {
		return fmt.Errorf("timesheet: check-out: %w", err)
	}
	if e.TotalHours < 0 {
		return fmt.Errorf("timesheet: negative total hours %v", e.TotalHours)
	}
	return nil
}

// Schema describes time entries to a collection store. New entries go first.
func Schema() collection.Schema[Entry] {
	return collection.Schema[Entry]{
		Key:       Key,
		ID:        func(e Entry) string { return e.ID },
		WithID:    func(e Entry, id string) Entry { e.ID = id; return e },
		Validate:  Validate,
		Placement: collection.Prepend,
	}
}

// Duration returns TotalHours as a Duration.
func (e Entry) Duration() time.Duration {
	return timeutil.HoursDuration(e.TotalHours)
}

// FormatDate renders t as an entry display date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Summary holds the hour totals of the newest entries.
type Summary struct {
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

// Summarize totals the newest WeekEntries and MonthEntries entries.
func Summarize(entries []Entry) Summary {
	return Summary{
		Week:  TotalHours(view.Window(entries, WeekEntries)),
		Month: TotalHours(view.Window(entries, MonthEntries)),
	}
}

// TotalHours sums the stored hours, rounded to one fractional digit.
func TotalHours(entries []Entry) float64 {
	return timeutil.RoundHours(view.Sum(entries, func(e Entry) decimal.Decimal {
		return decimal.NewFromFloat(e.TotalHours)
	}))
}

// Chart returns the hours of the newest ChartEntries entries, labelled by
// day of month.
func Chart(entries []Entry) view.Series {
	return view.Extract(entries, ChartEntries, DayLabel, func(e Entry) float64 {
		return e.TotalHours
	})
}

// DayLabel returns the day-of-month token of an entry date such as "Dec 15"
// or "15 Dec", or the whole date when it has no numeric token.
func DayLabel(e Entry) string {
	fields := strings.Fields(e.Date)
	for _, f := range fields {
		if f != "" && strings.Trim(f, "0123456789") == "" {
			return f
		}
	}
	return e.Date
}
