// Package calendar provides a calendar date without time of day.
package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LayoutISO is the wire and display format of a Date.
const LayoutISO = "2006-01-02"

// Date is a calendar day. The zero value means "no date".
type Date struct {
	t time.Time
}

// New returns the date for year, month and day.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Of returns the calendar day of t in t's location.
func Of(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Today returns the current local date.
func Today() Date {
	return Of(time.Now())
}

// Parse reads a YYYY-MM-DD date. Empty input yields the zero Date.
func Parse(v string) (Date, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return Date{}, nil
	}
	t, err := time.Parse(LayoutISO, v)
	if err != nil {
		return Date{}, fmt.Errorf("calendar: invalid date %q, want YYYY-MM-DD", v)
	}
	return Date{t: t}, nil
}

// MustParse is Parse for tests and fixed tables; it panics on error.
func MustParse(v string) Date {
	d, err := Parse(v)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Year() int {
	return d.t.Year()
}

func (d Date) Month() time.Month {
	return d.t.Month()
}

func (d Date) Day() int {
	return d.t.Day()
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

// SameMonth reports whether both dates fall in the same month of the same year.
func (d Date) SameMonth(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month()
}

// AddMonths shifts the date by n months, pinned to the first of the month.
func (d Date) AddMonths(n int) Date {
	return New(d.Year(), d.Month()+time.Month(n), 1)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(LayoutISO)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
