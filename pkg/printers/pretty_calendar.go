package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/task"
)

const width = len("11 12 13 14 15 16 17") // an example week

// DueCalendar prints the month of then with due dates highlighted: bold for
// days with open tasks, green when every task due that day is done.
func (pp *PrettyPrint) DueCalendar(then calendar.Date, today calendar.Date, marks []task.DueMark) {
	byDay := make(map[int]task.DueMark)
	for _, m := range marks {
		if m.Date.SameMonth(then) {
			byDay[m.Date.Day()] = m
		}
	}

	tf := color.New(color.FgWhite, color.Italic)
	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)

	d := StartDay(then)
	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	days := DaysIn(then)
	for i := 1; i <= days; i++ {
		attrs := dayAttrs(byDay, i)
		if today.SameMonth(then) && today.Day() == i {
			attrs = append(attrs, color.Underline)
		}
		_, _ = color.New(attrs...).Fprintf(pp.out(), "%2d ", i)

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

func dayAttrs(byDay map[int]task.DueMark, day int) []color.Attribute {
	mark, ok := byDay[day]
	switch {
	case !ok:
		return []color.Attribute{color.Faint, color.FgWhite}
	case mark.Done():
		return []color.Attribute{color.Bold, color.FgGreen}
	default:
		return []color.Attribute{color.Bold, color.FgHiWhite}
	}
}

func NextMonth(then calendar.Date) calendar.Date {
	return then.AddMonths(1)
}

func DaysIn(then calendar.Date) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then calendar.Date) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
