package task

import (
	"sort"

	"github.com/shopspring/decimal"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/view"
)

// CategoryStats counts tasks of one category.
type CategoryStats struct {
	Category  Category `json:"category"`
	Total     int      `json:"total"`
	Completed int      `json:"completed"`
	// Percent is the completed share rounded to a whole percent.
	Percent int `json:"percent"`
}

// Stats summarises completion across a task list.
type Stats struct {
	Total      int             `json:"total"`
	Completed  int             `json:"completed"`
	Incomplete int             `json:"incomplete"`
	Categories []CategoryStats `json:"categories"`
}

// Summarize computes completion counts overall and per category. Categories
// without tasks are left out.
func Summarize(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	s.Completed = view.Count(tasks, func(t Task) bool { return t.Completed })
	s.Incomplete = s.Total - s.Completed
	for _, c := range Categories() {
		in := Filter{Category: c}.Apply(tasks)
		if len(in) == 0 {
			continue
		}
		done := view.Count(in, func(t Task) bool { return t.Completed })
		s.Categories = append(s.Categories, CategoryStats{
			Category:  c,
			Total:     len(in),
			Completed: done,
			Percent:   percent(done, len(in)),
		})
	}
	return s
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(part * 100)).Div(decimal.NewFromInt(int64(whole))).Round(0).IntPart())
}

// DueMark summarises the tasks due on one day, as shown on a calendar.
type DueMark struct {
	Date      calendar.Date `json:"date"`
	Total     int           `json:"total"`
	Completed int           `json:"completed"`
}

// Done reports whether every task due that day is completed.
func (m DueMark) Done() bool {
	return m.Total > 0 && m.Total == m.Completed
}

// DueMarks returns one mark per distinct due date, ordered by date.
func DueMarks(tasks []Task) []DueMark {
	byDay := make(map[string]*DueMark)
	for _, t := range tasks {
		if t.DueDate.IsZero() {
			continue
		}
		key := t.DueDate.String()
		m, ok := byDay[key]
		if !ok {
			m = &DueMark{Date: t.DueDate}
			byDay[key] = m
		}
		m.Total++
		if t.Completed {
			m.Completed++
		}
	}
	marks := make([]DueMark, 0, len(byDay))
	for _, m := range byDay {
		marks = append(marks, *m)
	}
	sort.Slice(marks, func(i, j int) bool {
		return marks[i].Date.Before(marks[j].Date)
	})
	return marks
}
