package task

import (
	"fmt"
	"strings"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/view"
)

// All disables the category or status filter.
const All = "All"

// Status selects tasks by completion.
type Status string

const (
	AnyStatus  Status = All
	Completed  Status = "Completed"
	Incomplete Status = "Incomplete"
)

// ParseStatus matches raw case-insensitively. Empty means AnyStatus.
func ParseStatus(raw string) (Status, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return AnyStatus, nil
	}
	for _, s := range []Status{AnyStatus, Completed, Incomplete} {
		if strings.EqualFold(string(s), trimmed) {
			return s, nil
		}
	}
	return AnyStatus, fmt.Errorf("task: unknown status %q", raw)
}

// Filter is the checklist filter bar: category, completion and due date.
// Empty or All fields do not constrain the result.
type Filter struct {
	Category Category
	Status   Status
	DueDate  calendar.Date
}

func (f Filter) predicates() []view.Predicate[Task] {
	return []view.Predicate[Task]{
		view.When(f.Category != "" && f.Category != All, func(t Task) bool {
			return t.Category == f.Category
		}),
		view.When(f.Status == Completed || f.Status == Incomplete, func(t Task) bool {
			return t.Completed == (f.Status == Completed)
		}),
		view.When(!f.DueDate.IsZero(), func(t Task) bool {
			return t.DueDate.Equal(f.DueDate)
		}),
	}
}

// Apply returns the tasks matching every active field, in input order.
func (f Filter) Apply(tasks []Task) []Task {
	return view.Filter(tasks, f.predicates()...)
}
