package app

import (
	"context"
	"sort"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/task"
)

// ReviewItem is an open task that needs attention.
type ReviewItem struct {
	Task    task.Task
	Overdue bool
	// Days until the due date; negative when overdue.
	Days int
}

// Review returns incomplete tasks due before today plus horizon days, the
// most overdue first. Tasks without a due date are never candidates.
func (s *Service) Review(ctx context.Context, today calendar.Date, horizon int) ([]ReviewItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if horizon < 0 {
		horizon = 0
	}
	limit := today.Time().AddDate(0, 0, horizon)

	var items []ReviewItem
	for _, t := range s.Tasks.List() {
		if t.Completed || t.DueDate.IsZero() {
			continue
		}
		due := t.DueDate.Time()
		if !due.Before(limit) {
			continue
		}
		items = append(items, ReviewItem{
			Task:    t,
			Overdue: t.DueDate.Before(today),
			Days:    daysBetween(today, t.DueDate),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Task.DueDate.Before(items[j].Task.DueDate)
	})
	return items, nil
}

func daysBetween(from, to calendar.Date) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}
