package task

import "tableflip.dev/daybook/pkg/calendar"

// Samples returns the demo checklist used to seed an empty store.
func Samples() []Task {
	return []Task{
		{ID: "1", Title: "Complete project proposal", Category: Work, DueDate: calendar.MustParse("2023-12-15")},
		{ID: "2", Title: "Buy groceries", Category: Personal, DueDate: calendar.MustParse("2023-12-10"), Completed: true},
		{ID: "3", Title: "Study for exam", Category: Study, DueDate: calendar.MustParse("2023-12-20")},
		{ID: "4", Title: "Go to the gym", Category: Health, DueDate: calendar.MustParse("2023-12-12")},
		{ID: "5", Title: "Call mom", Category: Personal, DueDate: calendar.MustParse("2023-12-11")},
	}
}
