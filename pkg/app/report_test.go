package app

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/task"
)

func TestReportOverSamples(t *testing.T) {
	svc := open(t, store.NewMemory(), Options{Samples: true})
	r, err := svc.Report(context.Background(), calendar.Date{}, calendar.Date{})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if r.Finance.Income.StringFixed(2) != "4300.00" ||
		r.Finance.Expense.StringFixed(2) != "1350.00" ||
		r.Finance.Balance.StringFixed(2) != "2950.00" {
		t.Fatalf("unexpected totals %+v", r.Finance)
	}
	if r.Hours.Week != 43 {
		t.Fatalf("unexpected hours %+v", r.Hours)
	}
	if r.CheckedIn || r.Session != nil {
		t.Fatalf("unexpected session")
	}
	if r.Tasks.Total != 5 {
		t.Fatalf("unexpected task stats %+v", r.Tasks)
	}
}

func TestReportWindowsTransactions(t *testing.T) {
	svc := open(t, store.NewMemory(), Options{Samples: true})

	// Swapped bounds are normalized.
	r, err := svc.Report(context.Background(),
		calendar.New(2023, time.December, 10), calendar.New(2023, time.December, 6))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !r.Since.Equal(calendar.New(2023, time.December, 6)) {
		t.Fatalf("bounds not normalized: %v..%v", r.Since, r.Until)
	}
	if !r.Finance.Income.IsZero() || r.Finance.Expense.StringFixed(2) != "290.00" {
		t.Fatalf("unexpected totals %+v", r.Finance)
	}
	if len(r.Breakdown) != 3 || r.Breakdown[0].Category != "Food" || r.Breakdown[0].Amount.StringFixed(2) != "235.00" {
		t.Fatalf("unexpected breakdown %+v", r.Breakdown)
	}
}

func TestReview(t *testing.T) {
	ctx := context.Background()
	svc := open(t, store.NewMemory(), Options{})
	today := calendar.New(2023, time.December, 15)

	add := func(title string, due calendar.Date) task.Task {
		t.Helper()
		created, err := svc.AddTask(ctx, title, "", task.Personal, due)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		return created
	}
	late := add("late", calendar.New(2023, time.December, 10))
	soon := add("soon", calendar.New(2023, time.December, 16))
	add("later", calendar.New(2024, time.January, 30))
	add("undated", calendar.Date{})
	done := add("done", calendar.New(2023, time.December, 1))
	if _, err := svc.ToggleTask(ctx, done.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	items, err := svc.Review(ctx, today, 3)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 candidates, got %+v", items)
	}
	if items[0].Task.ID != late.ID || !items[0].Overdue || items[0].Days != -5 {
		t.Fatalf("unexpected first candidate %+v", items[0])
	}
	if items[1].Task.ID != soon.ID || items[1].Overdue || items[1].Days != 1 {
		t.Fatalf("unexpected second candidate %+v", items[1])
	}
}
