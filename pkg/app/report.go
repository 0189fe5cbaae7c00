package app

import (
	"context"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/finance"
	"tableflip.dev/daybook/pkg/task"
	"tableflip.dev/daybook/pkg/timesheet"
)

// ReportResult summarizes every domain. Transactions are limited to the
// window; tasks and time entries are reported as a whole since time entries
// carry no year.
type ReportResult struct {
	Since calendar.Date `json:"since"`
	Until calendar.Date `json:"until"`

	Tasks     task.Stats        `json:"tasks"`
	Finance   finance.Totals    `json:"finance"`
	Breakdown []finance.Slice   `json:"breakdown"`
	Hours     timesheet.Summary `json:"hours"`

	CheckedIn bool               `json:"checkedIn"`
	Session   *timesheet.Session `json:"session,omitempty"`
}

// Report derives a dashboard over the loaded collections. A zero bound is
// open.
func (s *Service) Report(ctx context.Context, since, until calendar.Date) (ReportResult, error) {
	if err := ctx.Err(); err != nil {
		return ReportResult{}, err
	}
	if !since.IsZero() && !until.IsZero() && until.Before(since) {
		since, until = until, since
	}

	txs := make([]finance.Transaction, 0)
	for _, tx := range s.Transactions.List() {
		if !since.IsZero() && tx.Date.Before(since) {
			continue
		}
		if !until.IsZero() && until.Before(tx.Date) {
			continue
		}
		txs = append(txs, tx)
	}

	result := ReportResult{
		Since:     since,
		Until:     until,
		Tasks:     task.Summarize(s.Tasks.List()),
		Finance:   finance.Total(txs),
		Breakdown: finance.Breakdown(txs, finance.Categories()),
		Hours:     timesheet.Summarize(s.Time.Entries().List()),
	}
	if session, ok := s.Time.Session(); ok {
		result.CheckedIn = true
		result.Session = &session
	}
	return result, nil
}
