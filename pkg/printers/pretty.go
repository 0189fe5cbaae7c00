// Package printers renders daybook records for the terminal.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/finance"
	"tableflip.dev/daybook/pkg/task"
	"tableflip.dev/daybook/pkg/timesheet"
	"tableflip.dev/daybook/pkg/timeutil"
	"tableflip.dev/daybook/pkg/view"
)

type PrettyPrint struct {
	ShowID   bool
	Currency string
	// Out defaults to color.Output.
	Out io.Writer
}

const none = " none\n\n"

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " record")
	default:
		_, _ = c.Fprintln(pp.out(), " records")
	}
}

// Warning prints a non-fatal problem, such as a failed write.
func (pp *PrettyPrint) Warning(err error) {
	y := color.New(color.FgYellow)
	_, _ = y.Fprintf(pp.out(), "warning: %v\n", err)
}

func (pp *PrettyPrint) empty() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), none)
}

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	return tbl
}

func (pp *PrettyPrint) flush(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) id(id string) string {
	return color.New(color.FgHiYellow, color.Italic, color.Faint).Sprint(id)
}

func (pp *PrettyPrint) Tasks(tasks ...task.Task) {
	if len(tasks) == 0 {
		pp.empty()
		return
	}
	done := color.New(color.Faint, color.CrossedOut)
	tbl := pp.table()
	for _, t := range tasks {
		box := "[ ]"
		title := t.Title
		if t.Completed {
			box = "[x]"
			title = done.Sprint(title)
		}
		due := ""
		if !t.DueDate.IsZero() {
			due = t.DueDate.String()
		}
		row := []interface{}{box, title, string(t.Category), due}
		if pp.ShowID {
			row = append([]interface{}{pp.id(t.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	pp.flush(tbl)
}

// Task prints every field of t.
func (pp *PrettyPrint) Task(t task.Task) {
	b := color.New(color.Bold)
	tbl := pp.table()
	tbl.AddRow(b.Sprint("ID"), t.ID)
	tbl.AddRow(b.Sprint("Title"), t.Title)
	if t.Description != "" {
		tbl.AddRow(b.Sprint("Description"), t.Description)
	}
	tbl.AddRow(b.Sprint("Category"), string(t.Category))
	if !t.DueDate.IsZero() {
		tbl.AddRow(b.Sprint("Due"), t.DueDate.String())
	}
	tbl.AddRow(b.Sprint("Completed"), fmt.Sprint(t.Completed))
	pp.flush(tbl)
}

func (pp *PrettyPrint) TaskStats(s task.Stats) {
	tbl := pp.table()
	tbl.AddRow("Completed", s.Completed)
	tbl.AddRow("Incomplete", s.Incomplete)
	pp.flush(tbl)

	if len(s.Categories) == 0 {
		return
	}
	b := color.New(color.Bold)
	tbl = pp.table()
	tbl.AddRow(b.Sprint("Category"), b.Sprint("Done"), b.Sprint("Progress"))
	for _, c := range s.Categories {
		tbl.AddRow(string(c.Category), fmt.Sprintf("%d/%d", c.Completed, c.Total), bar(float64(c.Percent), 100, 20)+fmt.Sprintf(" %d%%", c.Percent))
	}
	tbl.RightAlign(1)
	pp.flush(tbl)
}

func (pp *PrettyPrint) money(t finance.Transaction) string {
	s := finance.Format(t.Amount, pp.Currency)
	if t.Kind == finance.Expense {
		return color.New(color.FgRed).Sprint("-" + s)
	}
	return color.New(color.FgGreen).Sprint("+" + s)
}

func (pp *PrettyPrint) Transactions(txs ...finance.Transaction) {
	if len(txs) == 0 {
		pp.empty()
		return
	}
	tbl := pp.table()
	for _, t := range txs {
		row := []interface{}{t.Date.String(), t.Title, t.Category, pp.money(t)}
		if pp.ShowID {
			row = append([]interface{}{pp.id(t.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(len(tbl.Rows[0].Cells) - 1)
	pp.flush(tbl)
}

func (pp *PrettyPrint) Totals(t finance.Totals) {
	tbl := pp.table()
	tbl.AddRow("Income", color.New(color.FgGreen).Sprint(finance.Format(t.Income, pp.Currency)))
	tbl.AddRow("Expense", color.New(color.FgRed).Sprint(finance.Format(t.Expense, pp.Currency)))
	tbl.AddRow(color.New(color.Bold).Sprint("Balance"), finance.Format(t.Balance, pp.Currency))
	tbl.RightAlign(1)
	pp.flush(tbl)
}

func (pp *PrettyPrint) Breakdown(slices []finance.Slice) {
	if len(slices) == 0 {
		pp.empty()
		return
	}
	peak := 0.0
	for _, s := range slices {
		if v := s.Amount.InexactFloat64(); v > peak {
			peak = v
		}
	}
	tbl := pp.table()
	for _, s := range slices {
		tbl.AddRow(s.Category, finance.Format(s.Amount, pp.Currency), bar(s.Amount.InexactFloat64(), peak, 30))
	}
	tbl.RightAlign(1)
	pp.flush(tbl)
}

func (pp *PrettyPrint) Months(months []finance.Month) {
	if len(months) == 0 {
		pp.empty()
		return
	}
	b := color.New(color.Bold)
	tbl := pp.table()
	tbl.AddRow(b.Sprint("Month"), b.Sprint("Income"), b.Sprint("Expense"))
	for _, m := range months {
		tbl.AddRow(m.Label, finance.Format(m.Income, pp.Currency), finance.Format(m.Expense, pp.Currency))
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)
	pp.flush(tbl)
}

func (pp *PrettyPrint) Entries(entries ...timesheet.Entry) {
	if len(entries) == 0 {
		pp.empty()
		return
	}
	tbl := pp.table()
	for _, e := range entries {
		row := []interface{}{e.Date, e.CheckIn, "→", e.CheckOut, fmt.Sprintf("%.1fh", e.TotalHours)}
		if pp.ShowID {
			row = append([]interface{}{pp.id(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(len(tbl.Rows[0].Cells) - 1)
	pp.flush(tbl)
}

func (pp *PrettyPrint) Hours(s timesheet.Summary) {
	tbl := pp.table()
	tbl.AddRow("This week", fmt.Sprintf("%.1fh", s.Week))
	tbl.AddRow("This month", fmt.Sprintf("%.1fh", s.Month))
	tbl.RightAlign(1)
	pp.flush(tbl)
}

// Session prints the open check-in and how long it has been running at now.
func (pp *PrettyPrint) Session(s timesheet.Session, open bool, now time.Time) {
	if !open {
		_, _ = color.New(color.Faint).Fprintln(pp.out(), "Not checked in.")
		return
	}
	g := color.New(color.FgGreen)
	_, _ = g.Fprintf(pp.out(), "Checked in at %s on %s", s.CheckIn, s.Date)
	if d, err := s.Elapsed(now); err == nil {
		_, _ = color.New(color.Faint).Fprintf(pp.out(), " (%s)", timeutil.FormatWindow(d))
	}
	_, _ = fmt.Fprintln(pp.out(), ".")
}

// Series draws a horizontal bar per point.
func (pp *PrettyPrint) Series(s view.Series, unit string) {
	if s.Len() == 0 {
		pp.empty()
		return
	}
	peak := 0.0
	for _, v := range s.Values {
		if v > peak {
			peak = v
		}
	}
	tbl := pp.table()
	for i, label := range s.Labels {
		tbl.AddRow(label, bar(s.Values[i], peak, 30), fmt.Sprintf("%.1f%s", s.Values[i], unit))
	}
	tbl.RightAlign(0)
	pp.flush(tbl)
}

// bar scales v against peak into at most width cells.
func bar(v, peak float64, width int) string {
	if peak <= 0 || v <= 0 {
		return ""
	}
	n := int(v / peak * float64(width))
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
