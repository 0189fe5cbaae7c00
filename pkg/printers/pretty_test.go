package printers

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/finance"
	"tableflip.dev/daybook/pkg/task"
	"tableflip.dev/daybook/pkg/timesheet"
)

func newPrinter(t *testing.T) (*PrettyPrint, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	buf := &bytes.Buffer{}
	return &PrettyPrint{Out: buf, Currency: "USD"}, buf
}

func TestTasks(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.ShowID = true
	pp.Tasks(task.Samples()...)
	out := buf.String()
	for _, want := range []string{"[x]", "Buy groceries", "2023-12-15", "Health"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Count(out, "[ ]") != 4 {
		t.Fatalf("expected 4 open tasks in:\n%s", out)
	}
}

func TestEmpty(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.Transactions()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestTotals(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.Totals(finance.Total(finance.Samples()))
	out := buf.String()
	for _, want := range []string{"$4,300.00", "$1,350.00", "$2,950.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestTransactionsSigned(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.Transactions(finance.Samples()[:3]...)
	out := buf.String()
	if !strings.Contains(out, "+$3,500.00") || !strings.Contains(out, "-$1,200.00") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSeries(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.Series(timesheet.Chart(timesheet.Samples()), "h")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], strings.Repeat("█", 30)) || !strings.HasSuffix(lines[1], "9.5h") {
		t.Fatalf("expected the peak to fill the bar, got %q", lines[1])
	}
}

func TestWarning(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.Warning(errors.New("disk full"))
	if buf.String() != "warning: disk full\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestDueCalendar(t *testing.T) {
	pp, buf := newPrinter(t)
	dec := calendar.New(2023, time.December, 1)
	pp.DueCalendar(dec, calendar.New(2023, time.December, 15), task.DueMarks(task.Samples()))
	out := buf.String()
	if !strings.Contains(out, "December 2023") {
		t.Fatalf("missing month title:\n%s", out)
	}
	// December 2023 starts on a Friday.
	lines := strings.Split(out, "\n")
	if lines[1] != strings.Repeat("   ", 5)+" 1  2 " {
		t.Fatalf("unexpected first week %q", lines[1])
	}
	if !strings.Contains(out, "31") {
		t.Fatalf("missing last day:\n%s", out)
	}
}

func TestDaysIn(t *testing.T) {
	if got := DaysIn(calendar.New(2024, time.February, 10)); got != 29 {
		t.Fatalf("expected 29, got %d", got)
	}
	if got := NextMonth(calendar.New(2023, time.December, 31)); !got.Equal(calendar.New(2024, time.January, 1)) {
		t.Fatalf("unexpected next month %v", got)
	}
}

func TestJSON(t *testing.T) {
	pp, buf := newPrinter(t)
	if err := pp.JSON(timesheet.Summarize(timesheet.Samples())); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), `"week": 43`) {
		t.Fatalf("unexpected output %s", buf.String())
	}
}
