package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/collection"
	"tableflip.dev/daybook/pkg/task"
)

// daybook runs the CLI against a fresh diskv directory shared by every call
// of the test.
func daybook(t *testing.T) func(args ...string) (string, error) {
	t.Helper()
	t.Setenv("DAYBOOK_DRIVER", "diskv")
	t.Setenv("DAYBOOK_PATH", t.TempDir())
	t.Setenv("DAYBOOK_SAMPLES", "false")
	t.Setenv("DAYBOOK_CONFIG_PATH", t.TempDir())

	prevOut, prevNoColor := color.Output, color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.Output, color.NoColor = prevOut, prevNoColor
		output.JSON = false
	})

	return func(args ...string) (string, error) {
		buf := &bytes.Buffer{}
		color.Output = buf
		output.JSON = false
		cmd := New()
		cmd.SetArgs(args)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		err := cmd.Execute()
		return buf.String(), err
	}
}

func TestTaskCommands(t *testing.T) {
	cli := daybook(t)

	if _, err := cli("task", "add", "write", "report", "--category", "work", "--due", "2023-12-20"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := cli("task", "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var tasks []task.Task
	if err := json.Unmarshal([]byte(out), &tasks); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(tasks) != 1 || tasks[0].Title != "write report" || tasks[0].Category != task.Work {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
	id := tasks[0].ID

	if _, err := cli("task", "toggle", id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	out, err = cli("task", "list", "--status", "completed")
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if !strings.Contains(out, "[x]") || !strings.Contains(out, "write report") {
		t.Fatalf("expected completed task in:\n%s", out)
	}

	if _, err := cli("task", "rm", id); err != nil {
		t.Fatalf("rm: %v", err)
	}
	if _, err := cli("task", "rm", id); err == nil {
		t.Fatalf("expected error removing an unknown task")
	}
}

func TestTaskAddRejectsUnknownCategory(t *testing.T) {
	cli := daybook(t)
	if _, err := cli("task", "add", "nap", "--category", "Leisure"); err == nil {
		t.Fatalf("expected unknown category error")
	}
}

func TestFinanceCommands(t *testing.T) {
	cli := daybook(t)

	steps := [][]string{
		{"finance", "add", "Salary", "--amount", "3500", "--type", "income", "--category", "Salary", "--on", "2023-12-01"},
		{"finance", "add", "Groceries", "--amount", "150.25", "--category", "food", "--on", "2023-12-07"},
	}
	for _, args := range steps {
		if _, err := cli(args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
	out, err := cli("finance", "summary")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{"$3,500.00", "$150.25", "$3,349.75"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	out, err = cli("finance", "breakdown", "--json")
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if !strings.Contains(out, `"name": "Food"`) || strings.Contains(out, "Salary") {
		t.Fatalf("unexpected breakdown %s", out)
	}
	if _, err := cli("finance", "add", "Refund", "--amount", "-3"); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestTimeCommands(t *testing.T) {
	cli := daybook(t)

	if _, err := cli("time", "in", "--at", "10:00 PM"); err != nil {
		t.Fatalf("in: %v", err)
	}
	out, err := cli("time", "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Checked in at 10:00 PM") {
		t.Fatalf("unexpected status %q", out)
	}
	if _, err := cli("time", "in"); err == nil {
		t.Fatalf("expected already checked in error")
	}
	out, err = cli("time", "out", "--at", "02:30 AM")
	if err != nil {
		t.Fatalf("out: %v", err)
	}
	if !strings.Contains(out, "4.5h") {
		t.Fatalf("expected wrapped interval in:\n%s", out)
	}
	out, err = cli("time", "summary", "--json")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out, `"week": 4.5`) {
		t.Fatalf("unexpected summary %s", out)
	}
}

func TestJSONErrors(t *testing.T) {
	cli := daybook(t)
	out, err := cli("task", "show", "missing", "--json")
	if err != nil {
		t.Fatalf("expected error rendered as JSON, got %v", err)
	}
	if !strings.Contains(out, `"error"`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInfo(t *testing.T) {
	cli := daybook(t)
	if _, err := cli("task", "add", "stretch"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := cli("info")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if !strings.Contains(out, "diskv") || !strings.Contains(out, "  tasks\n") {
		t.Fatalf("unexpected info:\n%s", out)
	}
}

func TestRunKeepsFailuresJoinedWithWarnings(t *testing.T) {
	daybook(t)
	werr := &collection.WriteError{Key: task.Key, Err: errors.New("disk full")}

	err := run(&cobra.Command{}, false, func(context.Context, *env) error {
		return errors.Join(nil, werr)
	})
	if err != nil {
		t.Fatalf("write warning should not fail the command, got %v", err)
	}

	render := errors.New("render failed")
	err = run(&cobra.Command{}, false, func(context.Context, *env) error {
		return errors.Join(render, werr)
	})
	if !errors.Is(err, render) {
		t.Fatalf("expected render failure, got %v", err)
	}
}
