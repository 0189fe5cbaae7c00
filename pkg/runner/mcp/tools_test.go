package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/task"
)

func newServer(t *testing.T, samples bool) (*server.MCPServer, *app.Service) {
	t.Helper()
	svc, err := app.Open(context.Background(), store.NewMemory(), app.Options{Samples: samples})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	srv, err := Runner{Service: svc, Currency: "USD"}.NewServer()
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, svc
}

func call(t *testing.T, srv *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := srv.GetTool(name)
	if tool == nil {
		t.Fatalf("tool %q not registered", name)
	}
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handler(context.Background(), req)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatalf("empty result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestRunnerRequiresService(t *testing.T) {
	if _, err := (Runner{}).NewServer(); err == nil {
		t.Fatalf("expected error without a service")
	}
}

func TestAddAndToggleTask(t *testing.T) {
	srv, svc := newServer(t, false)

	res := call(t, srv, "add_task", map[string]any{
		"title":    "Write report",
		"category": "study",
		"due":      "2023-12-20",
	})
	if res.IsError {
		t.Fatalf("add_task failed: %s", text(t, res))
	}
	var added task.Task
	if err := json.Unmarshal([]byte(text(t, res)), &added); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if added.ID == "" || added.Category != task.Study || added.Completed {
		t.Fatalf("unexpected task %+v", added)
	}

	res = call(t, srv, "toggle_task", map[string]any{"id": added.ID})
	if res.IsError {
		t.Fatalf("toggle_task failed: %s", text(t, res))
	}
	got, ok := svc.Tasks.Get(added.ID)
	if !ok || !got.Completed {
		t.Fatalf("task not toggled: %+v", got)
	}
}

func TestToolErrors(t *testing.T) {
	srv, _ := newServer(t, true)

	cases := []struct {
		tool string
		args map[string]any
	}{
		{"add_task", map[string]any{"title": "  "}},
		{"add_task", map[string]any{"title": "x", "category": "Chores"}},
		{"add_task", map[string]any{"title": "x", "due": "12/20"}},
		{"toggle_task", map[string]any{"id": "missing"}},
		{"toggle_task", map[string]any{}},
		{"remove_transaction", map[string]any{"id": "missing"}},
		{"add_transaction", map[string]any{"title": "Coffee", "amount": "abc"}},
		{"add_transaction", map[string]any{"title": "Coffee", "amount": "-3"}},
		{"check_out", nil},
	}
	for _, tc := range cases {
		if res := call(t, srv, tc.tool, tc.args); !res.IsError {
			t.Fatalf("%s %v: expected error result, got %s", tc.tool, tc.args, text(t, res))
		}
	}
}

func TestListTasksFilter(t *testing.T) {
	srv, _ := newServer(t, true)

	res := call(t, srv, "list_tasks", map[string]any{"status": "completed"})
	var payload struct {
		Tasks []task.Task `json:"tasks"`
		Count int         `json:"count"`
	}
	if err := json.Unmarshal([]byte(text(t, res)), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Count != len(payload.Tasks) || payload.Count == 0 {
		t.Fatalf("unexpected payload %+v", payload)
	}
	for _, tk := range payload.Tasks {
		if !tk.Completed {
			t.Fatalf("incomplete task %q in completed filter", tk.Title)
		}
	}
}

func TestFinanceSummary(t *testing.T) {
	srv, _ := newServer(t, true)

	res := call(t, srv, "finance_summary", nil)
	var payload struct {
		Totals struct {
			Income  string `json:"income"`
			Expense string `json:"expense"`
			Balance string `json:"balance"`
		} `json:"totals"`
		Display map[string]string `json:"display"`
	}
	if err := json.Unmarshal([]byte(text(t, res)), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Totals.Income != "4300" || payload.Totals.Expense != "1350" || payload.Totals.Balance != "2950" {
		t.Fatalf("unexpected totals %+v", payload.Totals)
	}
	if payload.Display["balance"] != "$2,950.00" {
		t.Fatalf("balance display = %q", payload.Display["balance"])
	}
}

func TestCheckInOut(t *testing.T) {
	srv, svc := newServer(t, false)
	clock := time.Date(2023, time.December, 15, 9, 0, 0, 0, time.Local)
	now = func() time.Time { return clock }
	t.Cleanup(func() { now = time.Now })

	if res := call(t, srv, "check_in", nil); res.IsError {
		t.Fatalf("check_in failed: %s", text(t, res))
	}
	if res := call(t, srv, "check_in", nil); !res.IsError {
		t.Fatalf("second check_in should fail")
	}

	clock = clock.Add(7*time.Hour + 30*time.Minute)
	res := call(t, srv, "check_out", nil)
	if res.IsError {
		t.Fatalf("check_out failed: %s", text(t, res))
	}
	entries := svc.Time.Entries().List()
	if len(entries) != 1 || entries[0].TotalHours != 7.5 {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if !strings.Contains(text(t, res), `"checkOut":"04:30 PM"`) {
		t.Fatalf("unexpected entry %s", text(t, res))
	}
}

func TestSessionResource(t *testing.T) {
	srv, svc := newServer(t, false)
	clock := time.Date(2023, time.December, 15, 9, 0, 0, 0, time.Local)
	now = func() time.Time { return clock }
	t.Cleanup(func() { now = time.Now })

	if _, err := svc.CheckIn(context.Background(), clock); err != nil {
		t.Fatalf("check in: %v", err)
	}
	clock = clock.Add(90 * time.Minute)

	msg := srv.HandleMessage(context.Background(), json.RawMessage(
		`{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"daybook://timeSession"}}`))
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var resp struct {
		Result struct {
			Contents []struct {
				Text string `json:"text"`
			} `json:"contents"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Result.Contents) != 1 {
		t.Fatalf("unexpected response %s", data)
	}
	body := resp.Result.Contents[0].Text
	if !strings.Contains(body, `"checkedIn":true`) || !strings.Contains(body, `"elapsed":"1h30m"`) {
		t.Fatalf("unexpected session body %s", body)
	}
}
