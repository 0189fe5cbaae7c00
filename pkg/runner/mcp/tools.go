package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/collection"
	"tableflip.dev/daybook/pkg/finance"
	"tableflip.dev/daybook/pkg/task"
	"tableflip.dev/daybook/pkg/timesheet"
)

// now is replaced in tests.
var now = time.Now

func registerTools(srv *server.MCPServer, svc *app.Service, currency string) {
	registerAddTaskTool(srv, svc)
	registerToggleTaskTool(srv, svc)
	registerRemoveTaskTool(srv, svc)
	registerListTasksTool(srv, svc)
	registerAddTransactionTool(srv, svc)
	registerRemoveTransactionTool(srv, svc)
	registerListTransactionsTool(srv, svc)
	registerFinanceSummaryTool(srv, svc, currency)
	registerCheckInTool(srv, svc)
	registerCheckOutTool(srv, svc)
	registerTimeSummaryTool(srv, svc)
	registerReportTool(srv, svc)
}

func registerAddTaskTool(srv *server.MCPServer, svc *app.Service) {
	categories := make([]string, 0, len(task.Categories()))
	for _, c := range task.Categories() {
		categories = append(categories, string(c))
	}
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add an incomplete task to the top of the task list."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title."),
		),
		mcp.WithString("description",
			mcp.Description("Optional longer description."),
		),
		mcp.WithString("category",
			mcp.Description("Task category, Work when omitted."),
			mcp.Enum(categories...),
		),
		mcp.WithString("due",
			mcp.Description("Optional due date as YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Category    string `json:"category"`
			Due         string `json:"due"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		category := task.Work
		if strings.TrimSpace(args.Category) != "" {
			c, err := task.ParseCategory(args.Category)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			category = c
		}
		due, err := calendar.Parse(args.Due)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		t, err := svc.AddTask(ctx, args.Title, args.Description, category, due)
		return toJSONResult(t, err)
	})
}

func registerToggleTaskTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"toggle_task",
		mcp.WithDescription("Flip the completed flag of a task."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		t, err := svc.ToggleTask(ctx, id)
		return toJSONResult(t, err)
	})
}

func registerRemoveTaskTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"remove_task",
		mcp.WithDescription("Delete a task."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"removed": id}, svc.RemoveTask(ctx, id))
	})
}

func registerListTasksTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks, newest first, optionally filtered."),
		mcp.WithString("category",
			mcp.Description("Only tasks of this category."),
		),
		mcp.WithString("status",
			mcp.Description("all, completed or incomplete."),
			mcp.Enum("all", "completed", "incomplete"),
		),
		mcp.WithString("due",
			mcp.Description("Only tasks due on this YYYY-MM-DD date."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var filter task.Filter
		if raw := request.GetString("category", ""); raw != "" && !strings.EqualFold(raw, "all") {
			c, err := task.ParseCategory(raw)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			filter.Category = c
		}
		status, err := task.ParseStatus(request.GetString("status", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		filter.Status = status
		if filter.DueDate, err = calendar.Parse(request.GetString("due", "")); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		tasks := filter.Apply(svc.Tasks.List())
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		}, nil)
	})
}

func registerAddTransactionTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"add_transaction",
		mcp.WithDescription("Record an income or expense."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("What the money was for."),
		),
		mcp.WithString("amount",
			mcp.Required(),
			mcp.Description("Positive decimal amount such as 12.50."),
		),
		mcp.WithString("type",
			mcp.Description("income or expense, expense when omitted."),
			mcp.Enum(string(finance.Income), string(finance.Expense)),
		),
		mcp.WithString("category",
			mcp.Description("Category name such as Food or Salary."),
		),
		mcp.WithString("date",
			mcp.Description("Date as YYYY-MM-DD, today when omitted."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title    string `json:"title"`
			Amount   string `json:"amount"`
			Type     string `json:"type"`
			Category string `json:"category"`
			Date     string `json:"date"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(args.Amount))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid amount %q", args.Amount)), nil
		}
		kind := finance.Expense
		if args.Type != "" {
			if kind, err = finance.ParseKind(args.Type); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		date, err := calendar.Parse(args.Date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if date.IsZero() {
			date = calendar.Of(now())
		}

		tx, err := svc.AddTransaction(ctx, args.Title, amount, date, args.Category, kind)
		return toJSONResult(tx, err)
	})
}

func registerRemoveTransactionTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"remove_transaction",
		mcp.WithDescription("Delete a transaction."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Transaction identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"removed": id}, svc.RemoveTransaction(ctx, id))
	})
}

func registerListTransactionsTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"list_transactions",
		mcp.WithDescription("List transactions in stored order."),
		mcp.WithString("type",
			mcp.Description("all, income or expense."),
			mcp.Enum("all", string(finance.Income), string(finance.Expense)),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		txs := finance.FilterKind(svc.Transactions.List(), request.GetString("type", "all"))
		return toJSONResult(map[string]any{
			"transactions": txs,
			"count":        len(txs),
		}, nil)
	})
}

func registerFinanceSummaryTool(srv *server.MCPServer, svc *app.Service, currency string) {
	tool := mcp.NewTool(
		"finance_summary",
		mcp.WithDescription("Income, expense and balance totals with the expense breakdown per category."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		txs := svc.Transactions.List()
		totals := finance.Total(txs)
		return toJSONResult(map[string]any{
			"totals":    totals,
			"breakdown": finance.Breakdown(txs, finance.Categories()),
			"display": map[string]string{
				"income":  finance.Format(totals.Income, currency),
				"expense": finance.Format(totals.Expense, currency),
				"balance": finance.Format(totals.Balance, currency),
			},
		}, nil)
	})
}

func registerCheckInTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"check_in",
		mcp.WithDescription("Start a work session now."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s, err := svc.CheckIn(ctx, now())
		return toJSONResult(s, err)
	})
}

func registerCheckOutTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"check_out",
		mcp.WithDescription("Close the open work session now and record the time entry."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		e, err := svc.CheckOut(ctx, now())
		return toJSONResult(e, err)
	})
}

func registerTimeSummaryTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"time_summary",
		mcp.WithDescription("Hours for the newest week and month of entries plus the open session."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries := svc.Time.Entries().List()
		payload := map[string]any{
			"summary": timesheet.Summarize(entries),
			"chart":   timesheet.Chart(entries),
		}
		if s, ok := svc.Time.Session(); ok {
			payload["session"] = s
		}
		return toJSONResult(payload, nil)
	})
}

func registerReportTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"report",
		mcp.WithDescription("Cross-collection report for an optional date window."),
		mcp.WithString("since",
			mcp.Description("First day as YYYY-MM-DD."),
		),
		mcp.WithString("until",
			mcp.Description("Last day as YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		since, err := calendar.Parse(request.GetString("since", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		until, err := calendar.Parse(request.GetString("until", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result, err := svc.Report(ctx, since, until)
		return toJSONResult(result, err)
	})
}

// toJSONResult turns a service result into a tool result. Warnings keep the
// result and add a second text block naming the storage problem.
func toJSONResult(data any, err error) (*mcp.CallToolResult, error) {
	if err != nil && !collection.IsWarning(err) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, merr := mcp.NewToolResultJSON(data)
	if merr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", merr)), nil
	}
	if err != nil {
		result.Content = append(result.Content, mcp.NewTextContent("warning: "+err.Error()))
	}
	return result, nil
}
