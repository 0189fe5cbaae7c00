package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/finance"
	"tableflip.dev/daybook/pkg/task"
	"tableflip.dev/daybook/pkg/timesheet"
	"tableflip.dev/daybook/pkg/timeutil"
)

func registerResources(srv *server.MCPServer, svc *app.Service) {
	registerListResource(srv, "daybook://"+task.Key, "Tasks",
		"Every task, newest first.",
		func() any { return svc.Tasks.List() })
	registerListResource(srv, "daybook://"+finance.Key, "Transactions",
		"Every income and expense in stored order.",
		func() any { return svc.Transactions.List() })
	registerListResource(srv, "daybook://"+timesheet.Key, "Time Entries",
		"Recorded work sessions, newest first.",
		func() any { return svc.Time.Entries().List() })
	registerSessionResource(srv, svc)
}

func registerListResource(srv *server.MCPServer, uri, name, description string, list func() any) {
	resource := mcp.NewResource(
		uri,
		name,
		mcp.WithResourceDescription(description),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return encodeResourceJSON(request.Params.URI, list())
	})
}

func registerSessionResource(srv *server.MCPServer, svc *app.Service) {
	resource := mcp.NewResource(
		"daybook://"+timesheet.SessionKey,
		"Open Session",
		mcp.WithResourceDescription("The pending check-in, if any."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		payload := map[string]any{"checkedIn": false}
		if s, ok := svc.Time.Session(); ok {
			elapsed, err := s.Elapsed(now())
			if err != nil {
				return nil, fmt.Errorf("session: %w", err)
			}
			payload = map[string]any{
				"checkedIn": true,
				"session":   s,
				"elapsed":   timeutil.FormatWindow(elapsed),
			}
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
