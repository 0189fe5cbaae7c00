// Package mcp exposes the daybook collections as Model Context Protocol
// tools and resources over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/daybook/pkg/app"
)

// Runner coordinates MCP server startup.
type Runner struct {
	Service  *app.Service
	Name     string
	Version  string
	// Currency renders amounts in tool results.
	Currency string
}

// NewServer builds the MCP server with every tool and resource registered.
func (r Runner) NewServer() (*server.MCPServer, error) {
	if r.Service == nil {
		return nil, errors.New("mcp runner requires a service")
	}
	name := r.Name
	if name == "" {
		name = "daybook"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and change the daybook task list, transactions and time entries."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	registerResources(srv, r.Service)
	registerTools(srv, r.Service, r.Currency)
	return srv, nil
}

// Do serves MCP over stdio until the client disconnects.
func (r Runner) Do(ctx context.Context) error {
	srv, err := r.NewServer()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return server.ServeStdio(srv)
}
