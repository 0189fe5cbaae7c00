package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve tasks, transactions and time entries over the Model Context Protocol.",
		Long: `Run a Model Context Protocol server on stdin/stdout so an assistant can
read and change the daybook collections. Warnings go to stderr.`,
		Example: `
daybook mcp
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				runner := mcp.Runner{
					Service:  e.svc,
					Name:     "daybook",
					Version:  version,
					Currency: e.cfg.Currency,
				}
				return runner.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
