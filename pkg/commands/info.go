package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where records are stored.",
		Example: `
daybook info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				s := info.Info{
					Config:  e.cfg,
					Storage: e.svc.Storage,
				}
				if output.JSON {
					d, err := s.Collect(ctx)
					if err != nil {
						return err
					}
					return e.pp.JSON(d)
				}
				return s.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
