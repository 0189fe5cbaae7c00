package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/printers"
)

func addReport(topLevel *cobra.Command) {
	var last string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Dashboard of tasks, money and hours",
		Long: `Report summarizes every collection. Transactions are limited to the
window given by --last; an empty window includes all of them.

Examples:
  daybook report
  daybook report --last 720h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				var since, until calendar.Date
				if last != "" {
					window, err := time.ParseDuration(last)
					if err != nil {
						return err
					}
					now := time.Now()
					since, until = calendar.Of(now.Add(-window)), calendar.Of(now)
				}
				result, err := e.svc.Report(ctx, since, until)
				if err != nil {
					return err
				}
				return e.render(result, func() { renderReport(e.pp, result) })
			})
		},
	}

	cmd.Flags().StringVar(&last, "last", "", "time window of transactions to include (for example 168h)")
	topLevel.AddCommand(cmd)
}

func renderReport(pp *printers.PrettyPrint, result app.ReportResult) {
	pp.Title("Tasks")
	pp.TaskStats(result.Tasks)

	if result.Since.IsZero() {
		pp.Title("Money")
	} else {
		pp.Title("Money · " + result.Since.String() + " → " + result.Until.String())
	}
	pp.Totals(result.Finance)
	pp.Breakdown(result.Breakdown)

	pp.Title("Hours")
	pp.Hours(result.Hours)
	if result.Session != nil {
		pp.Session(*result.Session, true, time.Now())
		pp.NewLine()
	}
}
