package commands

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/timesheet"
	"tableflip.dev/daybook/pkg/view"
)

func addTime(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "time",
		Aliases: []string{"clock"},
		Short:   "Check in, check out and review worked hours.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTimeIn(cmd)
	addTimeOut(cmd)
	addTimeCancel(cmd)
	addTimeStatus(cmd)
	addTimeAdd(cmd)
	addTimeList(cmd)
	addTimeSummary(cmd)
	addTimeChart(cmd)
	addTimeRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addTimeIn(parent *cobra.Command) {
	at := &options.AtOptions{}

	cmd := &cobra.Command{
		Use:   "in",
		Short: "Check in now or at a given time",
		Example: `
daybook time in
daybook time in --at "08:45 AM"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				when, err := at.GetAt()
				if err != nil {
					return err
				}
				s, err := e.svc.CheckIn(ctx, when)
				if failed(err) {
					return err
				}
				return errors.Join(e.render(s, func() { e.pp.Session(s, true, when) }), err)
			})
		},
	}

	options.AddAtArgs(cmd, at)
	parent.AddCommand(cmd)
}

func addTimeOut(parent *cobra.Command) {
	at := &options.AtOptions{}

	cmd := &cobra.Command{
		Use:   "out",
		Short: "Check out and record the worked interval",
		Long: `Check out closes the open check-in and stores a time entry. A check-out
clock time earlier than the check-in is taken to be on the next day.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, true, func(ctx context.Context, e *env) error {
				when, err := at.GetAt()
				if err != nil {
					return err
				}
				entry, err := e.svc.CheckOut(ctx, when)
				if failed(err) {
					return err
				}
				return errors.Join(e.render(entry, func() { e.pp.Entries(entry) }), err)
			})
		},
	}

	options.AddAtArgs(cmd, at)
	parent.AddCommand(cmd)
}

func addTimeCancel(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Drop the open check-in without recording it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				return e.svc.Time.Cancel(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTimeStatus(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a check-in is open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				s, open := e.svc.Time.Session()
				status := struct {
					CheckedIn bool               `json:"checkedIn"`
					Session   *timesheet.Session `json:"session,omitempty"`
				}{CheckedIn: open}
				if open {
					status.Session = &s
				}
				return e.render(status, func() { e.pp.Session(s, open, time.Now()) })
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTimeAdd(parent *cobra.Command) {
	var date, in, out string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a worked interval directly",
		Example: `
daybook time add --date "Dec 15" --in "09:00 AM" --out "05:30 PM"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, true, func(ctx context.Context, e *env) error {
				entry, err := e.svc.AddEntry(ctx, date, in, out)
				if failed(err) {
					return err
				}
				return errors.Join(e.render(entry, func() { e.pp.Entries(entry) }), err)
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", `Display date, example: --date="Dec 15".`)
	cmd.Flags().StringVar(&in, "in", "", `Check-in time, example: --in="09:00 AM".`)
	cmd.Flags().StringVar(&out, "out", "", `Check-out time, example: --out="05:30 PM".`)
	for _, name := range []string{"date", "in", "out"} {
		_ = cmd.MarkFlagRequired(name)
	}
	parent.AddCommand(cmd)
}

func addTimeList(parent *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List time entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, io.ShowID, func(ctx context.Context, e *env) error {
				entries := e.svc.Time.Entries().List()
				if fo.Limit > 0 {
					entries = view.Window(entries, fo.Limit)
				}
				return e.render(entries, func() {
					e.pp.TitleWithCount("Time entries", len(entries))
					e.pp.Entries(entries...)
				})
			})
		},
	}

	options.AddLimitArg(cmd, fo, 0)
	options.AddShowIDArgs(cmd, io)
	parent.AddCommand(cmd)
}

func addTimeSummary(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Hours over the last week and month of entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				s := timesheet.Summarize(e.svc.Time.Entries().List())
				return e.render(s, func() {
					e.pp.Title("Hours")
					e.pp.Hours(s)
				})
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTimeChart(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Hours of the newest entries as a bar chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				series := timesheet.Chart(e.svc.Time.Entries().List())
				return e.render(series, func() {
					e.pp.Title("Hours per day")
					e.pp.Series(series, "h")
				})
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTimeRemove(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a time entry",
		Args:    options.IDArg(io),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				return e.svc.RemoveEntry(ctx, io.ID)
			})
		},
	}

	parent.AddCommand(cmd)
}
