package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/collection"
	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/task"
)

// failed reports whether err must stop a command. Write warnings leave the
// record applied in memory, so the command still prints it.
func failed(err error) bool {
	return err != nil && !collection.IsWarning(err)
}

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Manage the task checklist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTaskAdd(cmd)
	addTaskList(cmd)
	addTaskShow(cmd)
	addTaskToggle(cmd)
	addTaskEdit(cmd)
	addTaskRemove(cmd)
	addTaskStats(cmd)
	addTaskReview(cmd)
	addTaskCalendar(cmd)

	topLevel.AddCommand(cmd)
}

func addTaskAdd(parent *cobra.Command) {
	ao := &options.AddOptions{}
	due := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Example: `
daybook task add write the quarterly report --category work --due 12/20
`,
		Args: options.TitleArgs(ao),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, true, func(ctx context.Context, e *env) error {
				category, err := task.ParseCategory(ao.Category)
				if err != nil {
					return err
				}
				on, err := due.GetOn()
				if err != nil {
					return err
				}
				t, err := e.svc.AddTask(ctx, ao.Title, ao.Description, category, on)
				if failed(err) {
					return err
				}
				return errors.Join(e.render(t, func() { e.pp.Tasks(t) }), err)
			})
		},
	}

	options.AddCategoryArg(cmd, ao, string(task.Personal), "One of 'Work', 'Personal', 'Study' or 'Health'.")
	options.AddDescriptionArg(cmd, ao)
	options.AddOnArgs(cmd, due, "due", "Due date of the task.")
	registerTaskCategories(cmd)
	parent.AddCommand(cmd)
}

func addTaskList(parent *cobra.Command) {
	fo := &options.FilterOptions{}
	due := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, newest first",
		Example: `
daybook task list
daybook task list --category work --status incomplete
daybook task list --due today
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, io.ShowID, func(ctx context.Context, e *env) error {
				f, err := taskFilter(fo, due)
				if err != nil {
					return err
				}
				tasks := f.Apply(e.svc.Tasks.List())
				return e.render(tasks, func() {
					e.pp.TitleWithCount("Tasks", len(tasks))
					e.pp.Tasks(tasks...)
				})
			})
		},
	}

	options.AddTaskFilterArgs(cmd, fo)
	options.AddOnArgs(cmd, due, "due", "Only show tasks due on this date.")
	options.AddShowIDArgs(cmd, io)
	registerTaskCategories(cmd)
	parent.AddCommand(cmd)
}

func taskFilter(fo *options.FilterOptions, due *options.OnOptions) (task.Filter, error) {
	f := task.Filter{}
	if fo.Category != "" && !strings.EqualFold(fo.Category, task.All) {
		c, err := task.ParseCategory(fo.Category)
		if err != nil {
			return f, err
		}
		f.Category = c
	}
	s, err := task.ParseStatus(fo.Status)
	if err != nil {
		return f, err
	}
	f.Status = s
	if f.DueDate, err = due.GetOn(); err != nil {
		return f, err
	}
	return f, nil
}

func addTaskShow(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of a task",
		Args:  options.IDArg(io),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, true, func(ctx context.Context, e *env) error {
				t, err := e.svc.Task(io.ID)
				if err != nil {
					return err
				}
				return e.render(t, func() { e.pp.Task(t) })
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTaskToggle(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done", "x"},
		Short:   "Flip a task between completed and incomplete",
		Args:    options.IDArg(io),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, true, func(ctx context.Context, e *env) error {
				t, err := e.svc.ToggleTask(ctx, io.ID)
				if failed(err) {
					return err
				}
				return errors.Join(e.render(t, func() { e.pp.Tasks(t) }), err)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTaskEdit(parent *cobra.Command) {
	io := &options.IDOptions{}
	due := &options.OnOptions{}
	var (
		title, description, category string
		clearDue                     bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Example: `
daybook task edit 6f1c... --title "call mom tonight" --due 12/11
daybook task edit 6f1c... --no-due
`,
		Args: options.IDArg(io),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, true, func(ctx context.Context, e *env) error {
				patch := task.Patch{}
				flags := cmd.Flags()
				if flags.Changed("title") {
					patch.Title = &title
				}
				if flags.Changed("description") {
					patch.Description = &description
				}
				if flags.Changed("category") {
					c, err := task.ParseCategory(category)
					if err != nil {
						return err
					}
					patch.Category = &c
				}
				if due.Set() {
					on, err := due.GetOn()
					if err != nil {
						return err
					}
					patch.DueDate = &on
				}
				if clearDue {
					patch.DueDate = &calendar.Date{}
				}
				if patch.IsEmpty() {
					return errors.New("nothing to change")
				}
				t, err := e.svc.EditTask(ctx, io.ID, patch)
				if failed(err) {
					return err
				}
				return errors.Join(e.render(t, func() { e.pp.Task(t) }), err)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title.")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description.")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category.")
	cmd.Flags().BoolVar(&clearDue, "no-due", false, "Remove the due date.")
	options.AddOnArgs(cmd, due, "due", "New due date.")
	registerTaskCategories(cmd)
	parent.AddCommand(cmd)
}

func addTaskRemove(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    options.IDArg(io),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				return e.svc.RemoveTask(ctx, io.ID)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTaskStats(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Completion counts overall and per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				s := task.Summarize(e.svc.Tasks.List())
				return e.render(s, func() {
					e.pp.Title("Progress")
					e.pp.TaskStats(s)
				})
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTaskReview(parent *cobra.Command) {
	var horizon int
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Open tasks that are overdue or due soon",
		Example: `
daybook task review
daybook task review --days 7
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, io.ShowID, func(ctx context.Context, e *env) error {
				items, err := e.svc.Review(ctx, calendar.Today(), horizon)
				if err != nil {
					return err
				}
				return e.render(items, func() {
					tasks := make([]task.Task, 0, len(items))
					for _, item := range items {
						tasks = append(tasks, item.Task)
					}
					e.pp.TitleWithCount("Needs attention", len(tasks))
					e.pp.Tasks(tasks...)
				})
			})
		},
	}

	cmd.Flags().IntVar(&horizon, "days", 3, "Include tasks due within this many days.")
	options.AddShowIDArgs(cmd, io)
	parent.AddCommand(cmd)
}

func addTaskCalendar(parent *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Month calendar with due dates marked",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				month, err := on.GetOn()
				if err != nil {
					return err
				}
				today := calendar.Today()
				if month.IsZero() {
					month = today
				}
				marks := task.DueMarks(e.svc.Tasks.List())
				return e.render(marks, func() {
					e.pp.DueCalendar(month, today, marks)
				})
			})
		},
	}

	options.AddOnArgs(cmd, on, "on", "Any date in the month to show.")
	parent.AddCommand(cmd)
}

func registerTaskCategories(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(task.Categories()))
		for _, c := range task.Categories() {
			names = append(names, string(c))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}
