package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/finance"
	"tableflip.dev/daybook/pkg/view"
)

func addFinance(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "finance",
		Aliases: []string{"money", "f"},
		Short:   "Track income and expenses.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addFinanceAdd(cmd)
	addFinanceList(cmd)
	addFinanceSummary(cmd)
	addFinanceBreakdown(cmd)
	addFinanceMonthly(cmd)
	addFinanceEdit(cmd)
	addFinanceRemove(cmd)

	topLevel.AddCommand(cmd)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", raw)
	}
	return d, nil
}

func addFinanceAdd(parent *cobra.Command) {
	ao := &options.AddOptions{}
	on := &options.OnOptions{}
	var amount, kind string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Example: `
daybook finance add groceries --amount 42.10 --category food
daybook finance add salary --amount 3500 --type income --category salary --on 2023-12-01
`,
		Args: options.TitleArgs(ao),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, true, func(ctx context.Context, e *env) error {
				value, err := parseAmount(amount)
				if err != nil {
					return err
				}
				k, err := finance.ParseKind(kind)
				if err != nil {
					return err
				}
				date, err := on.GetOn()
				if err != nil {
					return err
				}
				if date.IsZero() {
					date = calendar.Today()
				}
				tx, err := e.svc.AddTransaction(ctx, ao.Title, value, date, ao.Category, k)
				if failed(err) {
					return err
				}
				return errors.Join(e.render(tx, func() { e.pp.Transactions(tx) }), err)
			})
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Positive amount, for example 42.10.")
	cmd.Flags().StringVarP(&kind, "type", "t", string(finance.Expense), "One of 'income' or 'expense'.")
	_ = cmd.MarkFlagRequired("amount")
	options.AddCategoryArg(cmd, ao, "", "Category name, matched against the breakdown categories ignoring case.")
	options.AddOnArgs(cmd, on, "on", "Date of the transaction, defaults to today.")
	registerFinanceCategories(cmd)
	parent.AddCommand(cmd)
}

func addFinanceList(parent *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions",
		Example: `
daybook finance list
daybook finance list --type expense --limit 5
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, io.ShowID, func(ctx context.Context, e *env) error {
				if fo.Kind != finance.AllKinds {
					if _, err := finance.ParseKind(fo.Kind); err != nil {
						return err
					}
				}
				txs := finance.FilterKind(e.svc.Transactions.List(), fo.Kind)
				if fo.Limit > 0 {
					txs = view.Window(txs, fo.Limit)
				}
				return e.render(txs, func() {
					e.pp.TitleWithCount("Transactions", len(txs))
					e.pp.Transactions(txs...)
				})
			})
		},
	}

	options.AddKindArg(cmd, fo)
	options.AddLimitArg(cmd, fo, 0)
	options.AddShowIDArgs(cmd, io)
	parent.AddCommand(cmd)
}

func addFinanceSummary(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Income, expense and balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				totals := finance.Total(e.svc.Transactions.List())
				return e.render(totals, func() {
					e.pp.Title("Balance")
					e.pp.Totals(totals)
				})
			})
		},
	}

	parent.AddCommand(cmd)
}

func addFinanceBreakdown(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Expenses per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				slices := finance.Breakdown(e.svc.Transactions.List(), finance.Categories())
				return e.render(slices, func() {
					e.pp.Title("Expenses by category")
					e.pp.Breakdown(slices)
				})
			})
		},
	}

	parent.AddCommand(cmd)
}

func addFinanceMonthly(parent *cobra.Command) {
	var months int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Income and expense per month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				txs := e.svc.Transactions.List()
				until := finance.Latest(txs)
				if until.IsZero() {
					until = calendar.Today()
				}
				series := finance.Monthly(txs, until, months)
				return e.render(series, func() {
					e.pp.Title("Monthly")
					e.pp.Months(series)
				})
			})
		},
	}

	cmd.Flags().IntVarP(&months, "months", "m", 6, "Number of months to show, ending with the latest transaction.")
	parent.AddCommand(cmd)
}

func addFinanceEdit(parent *cobra.Command) {
	io := &options.IDOptions{}
	on := &options.OnOptions{}
	var title, amount, category, kind string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a transaction",
		Args:  options.IDArg(io),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, true, func(ctx context.Context, e *env) error {
				patch := finance.Patch{}
				flags := cmd.Flags()
				if flags.Changed("title") {
					patch.Title = &title
				}
				if flags.Changed("amount") {
					value, err := parseAmount(amount)
					if err != nil {
						return err
					}
					patch.Amount = &value
				}
				if flags.Changed("category") {
					patch.Category = &category
				}
				if flags.Changed("type") {
					k, err := finance.ParseKind(kind)
					if err != nil {
						return err
					}
					patch.Kind = &k
				}
				if on.Set() {
					date, err := on.GetOn()
					if err != nil {
						return err
					}
					patch.Date = &date
				}
				if patch == (finance.Patch{}) {
					return errors.New("nothing to change")
				}
				tx, err := e.svc.EditTransaction(ctx, io.ID, patch)
				if failed(err) {
					return err
				}
				return errors.Join(e.render(tx, func() { e.pp.Transactions(tx) }), err)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title.")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "New amount.")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category.")
	cmd.Flags().StringVarP(&kind, "type", "t", "", "New type, 'income' or 'expense'.")
	options.AddOnArgs(cmd, on, "on", "New date.")
	registerFinanceCategories(cmd)
	parent.AddCommand(cmd)
}

func addFinanceRemove(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a transaction",
		Args:    options.IDArg(io),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(ctx context.Context, e *env) error {
				return e.svc.RemoveTransaction(ctx, io.ID)
			})
		},
	}

	parent.AddCommand(cmd)
}

func registerFinanceCategories(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(finance.Categories()))
		for _, c := range finance.Categories() {
			names = append(names, c.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}
