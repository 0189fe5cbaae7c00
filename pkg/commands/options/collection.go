// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// FilterOptions captures the list filters shared by the list commands.
type FilterOptions struct {
	Category string
	Status   string
	Kind     string
	Limit    int
}

// AddTaskFilterArgs wires the task list filters.
func AddTaskFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "All",
		"Only show tasks of this category.")
	cmd.Flags().StringVarP(&o.Status, "status", "s", "All",
		"One of 'All', 'Completed' or 'Incomplete'.")
}

// AddKindArg wires the transaction type filter.
func AddKindArg(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Kind, "type", "t", "all",
		"One of 'all', 'income' or 'expense'.")
}

// AddLimitArg wires a cap on the number of rows shown; 0 shows all.
func AddLimitArg(cmd *cobra.Command, o *FilterOptions, def int) {
	cmd.Flags().IntVarP(&o.Limit, "limit", "n", def,
		"Number of records to show, 0 for all.")
}
