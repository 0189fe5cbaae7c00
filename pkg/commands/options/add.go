package options

import (
	"errors"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
)

// AddOptions
type AddOptions struct {
	Title       string
	Description string
	Category    string
}

// TitleArgs joins the positional arguments into the title.
func TitleArgs(o *AddOptions) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		o.Title = strings.TrimSpace(strings.Join(args, " "))
		if o.Title == "" {
			return errors.New("requires a title")
		}
		return nil
	}
}

func AddCategoryArg(cmd *cobra.Command, o *AddOptions, def, usage string) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", def, base.Wrap80(usage))
}

func AddDescriptionArg(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Longer description of the task.")
}
