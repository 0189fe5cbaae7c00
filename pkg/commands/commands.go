package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/collection"
	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/config"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daybook",
		Short: base.Wrap80("Tasks, money and time sheets on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTask(topLevel)
	addFinance(topLevel)
	addTime(topLevel)
	addReport(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// env is what a command needs to run against the configured storage.
type env struct {
	cfg *config.Config
	svc *app.Service
	pp  *printers.PrettyPrint
}

// open loads the configuration and every collection. Load problems are
// printed as warnings and do not stop the command.
func open(ctx context.Context, showID bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	storage, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	warnings := &printers.PrettyPrint{Out: color.Error}
	svc, err := app.Open(ctx, storage, app.Options{
		Samples: cfg.Samples,
		Warn:    warnings.Warning,
	})
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	return &env{
		cfg: cfg,
		svc: svc,
		pp:  &printers.PrettyPrint{ShowID: showID, Currency: cfg.Currency},
	}, nil
}

func (e *env) Close() {
	if err := e.svc.Close(); err != nil {
		_, _ = fmt.Fprintf(color.Error, "closing storage: %v\n", err)
	}
}

// run opens the environment, calls fn and reports its error. Storage write
// failures were already printed by the warning hook, so they do not fail
// the command.
func run(cmd *cobra.Command, showID bool, fn func(ctx context.Context, e *env) error) error {
	cmd.SilenceUsage = true
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := open(ctx, showID)
	if err != nil {
		return output.HandleError(err)
	}
	defer e.Close()

	// Joined errors are dropped only when every part is a storage warning.
	err = fn(ctx, e)
	if collection.IsWarning(err) {
		return nil
	}
	return output.HandleError(err)
}

// render prints v as JSON when --json is set and calls pretty otherwise.
func (e *env) render(v interface{}, pretty func()) error {
	if output.JSON {
		return e.pp.JSON(v)
	}
	pretty()
	return nil
}
