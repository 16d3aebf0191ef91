package cli

import (
	"context"

	"github.com/hupe1980/neodb/internal/shell"
	"github.com/spf13/cobra"
)

func (a *App) interactiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"shell"},
		Short:   "Load the database once and run commands against it",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.DB(cmd.Context()); err != nil {
				return err
			}

			run := func(ctx context.Context, args []string) error {
				root := a.RootCommand()
				root.SetArgs(args)
				root.SilenceErrors = true
				return root.ExecuteContext(ctx)
			}
			return shell.New(run, []string{"inspect", "query", "stats"}, cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}
