package cli

import (
	"errors"
	"fmt"

	"github.com/hupe1980/neodb/model"
	"github.com/spf13/cobra"
)

// ErrNoMatch is returned when inspect finds no NEO.
var ErrNoMatch = errors.New("no matching NEOs exist in the database")

func (a *App) inspectCommand() *cobra.Command {
	var (
		pdes    string
		name    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Look up a NEO by primary designation or by name",
		Example: `  neo inspect --pdes 433
  neo inspect --name Eros --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.DB(cmd.Context())
			if err != nil {
				return err
			}

			var (
				neo *model.NearEarthObject
				ok  bool
			)
			if pdes != "" {
				neo, ok = db.NEOByDesignation(pdes)
			} else {
				neo, ok = db.NEOByName(name)
			}
			if !ok {
				return ErrNoMatch
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, neo)
			if verbose {
				for _, ca := range neo.Approaches {
					fmt.Fprintf(out, "- %s\n", ca)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pdes, "pdes", "p", "", "primary designation")
	cmd.Flags().StringVarP(&name, "name", "n", "", "IAU name")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also list the NEO's close approaches")
	cmd.MarkFlagsMutuallyExclusive("pdes", "name")
	cmd.MarkFlagsOneRequired("pdes", "name")
	return cmd
}
