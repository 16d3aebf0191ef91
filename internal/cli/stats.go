package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *App) statsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dataset and linking statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.DB(cmd.Context())
			if err != nil {
				return err
			}
			stats := db.Stats()

			if asJSON {
				c, _ := a.codec()
				enc := c.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "NEOs:\t%d\n", stats.NEOs)
			fmt.Fprintf(tw, "Named NEOs:\t%d\n", stats.Named)
			fmt.Fprintf(tw, "Close approaches:\t%d\n", stats.Approaches)
			fmt.Fprintf(tw, "Linked:\t%d\n", stats.Linked)
			fmt.Fprintf(tw, "Orphans:\t%d\n", stats.Orphans)
			fmt.Fprintf(tw, "Hazardous approaches:\t%d\n", stats.Hazardous)
			fmt.Fprintf(tw, "Duplicate designations:\t%d\n", stats.Duplicates)
			fmt.Fprintf(tw, "Index:\t%s\n", stats.Strategy)
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
