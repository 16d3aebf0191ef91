package cli

import (
	"fmt"
	"strings"

	"github.com/hupe1980/neodb"
	"github.com/hupe1980/neodb/filter"
	"github.com/hupe1980/neodb/writer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// criteriaFlags registers one flag per filter key, spelled with hyphens.
func criteriaFlags(fs *pflag.FlagSet) {
	fs.StringP("date", "d", "", "only approaches on this date (YYYY-MM-DD)")
	fs.StringP("start-date", "s", "", "only approaches on or after this date")
	fs.StringP("end-date", "e", "", "only approaches on or before this date")
	fs.String("min-distance", "", "minimum approach distance in au")
	fs.String("max-distance", "", "maximum approach distance in au")
	fs.String("min-velocity", "", "minimum relative velocity in km/s")
	fs.String("max-velocity", "", "maximum relative velocity in km/s")
	fs.String("min-diameter", "", "minimum NEO diameter in km")
	fs.String("max-diameter", "", "maximum NEO diameter in km")
	fs.Bool("hazardous", false, "only potentially hazardous NEOs")
	fs.Bool("not-hazardous", false, "only NEOs that are not potentially hazardous")
}

// parseCriteria reads the flags registered by criteriaFlags.
func parseCriteria(fs *pflag.FlagSet) (filter.Criteria, error) {
	return filter.Parse(func(key string) (string, bool) {
		if key == filter.KeyHazardous {
			switch {
			case fs.Changed("hazardous"):
				v, _ := fs.GetBool("hazardous")
				return fmt.Sprint(v), true
			case fs.Changed("not-hazardous"):
				v, _ := fs.GetBool("not-hazardous")
				return fmt.Sprint(!v), true
			}
			return "", false
		}

		name := strings.ReplaceAll(key, "_", "-")
		if !fs.Changed(name) {
			return "", false
		}
		v, err := fs.GetString(name)
		return v, err == nil
	})
}

func (a *App) queryCommand() *cobra.Command {
	var (
		limit   int
		outfile string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query close approaches",
		Long: `Query close approaches matching all given criteria.

Results are printed to stdout, at most --limit of them (default ` + fmt.Sprint(neodb.DefaultLimit) + `).
With --outfile they are saved as CSV, JSON, YAML or XLSX by extension; a
limit of 0 then saves every match.`,
		Example: `  neo query --date 2020-01-01
  neo query --start-date 2020-01-01 --end-date 2020-12-31 --max-distance 0.025 --hazardous
  neo query --min-diameter 1 --outfile results.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := parseCriteria(cmd.Flags())
			if err != nil {
				return err
			}

			db, err := a.DB(cmd.Context())
			if err != nil {
				return err
			}
			results := db.Query(criteria)

			if outfile == "" {
				out := cmd.OutOrStdout()
				for ca := range neodb.Limit(results, limit) {
					fmt.Fprintln(out, ca)
				}
				return nil
			}

			if limit > 0 {
				results = neodb.Limit(results, limit)
			}
			store, err := a.OutputStore(cmd.Context())
			if err != nil {
				return err
			}
			c, _ := a.codec()
			return writer.Save(cmd.Context(), store, outfile, results, writer.WithCodec(c))
		},
	}

	criteriaFlags(cmd.Flags())
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of results")
	cmd.Flags().StringVarP(&outfile, "outfile", "o", "", "save results to this file instead of printing")
	cmd.MarkFlagsMutuallyExclusive("hazardous", "not-hazardous")
	return cmd
}
