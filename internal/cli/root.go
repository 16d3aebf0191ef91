package cli

import (
	"github.com/spf13/cobra"
)

// RootCommand builds the command tree. Every call returns a fresh tree bound
// to the same App.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "neo",
		Short:         "Explore near-Earth objects and their close approaches",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./neo.yaml)")
	flags.String("neofile", "", "NEO CSV file name in the source")
	flags.String("cadfile", "", "close approach JSON file name in the source")
	flags.String("source", "", "data source: local, s3 or minio")
	flags.String("dir", "", "root directory for the local source")
	flags.String("bucket", "", "bucket for s3 and minio sources")
	flags.String("prefix", "", "key prefix for s3 and minio sources")
	flags.String("endpoint", "", "minio endpoint host:port")
	flags.String("index", "", "index strategy: map or trie")
	flags.String("codec", "", "JSON codec: go-json or json")
	flags.Bool("skip-malformed", false, "skip malformed records instead of failing")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: text or json")

	bind := map[string]string{
		"neofile":        "neofile",
		"cadfile":        "cadfile",
		"source":         "source.kind",
		"dir":            "source.dir",
		"bucket":         "source.bucket",
		"prefix":         "source.prefix",
		"endpoint":       "source.endpoint",
		"index":          "index",
		"codec":          "codec",
		"skip-malformed": "skip_malformed",
		"log-level":      "log.level",
		"log-format":     "log.format",
	}
	for flag, key := range bind {
		// Lookup cannot fail for flags registered above.
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		a.inspectCommand(),
		a.queryCommand(),
		a.statsCommand(),
		a.interactiveCommand(),
		a.serveCommand(),
	)
	return root
}
