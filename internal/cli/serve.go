package cli

import (
	"github.com/hupe1980/neodb"
	"github.com/hupe1980/neodb/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func (a *App) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lookups and queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			reg := prometheus.NewRegistry()
			collector := server.NewPrometheusCollector(reg)

			db, err := a.DB(ctx, neodb.WithMetricsCollector(collector))
			if err != nil {
				return err
			}
			c, err := a.codec()
			if err != nil {
				return err
			}

			cfg := a.cfg.Server
			srv := server.New(db, a.logger, server.Config{
				CORSOrigins:          cfg.CORSOrigins,
				MaxConcurrentQueries: cfg.MaxConcurrentQueries,
				CacheBytes:           cfg.CacheBytes,
				Debug:                cfg.Debug,
				Codec:                c,
				Gatherer:             reg,
			})
			return srv.ListenAndServe(ctx, cfg.Addr)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", "", "listen address (default :8080)")
	flags.Int64("max-concurrent-queries", 0, "reject queries beyond this many in flight, 0 is unlimited")
	_ = a.v.BindPFlag("server.addr", flags.Lookup("addr"))
	_ = a.v.BindPFlag("server.max_concurrent_queries", flags.Lookup("max-concurrent-queries"))

	return cmd
}
