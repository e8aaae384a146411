package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ftahirops/mtop/server"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the KPI report over HTTP",
		Long: `Serve a single-session HTTP API. Upload a spreadsheet with
POST /api/dataset, then read GET /api/report and GET /api/export.csv.
When FILE is given it is loaded before the server starts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			if noMetrics {
				cfg.Serve.EnableMetrics = false
			}
			log, err := newLogger(cfg, false)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			srv := server.New(cfg, log.Named("server"))
			if len(args) == 1 {
				ds, err := loadDataset(args[0], cfg, log)
				if err != nil {
					return err
				}
				srv.Preload(ds)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx, cfg.Serve.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "Disable the /metrics endpoint")
	return cmd
}
