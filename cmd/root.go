// Package cmd wires the mtop command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ftahirops/mtop/config"
	"github.com/ftahirops/mtop/engine"
	"github.com/ftahirops/mtop/loader"
	"github.com/ftahirops/mtop/logging"
	"github.com/ftahirops/mtop/model"
	"github.com/ftahirops/mtop/ui"
)

// Version is set at build time via ldflags.
var Version = "0.1.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
}

// selectionFlags narrow the dataset in the non-interactive modes.
type selectionFlags struct {
	locations []string
	equipment []string
	statuses  []string
	from      string
	to        string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringArrayVar(&f.locations, "location", nil, "Only include this location (repeatable)")
	fs.StringArrayVar(&f.equipment, "equipment", nil, "Only include this equipment (repeatable)")
	fs.StringArrayVar(&f.statuses, "status", nil, "Only include this status (repeatable)")
	fs.StringVar(&f.from, "from", "", "First start date to include (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "Last start date to include (YYYY-MM-DD)")
}

// selection converts the flags to a model.Selection. Unset facets select
// every value.
func (f *selectionFlags) selection() (model.Selection, error) {
	sel := model.Selection{
		Locations: f.locations,
		Equipment: f.equipment,
		Statuses:  f.statuses,
	}
	var err error
	if sel.From, err = parseDay("from", f.from); err != nil {
		return sel, err
	}
	if sel.To, err = parseDay("to", f.to); err != nil {
		return sel, err
	}
	if sel.From != nil && sel.To != nil && sel.To.Before(*sel.From) {
		return sel, fmt.Errorf("--to %s is before --from %s", f.to, f.from)
	}
	return sel, nil
}

func parseDay(name, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: want YYYY-MM-DD", name, v)
	}
	return &t, nil
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd(os.Stdout, os.Stderr).Execute()
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		g      globalFlags
		sel    selectionFlags
		format outputFormat
	)

	root := &cobra.Command{
		Use:   "mtop [file]",
		Short: "Maintenance downtime KPI console",
		Long: `mtop loads a spreadsheet of maintenance downtime events (.xlsx or .csv)
and reports MTTR, MTBF, availability and related KPIs.

Without an output flag it opens the interactive console. With --json, --md
or --csv it prints one report for the selected rows and exits.`,
		Example: `  mtop stops.xlsx
  mtop stops.csv --md > report.md
  mtop stops.xlsx --json --location North --from 2025-01-01
  mtop watch stops.csv
  mtop serve --addr :8080`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if format.set() {
				return runReport(cmd, g, sel, format, args[0])
			}
			return runConsole(g, args[0])
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("mtop v{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/mtop/config.yaml)")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	pf.StringVar(&g.logFile, "log-file", "", "Write logs to this file")

	sel.register(root)
	format.register(root)

	root.AddCommand(
		newReportCmd(&g),
		newWatchCmd(&g),
		newServeCmd(&g),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mtop v%s\n", Version)
		},
	}
}

// loadConfig reads the config file named by --config, or the default
// location, and applies the logging flag overrides.
func (g globalFlags) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFromFile(g.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFile != "" {
		cfg.Log.File = g.logFile
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config, quiet bool) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		Quiet: quiet,
	})
}

func loaderOptions(cfg config.Config, log *zap.Logger) loader.Options {
	return loader.Options{
		Aliases: cfg.Columns.Aliases,
		Logger:  log.Named("loader"),
	}
}

// loadDataset loads path and explains a missing-column failure in terms
// of the configured header aliases.
func loadDataset(path string, cfg config.Config, log *zap.Logger) (*model.Dataset, error) {
	ds, err := loader.Load(path, loaderOptions(cfg, log))
	if err != nil {
		var missing *loader.MissingColumnsError
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%s: %w (configure header aliases under columns.aliases)", path, err)
		}
		return nil, err
	}
	log.Info("dataset loaded",
		zap.String("source", ds.Source),
		zap.String("id", ds.ID),
		zap.Int("rows", len(ds.Records)))
	return ds, nil
}

// runConsole opens the interactive console on path.
func runConsole(g globalFlags, path string) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ds, err := loadDataset(path, cfg, log)
	if err != nil {
		return err
	}

	console := ui.NewModel(ds, ui.Options{
		Config:     cfg,
		ConfigPath: g.configPath,
		Reload:     func() (*model.Dataset, error) { return loadDataset(path, cfg, log) },
		OutDir:     ".",
		Logger:     log.Named("ui"),
	})
	p := tea.NewProgram(console, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// newEngine builds the engine for a loaded dataset with the config's
// labels, keywords and targets.
func newEngine(ds *model.Dataset, cfg config.Config, log *zap.Logger) *engine.Engine {
	opts := engine.OptionsFromConfig(cfg)
	opts.Logger = log.Named("engine")
	return engine.New(ds, opts)
}
