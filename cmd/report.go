package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ftahirops/mtop/export"
)

// outputFormat selects the one-shot output of the root and report
// commands.
type outputFormat struct {
	json bool
	md   bool
	csv  bool
}

func (f *outputFormat) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&f.json, "json", false, "Print the report as JSON and exit")
	fs.BoolVar(&f.md, "md", false, "Print a Markdown report and exit")
	fs.BoolVar(&f.csv, "csv", false, "Print the filtered rows as CSV and exit")
	cmd.MarkFlagsMutuallyExclusive("json", "md", "csv")
}

func (f outputFormat) set() bool {
	return f.json || f.md || f.csv
}

func newReportCmd(g *globalFlags) *cobra.Command {
	var (
		sel    selectionFlags
		format outputFormat
	)
	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Print a KPI report for FILE and exit",
		Long: `Print a KPI report for the selected rows of FILE and exit.

The default output is Markdown; use --json for the full report or --csv for
the filtered rows with derived columns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !format.set() {
				format.md = true
			}
			return runReport(cmd, *g, sel, format, args[0])
		},
	}
	sel.register(cmd)
	format.register(cmd)
	return cmd
}

// runReport loads path, computes the report for the selected rows and
// writes it to the command's output.
func runReport(cmd *cobra.Command, g globalFlags, sf selectionFlags, format outputFormat, path string) error {
	sel, err := sf.selection()
	if err != nil {
		return err
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ds, err := loadDataset(path, cfg, log)
	if err != nil {
		return err
	}
	eng := newEngine(ds, cfg, log)
	out := cmd.OutOrStdout()

	switch {
	case format.csv:
		data, err := eng.ExportCSV(sel)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case format.json:
		return export.WriteJSON(out, eng.Compute(sel))
	default:
		rep := eng.Compute(sel)
		log.Debug("markdown report",
			zap.Int("filtered", rep.Filtered),
			zap.Int("warnings", len(rep.Warnings)))
		_, err := io.WriteString(out, export.Markdown(rep))
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		return nil
	}
}
