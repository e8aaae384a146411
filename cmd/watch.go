package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ftahirops/mtop/config"
	"github.com/ftahirops/mtop/model"
)

// ── ANSI color/style codes ──────────────────────────────────────────────────

const (
	R = "\033[0m" // reset
	B = "\033[1m" // bold
	D = "\033[2m" // dim

	FCyn  = "\033[36m"
	FYel  = "\033[33m"
	FBRed = "\033[91m"
	FBGrn = "\033[92m"
	FBYel = "\033[93m"
	FBWht = "\033[97m"

	BBlu = "\033[44m"
)

const lineWidth = 78

// ── Styling helpers ─────────────────────────────────────────────────────────

// cavail colors an availability-like percentage: lower is worse.
func cavail(v, target float64) string {
	switch {
	case v < target-10:
		return fmt.Sprintf("%s%s%6.2f%%%s", B, FBRed, v, R)
	case v < target:
		return fmt.Sprintf("%s%6.2f%%%s", FBYel, v, R)
	default:
		return fmt.Sprintf("%s%6.2f%%%s", FBGrn, v, R)
	}
}

func warnTag() string { return fmt.Sprintf(" %s!%s", FBYel, R) }
func critTag() string { return fmt.Sprintf("%s%s!!%s", B, FBRed, R) }
func infoTag() string { return fmt.Sprintf(" %si%s", D, R) }

// barInv draws a bar where 100% is good.
func barInv(pct, target float64, w int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100.0 * float64(w))
	if filled > w {
		filled = w
	}
	empty := w - filled
	var c string
	switch {
	case pct >= target:
		c = FBGrn
	case pct >= target-10:
		c = FBYel
	default:
		c = FBRed
	}
	return fmt.Sprintf("%s%s%s%s%s", c, strings.Repeat("#", filled), D, strings.Repeat("-", empty), R)
}

func titleLine(t string) string {
	pad := lineWidth - len(t) - 4
	if pad < 0 {
		pad = 0
	}
	return fmt.Sprintf("%s%s== %s %s%s", B, FCyn, t, strings.Repeat("=", pad), R)
}

func hr() string {
	return fmt.Sprintf("%s%s%s", D, strings.Repeat("-", lineWidth), R)
}

func hoursText(h float64) string {
	return humanize.CommafWithDigits(h, 2) + " h"
}

// ── Summary ─────────────────────────────────────────────────────────────────

// renderSummary formats the KPI summary printed on every watch iteration.
func renderSummary(rep *model.Report, target float64, iteration, count int) string {
	var sb strings.Builder
	k := rep.KPI

	iter := fmt.Sprintf("#%d", iteration)
	if count > 0 {
		iter = fmt.Sprintf("#%d/%d", iteration, count)
	}
	fmt.Fprintf(&sb, " %s%s mtop v%s %s  %s  %s%s%s  %s\n",
		B, BBlu+FBWht, Version, R,
		B+rep.GeneratedAt.Format("15:04:05")+R,
		FCyn, rep.Info.Source, R,
		D+iter+R)
	sb.WriteString(hr() + "\n")

	sb.WriteString(titleLine("EVENTS") + "\n")
	fmt.Fprintf(&sb, "  %-22s %s total, %s closed, %s open\n", "Events",
		humanize.Comma(int64(k.TotalCount)),
		humanize.Comma(int64(k.ClosedCount)),
		humanize.Comma(int64(k.OpenCount)))
	if k.ExcludedClosed > 0 {
		fmt.Fprintf(&sb, "  %-22s %s%s closed without duration%s\n", "Excluded",
			FYel, humanize.Comma(int64(k.ExcludedClosed)), R)
	}
	fmt.Fprintf(&sb, "  %-22s %s\n", "Total downtime", hoursText(k.TotalDowntime))
	fmt.Fprintf(&sb, "  %-22s %s\n", "Period span", hoursText(k.PeriodSpanHours))
	fmt.Fprintf(&sb, "  %-22s %s\n", "Operational time", hoursText(k.OperationalHours))
	sb.WriteString("\n")

	sb.WriteString(titleLine("KPIs") + "\n")
	fmt.Fprintf(&sb, "  %-22s %s\n", "MTTR", hoursText(k.MTTR))
	fmt.Fprintf(&sb, "  %-22s %s\n", "MTBF", hoursText(k.MTBF))
	fmt.Fprintf(&sb, "  %-22s %s %s  %s(target %.0f%%)%s\n", "Availability",
		barInv(k.AvailabilityPct, target, 30), cavail(k.AvailabilityPct, target), D, target, R)
	fmt.Fprintf(&sb, "  %-22s %6.2f%%\n", "Maint. efficiency", k.MaintenanceEfficiencyPct)
	fmt.Fprintf(&sb, "  %-22s %.4f /h\n", "Failure rate", k.FailureRate)
	fmt.Fprintf(&sb, "  %-22s %6.2f%%\n", "Reliability", k.ReliabilityPct)

	if len(rep.Warnings) > 0 {
		sb.WriteString("\n" + titleLine("WARNINGS") + "\n")
		for _, w := range rep.Warnings {
			tag := infoTag()
			switch w.Severity {
			case "crit":
				tag = critTag()
			case "warn":
				tag = warnTag()
			}
			fmt.Fprintf(&sb, "  %s %s%s%s  %s\n", tag, B, w.Signal, R, w.Detail)
		}
	}
	return sb.String()
}

// ── Watch loop ──────────────────────────────────────────────────────────────

func newWatchCmd(g *globalFlags) *cobra.Command {
	var (
		sel   selectionFlags
		count int
	)
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Print the KPI summary and reprint it whenever FILE changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sel.selection()
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

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = runWatch(ctx, cmd.OutOrStdout(), args[0], s, cfg, log, count)
			if ctx.Err() != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%sStopped.%s\n", D, R)
				return nil
			}
			return err
		},
	}
	sel.register(cmd)
	cmd.Flags().IntVar(&count, "count", 0, "Number of reports to print before exiting (0 = until interrupted)")
	return cmd
}

// runWatch prints the summary for path, then again after every write to
// it, until ctx is done or count summaries have been printed. A reload
// that fails is reported and the previous summary stays on screen.
func runWatch(ctx context.Context, out io.Writer, path string, sel model.Selection, cfg config.Config, log *zap.Logger, count int) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	iteration := 0
	show := func() error {
		ds, err := loadDataset(path, cfg, log)
		if err != nil {
			return err
		}
		iteration++
		rep := newEngine(ds, cfg, log).Compute(sel)
		fmt.Fprint(out, "\033[2J\033[H")
		fmt.Fprint(out, renderSummary(rep, cfg.Targets.AvailabilityPct, iteration, count))
		return nil
	}

	if err := show(); err != nil {
		return err
	}
	if count > 0 && iteration >= count {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			log.Debug("file changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			if err := show(); err != nil {
				log.Warn("reload failed", zap.Error(err))
				fmt.Fprintf(out, "%s%s reload failed:%s %v\n", B, FBRed, R, err)
				continue
			}
			if count > 0 && iteration >= count {
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}
