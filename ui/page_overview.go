package ui

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/ftahirops/mtop/engine"
	"github.com/ftahirops/mtop/model"
)

func renderOverviewPage(rep *model.Report, history *engine.History, target float64, width int) string {
	innerW := pageInnerW(width)
	k := rep.KPI

	fallback := func(s string) string {
		if !k.SufficientData {
			return dimStyle.Render(s + " (n/a)")
		}
		return valueStyle.Render(s)
	}
	avail := fmt.Sprintf("%.2f%%", k.AvailabilityPct)
	availStr := fallback(avail)
	if k.SufficientData {
		availStr = availColor(k.AvailabilityPct, target).Render(avail) + dimStyle.Render(fmt.Sprintf("  target %.0f%%", target))
	}
	effStr := fallback(fmt.Sprintf("%.2f%%", k.MaintenanceEfficiencyPct))
	relStr := fallback(fmt.Sprintf("%.2f%%", k.ReliabilityPct))
	if k.SufficientData && k.MTBF > 0 {
		effStr = efficiencyColor(k.MaintenanceEfficiencyPct).Render(fmt.Sprintf("%.2f%%", k.MaintenanceEfficiencyPct))
		relStr = efficiencyColor(k.ReliabilityPct).Render(fmt.Sprintf("%.2f%%", k.ReliabilityPct))
	}

	kpis := []kv{
		{"MTTR", fallback(fmt.Sprintf("%.2f h", k.MTTR))},
		{"MTBF", fallback(fmt.Sprintf("%.2f h", k.MTBF))},
		{"Availability", availStr},
		{"Total downtime", fallback(fmt.Sprintf("%.2f h", k.TotalDowntime))},
		{"Maintenance efficiency", effStr},
		{"Failure rate", fallback(fmt.Sprintf("%.4f /h", k.FailureRate))},
		{"Reliability", relStr},
		{"Events", fmt.Sprintf("%s closed  %s open  %s total",
			okStyle.Render(humanize.Comma(int64(k.ClosedCount))),
			warnStyle.Render(humanize.Comma(int64(k.OpenCount))),
			valueStyle.Render(humanize.Comma(int64(k.TotalCount))))},
		{"Phase", dimStyle.Render(k.Phase.String())},
	}
	out := boxSection("KEY PERFORMANCE INDICATORS", renderKVLines(kpis), innerW)

	if history != nil && history.Len() > 1 {
		series := history.Series(func(r model.KPIResult) float64 { return r.AvailabilityPct })
		out += boxSection("AVAILABILITY ACROSS RELOADS", []string{sparkline(series, innerW-12, 0, 100)}, innerW)
	}

	info := rep.Info
	period := dimStyle.Render("no dated rows")
	if info.FirstDate != nil && info.LastDate != nil {
		period = valueStyle.Render(fmt.Sprintf("%s to %s",
			info.FirstDate.Format("2006-01-02"), info.LastDate.Format("2006-01-02")))
	}
	dataset := []kv{
		{"Source", valueStyle.Render(info.Source)},
		{"Records", valueStyle.Render(humanize.Comma(int64(info.Total)))},
		{"Selected", valueStyle.Render(humanize.Comma(int64(rep.Filtered)))},
		{"Period", period},
		{"Columns", valueStyle.Render(fmt.Sprintf("%d", len(info.Columns)))},
	}
	if rep.Schema.DerivedHours {
		dataset = append(dataset, kv{"Downtime hours", dimStyle.Render("derived from End Time - Start Time")})
	}
	if n := info.Stats.UnparsedStart + info.Stats.UnparsedEnd + info.Stats.UnparsedDowntime; n > 0 {
		dataset = append(dataset, kv{"Unreadable cells", warnStyle.Render(humanize.Comma(int64(n)))})
	}
	out += boxSection("DATASET", renderKVLines(dataset), innerW)

	if len(rep.Warnings) > 0 {
		var lines []string
		for _, w := range rep.Warnings {
			detail := w.Detail
			if w.Value != "" {
				detail += " (" + w.Value + ")"
			}
			lines = append(lines, severityColor(w.Severity).Render(padRight(w.Signal, 24))+" "+
				valueStyle.Render(truncate(detail, innerW-25)))
		}
		out += boxSection("WARNINGS", lines, innerW)
	}
	return out
}
