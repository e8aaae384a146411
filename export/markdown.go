package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ftahirops/mtop/model"
)

// Markdown renders a ticket-friendly maintenance report.
func Markdown(rep *model.Report) string {
	var sb strings.Builder

	sb.WriteString("# mtop Maintenance Report\n\n")
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", rep.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Source:** %s (%s records, %s selected)\n\n",
		rep.Info.Source, humanize.Comma(int64(rep.Info.Total)), humanize.Comma(int64(rep.Filtered))))
	if rep.Info.FirstDate != nil && rep.Info.LastDate != nil {
		sb.WriteString(fmt.Sprintf("**Period:** %s to %s\n\n",
			rep.Info.FirstDate.Format("2006-01-02"), rep.Info.LastDate.Format("2006-01-02")))
	}

	// Selection
	sb.WriteString("## Selection\n\n")
	sb.WriteString(fmt.Sprintf("- **Locations:** %s\n", listOrAll(rep.Selection.Locations)))
	sb.WriteString(fmt.Sprintf("- **Equipment:** %s\n", listOrAll(rep.Selection.Equipment)))
	sb.WriteString(fmt.Sprintf("- **Statuses:** %s\n", listOrAll(rep.Selection.Statuses)))
	sb.WriteString(fmt.Sprintf("- **Dates:** %s to %s\n", dayOrOpen(rep.Selection.From), dayOrOpen(rep.Selection.To)))

	// KPIs
	k := rep.KPI
	sb.WriteString("\n## KPIs\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Closed events | %d |\n", k.ClosedCount))
	sb.WriteString(fmt.Sprintf("| Open events | %d |\n", k.OpenCount))
	sb.WriteString(fmt.Sprintf("| Total events | %d |\n", k.TotalCount))
	sb.WriteString(fmt.Sprintf("| MTTR | %.2f h |\n", k.MTTR))
	sb.WriteString(fmt.Sprintf("| MTBF | %.2f h |\n", k.MTBF))
	sb.WriteString(fmt.Sprintf("| Availability | %.2f%% |\n", k.AvailabilityPct))
	sb.WriteString(fmt.Sprintf("| Total downtime | %.2f h |\n", k.TotalDowntime))
	sb.WriteString(fmt.Sprintf("| Maintenance efficiency | %.2f%% |\n", k.MaintenanceEfficiencyPct))
	sb.WriteString(fmt.Sprintf("| Failure rate | %.4f /h |\n", k.FailureRate))
	sb.WriteString(fmt.Sprintf("| Reliability | %.2f%% |\n", k.ReliabilityPct))
	if !k.SufficientData {
		sb.WriteString("\n*Insufficient data: values shown are fallbacks.*\n")
	}

	// Warnings
	if len(rep.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range rep.Warnings {
			icon := "info"
			if w.Severity == "crit" {
				icon = "CRITICAL"
			} else if w.Severity == "warn" {
				icon = "WARNING"
			}
			line := fmt.Sprintf("- **[%s]** %s: %s", icon, w.Signal, w.Detail)
			if w.Value != "" {
				line += " (" + w.Value + ")"
			}
			sb.WriteString(line + "\n")
		}
	}

	// Charts
	countTable(&sb, "Stops by Location", "Location", rep.Charts.ByLocation)
	countTable(&sb, "Stops by Equipment", "Equipment", rep.Charts.ByEquipment)
	if len(rep.Charts.MonthlyTrend) > 0 {
		unit := "Stops"
		if rep.Charts.TrendIsDowntime {
			unit = "Downtime (h)"
		}
		sb.WriteString("\n## Monthly Trend\n\n")
		sb.WriteString(fmt.Sprintf("| Month | %s |\n", unit))
		sb.WriteString("|-------|------|\n")
		for _, p := range rep.Charts.MonthlyTrend {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", p.Month, humanize.FormatFloat("#,###.##", p.Value)))
		}
	}
	countTable(&sb, "Maintenance Types", "Type", rep.Charts.MaintenanceTypes)
	countTable(&sb, "Most Frequent Cause Words", "Word", rep.Charts.CauseKeywords)

	// Pyramid
	if len(rep.Pyramid) > 0 {
		sb.WriteString("\n## Safety Pyramid\n\n")
		sb.WriteString("| Level | Count | Description |\n")
		sb.WriteString("|-------|-------|-------------|\n")
		for _, l := range rep.Pyramid {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s |\n", l.Level, l.Count, l.Description))
		}
	}

	// Recommendations
	if len(rep.Recommendations) > 0 {
		sb.WriteString("\n## Recommendations\n")
		for _, g := range rep.Recommendations {
			sb.WriteString(fmt.Sprintf("\n### %s priority\n\n", g.Priority))
			for _, item := range g.Items {
				sb.WriteString(fmt.Sprintf("- %s\n", item))
			}
		}
	}

	sb.WriteString("\n---\n*Generated by mtop, maintenance downtime KPI console*\n")
	return sb.String()
}

func countTable(sb *strings.Builder, title, label string, counts []model.Count) {
	if len(counts) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n## %s\n\n", title))
	sb.WriteString(fmt.Sprintf("| %s | Count |\n", label))
	sb.WriteString("|------|-------|\n")
	for _, c := range counts {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", blankAs(c.Label, "(blank)"), humanize.Comma(int64(c.Value))))
	}
}

func listOrAll(values []string) string {
	if len(values) == 0 {
		return "all"
	}
	return strings.Join(values, ", ")
}

func dayOrOpen(t *time.Time) string {
	if t == nil {
		return "open"
	}
	return t.Format("2006-01-02")
}

func blankAs(s, alt string) string {
	if strings.TrimSpace(s) == "" {
		return alt
	}
	return s
}
