package engine

import (
	"fmt"

	"github.com/ftahirops/mtop/model"
)

// ComputeWarnings turns KPI edge cases into user-facing messages. None of
// them is fatal.
func ComputeWarnings(kpi model.KPIResult, schema model.Schema, availabilityTarget float64) []model.Warning {
	var warns []model.Warning

	if !kpi.SufficientData {
		detail := "no closed events in the selection"
		switch {
		case !schema.HasDowntime:
			detail = "no Downtime Hours column and no End Time to derive it"
		case kpi.ClosedCount > 0:
			detail = "no closed event has a known duration"
		}
		warns = append(warns, model.Warning{
			Severity: "warn",
			Signal:   "Insufficient data",
			Detail:   detail,
		})
		return warns
	}

	if kpi.ExcludedClosed > 0 {
		warns = append(warns, model.Warning{
			Severity: "info",
			Signal:   "Unknown duration",
			Detail:   "closed events without a duration are excluded from MTTR and downtime",
			Value:    fmt.Sprintf("%d events", kpi.ExcludedClosed),
		})
	}
	if kpi.Phase == model.PhaseSingle {
		warns = append(warns, model.Warning{
			Severity: "info",
			Signal:   "Single event",
			Detail:   "MTBF needs two closed events; availability reported as 100%",
		})
	}
	if kpi.DegenerateWindow {
		warns = append(warns, model.Warning{
			Severity: "info",
			Signal:   "No time window",
			Detail:   "closed events do not span a measurable period; MTBF reported as 0",
		})
	}
	if kpi.Phase == model.PhaseMulti && !kpi.DegenerateWindow {
		if kpi.OperationalHours < 0 {
			warns = append(warns, model.Warning{
				Severity: "crit",
				Signal:   "Downtime exceeds window",
				Detail:   "total downtime is longer than the span between first and last stop",
				Value:    fmt.Sprintf("%.1fh > %.1fh", kpi.TotalDowntime, kpi.PeriodSpanHours),
			})
		} else if kpi.AvailabilityPct < availabilityTarget {
			warns = append(warns, model.Warning{
				Severity: availabilitySeverity(kpi.AvailabilityPct, availabilityTarget),
				Signal:   "Availability",
				Detail:   fmt.Sprintf("below the %.0f%% target", availabilityTarget),
				Value:    fmt.Sprintf("%.2f%%", kpi.AvailabilityPct),
			})
		}
	}
	if kpi.OpenCount > 0 {
		warns = append(warns, model.Warning{
			Severity: "info",
			Signal:   "Open events",
			Detail:   "unresolved stops are not part of MTTR or MTBF",
			Value:    fmt.Sprintf("%d open", kpi.OpenCount),
		})
	}
	return warns
}

// availabilitySeverity is "crit" when availability misses the target by
// more than ten points.
func availabilitySeverity(pct, target float64) string {
	if pct < target-10 {
		return "crit"
	}
	return "warn"
}
