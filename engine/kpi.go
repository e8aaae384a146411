package engine

import (
	"math"
	"sort"

	"github.com/ftahirops/mtop/model"
)

// StatusLabels lists the status values counted as closed and open.
// Matching is exact.
type StatusLabels struct {
	Closed []string
	Open   []string
}

// DefaultStatusLabels accept the English and Portuguese labels.
var DefaultStatusLabels = StatusLabels{
	Closed: []string{"Closed", "Fechado"},
	Open:   []string{"Open", "Aberto"},
}

// IsClosed reports whether status is a closed label.
func (l StatusLabels) IsClosed(status string) bool { return contains(l.Closed, status) }

// IsOpen reports whether status is an open label.
func (l StatusLabels) IsOpen(status string) bool { return contains(l.Open, status) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// phaseFor maps a closed-event count to its KPI phase.
func phaseFor(closed int) model.KPIPhase {
	switch {
	case closed <= 0:
		return model.PhaseNone
	case closed == 1:
		return model.PhaseSingle
	default:
		return model.PhaseMulti
	}
}

// ComputeKPIs derives the reliability metrics of a filtered record set.
//
// Closed records without a usable duration count toward ClosedCount (and so
// toward the MTBF divisor) but are left out of the MTTR mean and the
// downtime sum. Metrics that cannot be computed take their fallback:
// availability and reliability 100, everything else 0.
func ComputeKPIs(records []model.Record, schema model.Schema, labels StatusLabels) model.KPIResult {
	res := model.KPIResult{
		TotalCount:      len(records),
		AvailabilityPct: 100,
		ReliabilityPct:  100,
	}

	var closed []model.Record
	for _, r := range records {
		switch {
		case labels.IsClosed(r.Status):
			closed = append(closed, r)
		case labels.IsOpen(r.Status):
			res.OpenCount++
		}
	}
	res.ClosedCount = len(closed)
	res.Phase = phaseFor(res.ClosedCount)

	durations := make([]float64, 0, len(closed))
	for _, r := range closed {
		if h, ok := usableHours(r); ok {
			durations = append(durations, h)
		} else {
			res.ExcludedClosed++
		}
	}

	res.SufficientData = schema.HasDowntime && len(durations) > 0
	if !res.SufficientData {
		return res
	}

	res.TotalDowntime = sum(durations)
	res.MTTR = res.TotalDowntime / float64(len(durations))

	switch res.Phase {
	case model.PhaseMulti:
		span, ok := startSpanHours(closed)
		if !ok {
			// No measurable window: same outputs as a single event.
			res.DegenerateWindow = true
			break
		}
		res.PeriodSpanHours = span
		res.OperationalHours = span - res.TotalDowntime
		res.MTBF = res.OperationalHours / float64(res.ClosedCount)
		res.AvailabilityPct = 100 * res.OperationalHours / span
	case model.PhaseSingle:
		// MTBF is undefined for one event; availability stays at 100.
	}

	if res.MTBF > 0 {
		res.MaintenanceEfficiencyPct = 100 * (1 - res.MTTR/res.MTBF)
		res.FailureRate = 1 / res.MTBF
		res.ReliabilityPct = 100 * math.Exp(-res.OperationalHours/res.MTBF)
	}
	return res
}

// usableHours returns the record's duration when it is present, finite and
// non-negative.
func usableHours(r model.Record) (float64, bool) {
	if r.DowntimeHours == nil {
		return 0, false
	}
	h := *r.DowntimeHours
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return 0, false
	}
	return h, true
}

// startSpanHours returns max(start) - min(start) over records with a start
// time. Records are stable-sorted by start; false when fewer than two
// records have a start or the span is not positive.
func startSpanHours(records []model.Record) (float64, bool) {
	timed := make([]model.Record, 0, len(records))
	for _, r := range records {
		if r.Start != nil {
			timed = append(timed, r)
		}
	}
	if len(timed) < 2 {
		return 0, false
	}
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].Start.Before(*timed[j].Start)
	})
	span := timed[len(timed)-1].Start.Sub(*timed[0].Start).Hours()
	if span <= 0 {
		return 0, false
	}
	return span, true
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
