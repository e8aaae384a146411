package engine

import (
	"testing"

	"github.com/ftahirops/mtop/model"
)

func signals(warns []model.Warning) map[string]string {
	out := map[string]string{}
	for _, w := range warns {
		out[w.Signal] = w.Severity
	}
	return out
}

func TestComputeWarnings(t *testing.T) {
	tests := []struct {
		name    string
		kpi     model.KPIResult
		schema  model.Schema
		want    string
		sev     string
		notWant string
	}{
		{
			name:   "insufficient",
			kpi:    model.KPIResult{},
			schema: fullSchema,
			want:   "Insufficient data", sev: "warn",
		},
		{
			name:   "single event",
			kpi:    model.KPIResult{Phase: model.PhaseSingle, ClosedCount: 1, SufficientData: true, AvailabilityPct: 100},
			schema: fullSchema,
			want:   "Single event", sev: "info",
			notWant: "Availability",
		},
		{
			name:   "degenerate",
			kpi:    model.KPIResult{Phase: model.PhaseMulti, SufficientData: true, DegenerateWindow: true, AvailabilityPct: 100},
			schema: fullSchema,
			want:   "No time window", sev: "info",
		},
		{
			name:   "below target",
			kpi:    model.KPIResult{Phase: model.PhaseMulti, SufficientData: true, AvailabilityPct: 90, OperationalHours: 90},
			schema: fullSchema,
			want:   "Availability", sev: "warn",
		},
		{
			name:   "far below target",
			kpi:    model.KPIResult{Phase: model.PhaseMulti, SufficientData: true, AvailabilityPct: 81.29, OperationalHours: 136},
			schema: fullSchema,
			want:   "Availability", sev: "crit",
		},
		{
			name:   "on target",
			kpi:    model.KPIResult{Phase: model.PhaseMulti, SufficientData: true, AvailabilityPct: 97, OperationalHours: 97},
			schema: fullSchema,
			notWant: "Availability",
		},
		{
			name:   "downtime exceeds window",
			kpi:    model.KPIResult{Phase: model.PhaseMulti, SufficientData: true, AvailabilityPct: -150, OperationalHours: -36},
			schema: fullSchema,
			want:   "Downtime exceeds window", sev: "crit",
			notWant: "Availability",
		},
		{
			name:   "open events",
			kpi:    model.KPIResult{Phase: model.PhaseMulti, SufficientData: true, AvailabilityPct: 99, OperationalHours: 99, OpenCount: 2},
			schema: fullSchema,
			want:   "Open events", sev: "info",
		},
		{
			name:   "excluded closed",
			kpi:    model.KPIResult{Phase: model.PhaseMulti, SufficientData: true, AvailabilityPct: 99, OperationalHours: 99, ExcludedClosed: 1},
			schema: fullSchema,
			want:   "Unknown duration", sev: "info",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := signals(ComputeWarnings(tt.kpi, tt.schema, 95))
			if tt.want != "" {
				sev, ok := got[tt.want]
				if !ok {
					t.Fatalf("missing %q warning, got %v", tt.want, got)
				}
				if sev != tt.sev {
					t.Errorf("%q severity = %s, want %s", tt.want, sev, tt.sev)
				}
			}
			if tt.notWant != "" {
				if _, ok := got[tt.notWant]; ok {
					t.Errorf("unexpected %q warning", tt.notWant)
				}
			}
		})
	}
}

func TestComputeWarningsInsufficientDetail(t *testing.T) {
	warns := ComputeWarnings(model.KPIResult{}, model.Schema{}, 95)
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warns))
	}
	if warns[0].Detail != "no Downtime Hours column and no End Time to derive it" {
		t.Errorf("detail = %q", warns[0].Detail)
	}
}
