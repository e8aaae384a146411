package engine

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftahirops/mtop/model"
)

var fullSchema = model.Schema{HasEnd: true, HasDowntime: true, DerivedHours: true}

func ts(s string) *time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func hours(h float64) *float64 { return &h }

// rec builds a record with downtime derived from start and end.
func rec(row int, start, end, status string) model.Record {
	r := model.Record{Row: row, Start: ts(start), Status: status}
	if end != "" {
		r.End = ts(end)
		h := r.End.Sub(*r.Start).Hours()
		r.DowntimeHours = &h
	}
	return r
}

func twoClosed() []model.Record {
	return []model.Record{
		rec(1, "2025-05-05T09:00", "2025-05-05T15:00", "Closed"),
		rec(2, "2025-05-12T08:30", "2025-05-13T09:50", "Closed"),
	}
}

func TestComputeKPIsEmpty(t *testing.T) {
	res := ComputeKPIs(nil, fullSchema, DefaultStatusLabels)

	assert.Equal(t, 0, res.ClosedCount)
	assert.Equal(t, 0, res.OpenCount)
	assert.Equal(t, 0, res.TotalCount)
	assert.Equal(t, model.PhaseNone, res.Phase)
	assert.False(t, res.SufficientData)
	assert.Zero(t, res.MTTR)
	assert.Zero(t, res.MTBF)
	assert.Zero(t, res.TotalDowntime)
	assert.Equal(t, 100.0, res.AvailabilityPct)
	assert.Zero(t, res.MaintenanceEfficiencyPct)
	assert.Zero(t, res.FailureRate)
	assert.Equal(t, 100.0, res.ReliabilityPct)
}

func TestComputeKPIsSingleClosed(t *testing.T) {
	records := []model.Record{rec(1, "2025-05-05T09:00", "2025-05-05T15:00", "Closed")}
	res := ComputeKPIs(records, fullSchema, DefaultStatusLabels)

	assert.Equal(t, model.PhaseSingle, res.Phase)
	assert.True(t, res.SufficientData)
	assert.InDelta(t, 6.0, res.MTTR, 1e-9)
	assert.Zero(t, res.MTBF)
	assert.Equal(t, 100.0, res.AvailabilityPct)
	assert.Zero(t, res.MaintenanceEfficiencyPct)
	assert.Zero(t, res.FailureRate)
	assert.Equal(t, 100.0, res.ReliabilityPct)
}

func TestComputeKPIsTwoClosed(t *testing.T) {
	res := ComputeKPIs(twoClosed(), fullSchema, DefaultStatusLabels)

	require.Equal(t, model.PhaseMulti, res.Phase)
	assert.True(t, res.SufficientData)
	assert.False(t, res.DegenerateWindow)
	assert.InDelta(t, 167.5, res.PeriodSpanHours, 1e-9)
	assert.InDelta(t, 31.33, res.TotalDowntime, 0.01)
	assert.InDelta(t, 136.17, res.OperationalHours, 0.01)
	assert.InDelta(t, 68.08, res.MTBF, 0.01)
	assert.InDelta(t, 81.29, res.AvailabilityPct, 0.01)
	assert.InDelta(t, 15.67, res.MTTR, 0.01)
	assert.InDelta(t, 100*(1-res.MTTR/res.MTBF), res.MaintenanceEfficiencyPct, 1e-9)
	assert.InDelta(t, 1/res.MTBF, res.FailureRate, 1e-12)
	assert.InDelta(t, 100*math.Exp(-2), res.ReliabilityPct, 1e-6)
}

func TestComputeKPIsOrderIndependent(t *testing.T) {
	records := twoClosed()
	records[0], records[1] = records[1], records[0]
	assert.Equal(t, ComputeKPIs(twoClosed(), fullSchema, DefaultStatusLabels).MTBF,
		ComputeKPIs(records, fullSchema, DefaultStatusLabels).MTBF)
}

func TestComputeKPIsOpenExcluded(t *testing.T) {
	base := ComputeKPIs(twoClosed(), fullSchema, DefaultStatusLabels)

	records := append(twoClosed(),
		rec(3, "2025-05-20T10:00", "2025-05-22T10:00", "Open"),
		rec(4, "2025-04-01T10:00", "", "Open"),
	)
	res := ComputeKPIs(records, fullSchema, DefaultStatusLabels)

	assert.Equal(t, base.MTTR, res.MTTR)
	assert.Equal(t, base.MTBF, res.MTBF)
	assert.Equal(t, base.AvailabilityPct, res.AvailabilityPct)
	assert.Equal(t, 2, res.OpenCount)
	assert.Equal(t, 4, res.TotalCount)
	assert.Equal(t, 2, res.ClosedCount)
}

func TestComputeKPIsOtherStatusesCountOnlyInTotal(t *testing.T) {
	records := append(twoClosed(), rec(3, "2025-05-06T10:00", "2025-05-06T11:00", "Pending"))
	res := ComputeKPIs(records, fullSchema, DefaultStatusLabels)

	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, 2, res.ClosedCount)
	assert.Equal(t, 0, res.OpenCount)
}

func TestComputeKPIsMissingDuration(t *testing.T) {
	t.Run("only closed record", func(t *testing.T) {
		records := []model.Record{rec(1, "2025-05-05T09:00", "", "Closed")}
		res := ComputeKPIs(records, fullSchema, DefaultStatusLabels)

		assert.False(t, res.SufficientData)
		assert.Equal(t, 1, res.ClosedCount)
		assert.Equal(t, 1, res.ExcludedClosed)
		assert.Zero(t, res.MTTR)
		assert.Equal(t, 100.0, res.AvailabilityPct)
	})

	t.Run("excluded from mean and sum", func(t *testing.T) {
		records := append(twoClosed(), rec(3, "2025-05-08T12:00", "", "Closed"))
		res := ComputeKPIs(records, fullSchema, DefaultStatusLabels)

		assert.True(t, res.SufficientData)
		assert.Equal(t, 3, res.ClosedCount)
		assert.Equal(t, 1, res.ExcludedClosed)
		assert.InDelta(t, 15.67, res.MTTR, 0.01)
		assert.InDelta(t, 31.33, res.TotalDowntime, 0.01)
		assert.InDelta(t, 136.17/3, res.MTBF, 0.01)
	})

	t.Run("no downtime in schema", func(t *testing.T) {
		res := ComputeKPIs(twoClosed(), model.Schema{}, DefaultStatusLabels)
		assert.False(t, res.SufficientData)
		assert.Zero(t, res.MTBF)
	})
}

func TestComputeKPIsSuppliedHours(t *testing.T) {
	records := []model.Record{
		{Row: 1, Start: ts("2025-01-01T00:00"), Status: "Closed", DowntimeHours: hours(2)},
		{Row: 2, Start: ts("2025-01-02T00:00"), Status: "Closed", DowntimeHours: hours(4)},
	}
	res := ComputeKPIs(records, model.Schema{HasDowntime: true}, DefaultStatusLabels)

	assert.InDelta(t, 3.0, res.MTTR, 1e-9)
	assert.InDelta(t, 24.0, res.PeriodSpanHours, 1e-9)
	assert.InDelta(t, 9.0, res.MTBF, 1e-9)
	assert.InDelta(t, 75.0, res.AvailabilityPct, 1e-9)
}

func TestComputeKPIsDegenerateWindow(t *testing.T) {
	records := []model.Record{
		{Row: 1, Start: ts("2025-01-01T00:00"), Status: "Closed", DowntimeHours: hours(2)},
		{Row: 2, Start: ts("2025-01-01T00:00"), Status: "Closed", DowntimeHours: hours(4)},
	}
	res := ComputeKPIs(records, model.Schema{HasDowntime: true}, DefaultStatusLabels)

	assert.Equal(t, model.PhaseMulti, res.Phase)
	assert.True(t, res.DegenerateWindow)
	assert.InDelta(t, 3.0, res.MTTR, 1e-9)
	assert.Zero(t, res.MTBF)
	assert.Equal(t, 100.0, res.AvailabilityPct)
	assert.Equal(t, 100.0, res.ReliabilityPct)
}

func TestComputeKPIsNegativeOperational(t *testing.T) {
	records := []model.Record{
		{Row: 1, Start: ts("2025-01-01T00:00"), Status: "Closed", DowntimeHours: hours(30)},
		{Row: 2, Start: ts("2025-01-02T00:00"), Status: "Closed", DowntimeHours: hours(30)},
	}
	res := ComputeKPIs(records, model.Schema{HasDowntime: true}, DefaultStatusLabels)

	assert.Less(t, res.OperationalHours, 0.0)
	assert.Less(t, res.MTBF, 0.0)
	assert.Zero(t, res.FailureRate)
	assert.Equal(t, 100.0, res.ReliabilityPct)
}

func TestComputeKPIsIdempotent(t *testing.T) {
	records := append(twoClosed(), rec(3, "2025-05-20T10:00", "", "Open"))
	first := ComputeKPIs(records, fullSchema, DefaultStatusLabels)
	second := ComputeKPIs(records, fullSchema, DefaultStatusLabels)
	require.Equal(t, first, second)
}

func TestComputeKPIsCustomLabels(t *testing.T) {
	labels := StatusLabels{Closed: []string{"Fechado"}, Open: []string{"Aberto"}}
	records := []model.Record{
		rec(1, "2025-05-05T09:00", "2025-05-05T15:00", "Fechado"),
		rec(2, "2025-05-06T09:00", "", "Aberto"),
		rec(3, "2025-05-07T09:00", "2025-05-07T10:00", "Closed"),
	}
	res := ComputeKPIs(records, fullSchema, labels)

	assert.Equal(t, 1, res.ClosedCount)
	assert.Equal(t, 1, res.OpenCount)
	assert.Equal(t, 3, res.TotalCount)
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		closed int
		want   string
	}{
		{0, "NONE"},
		{1, "SINGLE"},
		{2, "MULTI"},
		{40, "MULTI"},
	}
	for _, tt := range tests {
		if got := phaseFor(tt.closed).String(); got != tt.want {
			t.Errorf("phaseFor(%d) = %s, want %s", tt.closed, got, tt.want)
		}
	}
}
