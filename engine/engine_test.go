package engine

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftahirops/mtop/config"
	"github.com/ftahirops/mtop/loader"
	"github.com/ftahirops/mtop/model"
)

var fixedNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	opts := OptionsFromConfig(config.Default())
	opts.Now = func() time.Time { return fixedNow }
	return New(testDataset(), opts)
}

func TestEngineCompute(t *testing.T) {
	e := newTestEngine()
	sel := model.Selection{Statuses: []string{"Closed", "Open"}}
	rep := e.Compute(sel)

	assert.Equal(t, fixedNow, rep.GeneratedAt)
	assert.Equal(t, 5, rep.Info.Total)
	assert.Len(t, rep.Info.Preview, 5)
	assert.Equal(t, 5, rep.Filtered)
	assert.Equal(t, 4, rep.KPI.ClosedCount)
	assert.Equal(t, 1, rep.KPI.OpenCount)
	assert.Equal(t, 1, rep.KPI.ExcludedClosed)
	assert.Len(t, rep.Pyramid, 5)
	assert.Len(t, rep.Recommendations, 3)
	assert.NotEmpty(t, rep.Charts.ByLocation)
	assert.Equal(t, sel, rep.Selection)
}

func TestEngineComputeIdempotent(t *testing.T) {
	e := newTestEngine()
	sel := model.Selection{Locations: []string{"North", "South"}}
	require.Equal(t, e.Compute(sel), e.Compute(sel))
}

func TestEngineComputeEmptySelection(t *testing.T) {
	e := newTestEngine()
	rep := e.Compute(model.Selection{Locations: []string{"Nowhere"}})

	assert.Zero(t, rep.Filtered)
	assert.False(t, rep.KPI.SufficientData)
	assert.Equal(t, 100.0, rep.KPI.AvailabilityPct)
	assert.Contains(t, signals(rep.Warnings), "Insufficient data")
}

func TestEngineExportCSV(t *testing.T) {
	e := newTestEngine()
	data, err := e.ExportCSV(model.Selection{Locations: []string{"North"}})
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Start Time", "End Time", "Status", "Location", "Equipment", "Cause",
		"downtime_hours", "month", "maintenance_type"}, rows[0])
	assert.Equal(t, "2025-05", rows[1][7])
	assert.Equal(t, TypePreventive, rows[1][8])
	assert.Equal(t, TypeCorrective, rows[2][8])
}

func TestEngineExportCSVMemoized(t *testing.T) {
	e := newTestEngine()
	first, err := e.ExportCSV(model.Selection{Locations: []string{"North"}})
	require.NoError(t, err)

	// Different selection, same row set: cached bytes are reused.
	second, err := e.ExportCSV(model.Selection{Locations: []string{"North"}, Statuses: []string{"Closed", "Open"}})
	require.NoError(t, err)
	assert.Same(t, &first[0], &second[0])

	third, err := e.ExportCSV(model.Selection{Locations: []string{"South"}})
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Statuses.Closed = []string{"Fechado"}
	cfg.Targets.AvailabilityPct = 90

	opts := OptionsFromConfig(cfg).withDefaults()
	assert.Equal(t, []string{"Fechado"}, opts.Labels.Closed)
	assert.Equal(t, 90.0, opts.AvailabilityTarget)
	assert.Equal(t, cfg.UI.PreviewRows, opts.PreviewRows)
	assert.NotNil(t, opts.Logger)
}

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	assert.Nil(t, h.Latest())
	assert.Nil(t, h.Previous())

	for i := 1; i <= 4; i++ {
		h.Push(Sample{KPI: model.KPIResult{MTTR: float64(i)}})
	}
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 4.0, h.Latest().KPI.MTTR)
	assert.Equal(t, 3.0, h.Previous().KPI.MTTR)
	assert.Equal(t, []float64{2, 3, 4}, h.Series(func(k model.KPIResult) float64 { return k.MTTR }))
}

const portugueseSheet = `Data Início,Data Fim,Local,Equipamento,Causa,Status
2025-05-05 09:00:00,2025-05-05 15:00:00,AGR Cabiúnas,Empilhadeira 2.5 ton,Freio de mão travado,Fechado
2025-05-12 08:30:00,2025-05-13 09:50:00,AGR Cabiúnas,Empilhadeira 4 ton,Cabo de bateria com folga,Fechado
`

func TestPortugueseSheetWithDefaults(t *testing.T) {
	cfg := config.Default()
	ds, err := loader.LoadReader(strings.NewReader(portugueseSheet), "csv", "exemplo.csv",
		loader.Options{Aliases: cfg.Columns.Aliases})
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	rep := New(ds, OptionsFromConfig(cfg)).Compute(DefaultSelection(ds))
	assert.Equal(t, 2, rep.KPI.ClosedCount)
	assert.True(t, rep.KPI.SufficientData)
	assert.InDelta(t, 15.67, rep.KPI.MTTR, 0.01)
	assert.InDelta(t, 68.08, rep.KPI.MTBF, 0.01)
	assert.InDelta(t, 81.29, rep.KPI.AvailabilityPct, 0.01)
}

func TestDefaultLabelsAcceptPortuguese(t *testing.T) {
	opts := Options{}.withDefaults()
	assert.True(t, opts.Labels.IsClosed("Fechado"))
	assert.True(t, opts.Labels.IsOpen("Aberto"))
	assert.True(t, opts.Labels.IsClosed("Closed"))
	assert.False(t, opts.Labels.IsClosed("Aberto"))
}

func TestAvailabilityTargetFromConfig(t *testing.T) {
	cfg := config.Default()
	ds, err := loader.LoadReader(strings.NewReader(portugueseSheet), "csv", "exemplo.csv",
		loader.Options{Aliases: cfg.Columns.Aliases})
	require.NoError(t, err)

	rep := New(ds, OptionsFromConfig(cfg)).Compute(DefaultSelection(ds))
	assert.Contains(t, signals(rep.Warnings), "Availability")

	cfg.Targets.AvailabilityPct = 0
	require.NoError(t, cfg.Validate())
	opts := OptionsFromConfig(cfg)
	assert.Zero(t, opts.withDefaults().AvailabilityTarget)

	rep = New(ds, opts).Compute(DefaultSelection(ds))
	assert.NotContains(t, signals(rep.Warnings), "Availability")
}
