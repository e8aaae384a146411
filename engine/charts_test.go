package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ftahirops/mtop/model"
)

func TestBuildCharts(t *testing.T) {
	ds := testDataset()
	c := BuildCharts(ds.Records, ds.Schema, ChartOptions{PreventiveKeywords: DefaultPreventiveKeywords})

	assert.Equal(t, []model.Count{{Label: "North", Value: 2}, {Label: "South", Value: 2}, {Label: "East", Value: 1}}, c.ByLocation)
	assert.Equal(t, []model.Count{{Label: "Truck 1", Value: 2}, {Label: "Truck 2", Value: 2}, {Label: "Loader", Value: 1}}, c.ByEquipment)
	assert.Equal(t, []model.Count{
		{Label: TypePreventive, Value: 2},
		{Label: TypeCorrective, Value: 2},
		{Label: TypeUnspecified, Value: 1},
	}, c.MaintenanceTypes)

	assert.True(t, c.TrendIsDowntime)
	if assert.Len(t, c.MonthlyTrend, 2) {
		assert.Equal(t, "2025-05", c.MonthlyTrend[0].Month)
		assert.InDelta(t, 31.33, c.MonthlyTrend[0].Value, 0.01)
		assert.Equal(t, "2025-06", c.MonthlyTrend[1].Month)
		assert.InDelta(t, 4.0, c.MonthlyTrend[1].Value, 1e-9)
	}
}

func TestBuildChartsMissingColumns(t *testing.T) {
	ds := testDataset()
	c := BuildCharts(ds.Records, model.Schema{}, ChartOptions{})

	assert.Nil(t, c.ByLocation)
	assert.Nil(t, c.ByEquipment)
	assert.Nil(t, c.MaintenanceTypes)
	assert.Nil(t, c.CauseKeywords)
	assert.False(t, c.TrendIsDowntime)
	// Without downtime the trend counts stops per month.
	assert.Equal(t, []model.MonthPoint{{Month: "2025-05", Value: 2}, {Month: "2025-06", Value: 2}}, c.MonthlyTrend)
}

func TestCauseKeywords(t *testing.T) {
	records := []model.Record{
		{Cause: "Brake failure on axle"},
		{Cause: "Engine failure"},
		{Cause: "Falha no freio, falha"},
		{Cause: ""},
	}
	got := causeKeywords(records, 0, 2)

	assert.Equal(t, []model.Count{{Label: "failure", Value: 2}, {Label: "falha", Value: 2}}, got)
}

func TestCauseKeywordsRuneLength(t *testing.T) {
	got := causeKeywords([]model.Record{{Cause: "ação útil"}}, 4, 10)
	assert.Equal(t, []model.Count{{Label: "ação", Value: 1}, {Label: "útil", Value: 1}}, got)
}

func TestMonthBucket(t *testing.T) {
	assert.Equal(t, "2025-05", MonthBucket(rec(1, "2025-05-31T23:00", "", "Closed")))
	assert.Equal(t, "", MonthBucket(model.Record{}))
}
