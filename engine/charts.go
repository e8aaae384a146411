package engine

import (
	"sort"
	"unicode/utf8"

	"github.com/ftahirops/mtop/model"
	"github.com/ftahirops/mtop/util"
)

// ChartOptions tunes the chart aggregations.
type ChartOptions struct {
	PreventiveKeywords []string
	TopCauseWords      int
	MinCauseWordLength int
}

// BuildCharts aggregates the series behind every chart. Series whose
// column is missing are left nil.
func BuildCharts(records []model.Record, schema model.Schema, opts ChartOptions) model.Charts {
	var c model.Charts
	if schema.HasLocation {
		c.ByLocation = countBy(records, func(r model.Record) string { return r.Location })
	}
	if schema.HasEquipment {
		c.ByEquipment = countBy(records, func(r model.Record) string { return r.Equipment })
	}
	c.TrendIsDowntime = schema.HasDowntime
	c.MonthlyTrend = monthlyTrend(records, schema.HasDowntime)
	if schema.HasCause {
		c.MaintenanceTypes = countBy(records, func(r model.Record) string {
			return ClassifyMaintenance(r.Cause, opts.PreventiveKeywords)
		})
		c.CauseKeywords = causeKeywords(records, opts.MinCauseWordLength, opts.TopCauseWords)
	}
	return c
}

// countBy counts records per key, most frequent first.
func countBy(records []model.Record, key func(model.Record) string) []model.Count {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = key(r)
	}
	return countStrings(keys)
}

// countStrings counts occurrences, most frequent first; ties keep the
// order of first appearance.
func countStrings(keys []string) []model.Count {
	idx := map[string]int{}
	var out []model.Count
	for _, k := range keys {
		if i, ok := idx[k]; ok {
			out[i].Value++
			continue
		}
		idx[k] = len(out)
		out = append(out, model.Count{Label: k, Value: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// MonthBucket returns the YYYY-MM bucket of a record, or "" without a start.
func MonthBucket(r model.Record) string {
	if r.Start == nil {
		return ""
	}
	return r.Start.Format("2006-01")
}

// monthlyTrend sums downtime per month, or counts stops when the dataset
// has no downtime column. Months are chronological.
func monthlyTrend(records []model.Record, downtime bool) []model.MonthPoint {
	sums := map[string]float64{}
	for _, r := range records {
		m := MonthBucket(r)
		if m == "" {
			continue
		}
		if !downtime {
			sums[m]++
			continue
		}
		if h, ok := usableHours(r); ok {
			sums[m] += h
		} else if _, seen := sums[m]; !seen {
			sums[m] = 0
		}
	}
	out := make([]model.MonthPoint, 0, len(sums))
	for m, v := range sums {
		out = append(out, model.MonthPoint{Month: m, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// causeKeywords returns the most frequent cause words with at least
// minLen characters.
func causeKeywords(records []model.Record, minLen, top int) []model.Count {
	if minLen <= 0 {
		minLen = 5
	}
	if top <= 0 {
		top = 10
	}
	var words []string
	for _, r := range records {
		for _, w := range util.Words(r.Cause) {
			if utf8.RuneCountInString(w) >= minLen {
				words = append(words, w)
			}
		}
	}
	counts := countStrings(words)
	if len(counts) > top {
		counts = counts[:top]
	}
	return counts
}
