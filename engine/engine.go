package engine

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ftahirops/mtop/config"
	"github.com/ftahirops/mtop/export"
	"github.com/ftahirops/mtop/model"
)

// Options configures report computation.
type Options struct {
	Labels             StatusLabels
	Charts             ChartOptions
	// AvailabilityTarget is the goal in percent. Zero turns the
	// availability warning off.
	AvailabilityTarget float64
	PreviewRows        int
	Now                func() time.Time
	Logger             *zap.Logger
}

// OptionsFromConfig maps user configuration onto engine options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Labels: StatusLabels{Closed: cfg.Statuses.Closed, Open: cfg.Statuses.Open},
		Charts: ChartOptions{
			PreventiveKeywords: cfg.Classifier.PreventiveKeywords,
			TopCauseWords:      cfg.UI.TopCauseWords,
			MinCauseWordLength: cfg.UI.MinCauseLength,
		},
		AvailabilityTarget: cfg.Targets.AvailabilityPct,
		PreviewRows:        cfg.UI.PreviewRows,
	}
}

func (o Options) withDefaults() Options {
	if len(o.Labels.Closed) == 0 && len(o.Labels.Open) == 0 {
		o.Labels = DefaultStatusLabels
	}
	if o.Charts.PreventiveKeywords == nil {
		o.Charts.PreventiveKeywords = DefaultPreventiveKeywords
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Engine computes reports over one loaded dataset. The dataset is never
// modified; every Compute call starts from it.
type Engine struct {
	ds   *model.Dataset
	opts Options

	exportMu   sync.Mutex // guards the one-entry export cache
	exportKey  string
	exportData []byte
}

// New creates an engine for ds.
func New(ds *model.Dataset, opts Options) *Engine {
	return &Engine{ds: ds, opts: opts.withDefaults()}
}

// Dataset returns the loaded dataset.
func (e *Engine) Dataset() *model.Dataset {
	return e.ds
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Compute filters the dataset with sel and derives the full report.
func (e *Engine) Compute(sel model.Selection) *model.Report {
	records := ApplyFilter(e.ds, sel)
	kpi := ComputeKPIs(records, e.ds.Schema, e.opts.Labels)

	warns := append([]model.Warning(nil), e.ds.Warnings...)
	warns = append(warns, ComputeWarnings(kpi, e.ds.Schema, e.opts.AvailabilityTarget)...)

	rep := &model.Report{
		GeneratedAt:     e.opts.Now(),
		Info:            Info(e.ds, e.opts.PreviewRows),
		Schema:          e.ds.Schema,
		Selection:       sel,
		Filtered:        len(records),
		KPI:             kpi,
		Charts:          BuildCharts(records, e.ds.Schema, e.opts.Charts),
		Pyramid:         BirdPyramid(),
		Recommendations: Recommendations(),
		Warnings:        warns,
	}
	e.opts.Logger.Debug("report computed",
		zap.String("dataset", e.ds.ID),
		zap.Int("filtered", len(records)),
		zap.Stringer("phase", kpi.Phase),
	)
	return rep
}

// Filtered returns the records selected by sel.
func (e *Engine) Filtered(sel model.Selection) []model.Record {
	return ApplyFilter(e.ds, sel)
}

// ExportCSV renders the filtered records as CSV. The last result is cached
// and reused while the filtered row set is unchanged.
func (e *Engine) ExportCSV(sel model.Selection) ([]byte, error) {
	records := ApplyFilter(e.ds, sel)
	key := exportKey(e.ds.ID, records)

	e.exportMu.Lock()
	defer e.exportMu.Unlock()
	if e.exportData != nil && e.exportKey == key {
		return e.exportData, nil
	}

	keywords := e.opts.Charts.PreventiveKeywords
	classify := func(cause string) string { return ClassifyMaintenance(cause, keywords) }

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, e.ds, records, MonthBucket, classify); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	e.exportKey = key
	e.exportData = buf.Bytes()
	e.opts.Logger.Debug("csv export rendered", zap.String("dataset", e.ds.ID), zap.Int("rows", len(records)))
	return e.exportData, nil
}

// exportKey identifies a filtered row set.
func exportKey(datasetID string, records []model.Record) string {
	var b strings.Builder
	b.WriteString(datasetID)
	for _, r := range records {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(r.Row))
	}
	return b.String()
}
