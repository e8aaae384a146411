// Package loader reads downtime spreadsheets into model.Dataset values.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ftahirops/mtop/model"
	"github.com/ftahirops/mtop/util"
)

// ErrUnsupportedFormat is returned when no source handles a file type.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// requiredColumns must be present in every dataset.
var requiredColumns = []string{model.ColStart, model.ColStatus}

// MissingColumnsError lists required columns absent from the header row.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// Options configures a load.
type Options struct {
	// Aliases maps canonical column names to accepted source headers.
	Aliases  map[string][]string
	Registry *Registry
	Logger   *zap.Logger
	Now      func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Registry == nil {
		o.Registry = NewRegistry()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Load reads the file at path, choosing the source by extension.
func Load(path string, opts Options) (*model.Dataset, error) {
	opts = opts.withDefaults()
	src, err := opts.Registry.ForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	defer f.Close()
	return read(src, f, filepath.Base(path), opts)
}

// LoadReader reads an uploaded spreadsheet of the given format.
func LoadReader(r io.Reader, format, name string, opts Options) (*model.Dataset, error) {
	opts = opts.withDefaults()
	src, err := opts.Registry.ForFormat(format)
	if err != nil {
		return nil, err
	}
	return read(src, r, name, opts)
}

func read(src Source, r io.Reader, name string, opts Options) (*model.Dataset, error) {
	table, err := src.Read(r)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	ds, err := Build(table, opts)
	if err != nil {
		return nil, err
	}
	ds.Source = name
	opts.Logger.Info("dataset loaded",
		zap.String("source", name),
		zap.String("format", src.Name()),
		zap.Int("rows", ds.Stats.Rows),
		zap.Int("unparsed_start", ds.Stats.UnparsedStart),
		zap.Int("unparsed_end", ds.Stats.UnparsedEnd),
		zap.Int("negative_durations", ds.Stats.NegativeDurations),
		zap.Bool("derived_hours", ds.Schema.DerivedHours))
	return ds, nil
}

// Build converts a raw table into a dataset: maps headers, checks required
// columns, coerces timestamps and numbers, and derives downtime hours.
func Build(t *Table, opts Options) (*model.Dataset, error) {
	opts = opts.withDefaults()
	cols := resolveColumns(t.Headers, opts.Aliases)

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	_, hasEnd := cols[model.ColEnd]
	_, hasDowntime := cols[model.ColDowntime]
	_, hasLocation := cols[model.ColLocation]
	_, hasEquipment := cols[model.ColEquipment]
	_, hasCause := cols[model.ColCause]

	ds := &model.Dataset{
		ID:       uuid.NewString(),
		LoadedAt: opts.Now(),
		Headers:  append([]string(nil), t.Headers...),
		Columns:  cols,
		Schema: model.Schema{
			HasEnd:       hasEnd,
			HasDowntime:  hasDowntime || hasEnd,
			HasLocation:  hasLocation,
			HasEquipment: hasEquipment,
			HasCause:     hasCause,
		},
	}

	cell := func(row []string, col string) string {
		idx, ok := cols[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	for i, row := range t.Rows {
		rec := model.Record{
			Row:       i + 1,
			Status:    cell(row, model.ColStatus),
			Location:  cell(row, model.ColLocation),
			Equipment: cell(row, model.ColEquipment),
			Cause:     cell(row, model.ColCause),
			Cells:     row,
		}

		if raw := cell(row, model.ColStart); raw != "" {
			if ts, ok := parseTime(raw, t.SerialDates); ok {
				rec.Start = &ts
			} else {
				ds.Stats.UnparsedStart++
			}
		}
		if raw := cell(row, model.ColEnd); raw != "" {
			if ts, ok := parseTime(raw, t.SerialDates); ok {
				rec.End = &ts
			} else {
				ds.Stats.UnparsedEnd++
			}
		}

		if raw := cell(row, model.ColDowntime); raw != "" {
			if v, ok := util.ParseFloat64(raw); !ok {
				ds.Stats.UnparsedDowntime++
			} else if v < 0 {
				ds.Stats.NegativeDurations++
			} else {
				rec.DowntimeHours = &v
			}
		}
		if rec.DowntimeHours == nil && rec.Start != nil && rec.End != nil {
			h := util.Hours(rec.End.Sub(*rec.Start))
			if h < 0 {
				ds.Stats.NegativeDurations++
			} else {
				rec.DowntimeHours = &h
				ds.Schema.DerivedHours = true
			}
		}

		ds.Records = append(ds.Records, rec)
	}
	ds.Stats.Rows = len(ds.Records)

	if !hasDowntime && !hasEnd {
		ds.Warnings = append(ds.Warnings, model.Warning{
			Severity: "warn",
			Signal:   "Downtime",
			Detail:   "End Time column not found; downtime hours cannot be derived",
		})
	}
	if n := ds.Stats.UnparsedStart; n > 0 {
		ds.Warnings = append(ds.Warnings, model.Warning{
			Severity: "info",
			Signal:   "Start Time",
			Detail:   "unparseable start times excluded from time-based metrics",
			Value:    fmt.Sprintf("%d rows", n),
		})
	}
	if n := ds.Stats.NegativeDurations; n > 0 {
		ds.Warnings = append(ds.Warnings, model.Warning{
			Severity: "warn",
			Signal:   "Negative downtime",
			Detail:   "end before start; duration treated as unknown",
			Value:    fmt.Sprintf("%d rows", n),
		})
	}
	return ds, nil
}
