// Package export renders datasets and reports as CSV, JSON and Markdown.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ftahirops/mtop/model"
)

// TimeLayout is used for timestamps in CSV output.
const TimeLayout = "2006-01-02 15:04:05"

// Derived CSV columns.
const (
	ColDerivedHours    = "downtime_hours"
	ColMonth           = "month"
	ColMaintenanceType = "maintenance_type"
)

// WriteCSV writes records as UTF-8 CSV with a header row and no index
// column. Source columns keep their order; timestamps are written from the
// parsed values. A source Downtime Hours column carries the effective hours,
// supplied or derived from start and end; a cell with no usable hours keeps
// its raw text. downtime_hours is appended only when the hours were derived
// and the source has no downtime column, month always, and maintenance_type
// when the dataset has a cause column.
func WriteCSV(w io.Writer, ds *model.Dataset, records []model.Record, month func(model.Record) string, classify func(string) string) error {
	canonical := make(map[int]string, len(ds.Columns))
	for name, idx := range ds.Columns {
		canonical[idx] = name
	}

	header := append([]string(nil), ds.Headers...)
	_, hasDowntimeCol := ds.Columns[model.ColDowntime]
	derived := ds.Schema.DerivedHours && !hasDowntimeCol
	if derived {
		header = append(header, ColDerivedHours)
	}
	header = append(header, ColMonth)
	if ds.Schema.HasCause {
		header = append(header, ColMaintenanceType)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, 0, len(header))
	for _, r := range records {
		row = row[:0]
		for i := range ds.Headers {
			cell := ""
			if i < len(r.Cells) {
				cell = r.Cells[i]
			}
			if name, ok := canonical[i]; ok && (name != model.ColDowntime || r.DowntimeHours != nil) {
				cell = fieldValue(r, name)
			}
			row = append(row, cell)
		}
		if derived {
			row = append(row, formatHours(r.DowntimeHours))
		}
		row = append(row, month(r))
		if ds.Schema.HasCause {
			row = append(row, classify(r.Cause))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", r.Row, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func fieldValue(r model.Record, column string) string {
	switch column {
	case model.ColStart:
		return formatTime(r.Start)
	case model.ColEnd:
		return formatTime(r.End)
	case model.ColStatus:
		return r.Status
	case model.ColDowntime:
		return formatHours(r.DowntimeHours)
	case model.ColLocation:
		return r.Location
	case model.ColEquipment:
		return r.Equipment
	case model.ColCause:
		return r.Cause
	}
	return ""
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(TimeLayout)
}

func formatHours(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', 2, 64)
}
