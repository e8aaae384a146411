package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ftahirops/mtop/model"
)

type dataView struct {
	preview bool
	columns bool
	full    bool
}

// Record table column widths.
const (
	colRow  = 6
	colTime = 16
	colStat = 10
	colHrs  = 8
	colText = 14
)

func renderDataPage(rep *model.Report, filtered []model.Record, v dataView, width int) string {
	innerW := pageInnerW(width)
	var out string

	if v.preview {
		out += boxSection(fmt.Sprintf("PREVIEW (FIRST %d ROWS)", len(rep.Info.Preview)),
			recordTable(rep.Info.Preview, rep.Schema, innerW), innerW)
	}
	if v.columns {
		var lines []string
		for i, c := range rep.Info.Columns {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("%3d  ", i+1))+valueStyle.Render(c))
		}
		out += boxSection("COLUMNS", lines, innerW)
	}
	if v.full {
		out += boxSection(fmt.Sprintf("SELECTED ROWS (%s)", humanize.Comma(int64(len(filtered)))),
			recordTable(filtered, rep.Schema, innerW), innerW)
	}
	if out == "" {
		out = boxSection("DATA", []string{dimStyle.Render("p: preview  l: columns  t: full table")}, innerW)
	}
	return out
}

// recordTable renders records with one column per known field.
func recordTable(records []model.Record, schema model.Schema, innerW int) []string {
	header := padRight("Row", colRow) + padRight("Start", colTime+1) + padRight("Status", colStat)
	if schema.HasEnd {
		header += padRight("End", colTime+1)
	}
	if schema.HasDowntime {
		header += padLeft("Hours", colHrs) + " "
	}
	if schema.HasLocation {
		header += padRight("Location", colText)
	}
	if schema.HasEquipment {
		header += padRight("Equipment", colText)
	}
	if schema.HasCause {
		header += "Cause"
	}
	lines := []string{headerStyle.Render(truncate(header, innerW))}
	if len(records) == 0 {
		return append(lines, dimStyle.Render("no rows"))
	}

	for _, r := range records {
		var sb strings.Builder
		sb.WriteString(padRight(fmt.Sprintf("%d", r.Row), colRow))
		sb.WriteString(padRight(fmtTime(r.Start), colTime+1))
		sb.WriteString(padRight(r.Status, colStat))
		if schema.HasEnd {
			sb.WriteString(padRight(fmtTime(r.End), colTime+1))
		}
		if schema.HasDowntime {
			h := "-"
			if r.DowntimeHours != nil {
				h = fmt.Sprintf("%.2f", *r.DowntimeHours)
			}
			sb.WriteString(padLeft(h, colHrs) + " ")
		}
		if schema.HasLocation {
			sb.WriteString(padRight(r.Location, colText))
		}
		if schema.HasEquipment {
			sb.WriteString(padRight(r.Equipment, colText))
		}
		if schema.HasCause {
			sb.WriteString(r.Cause)
		}
		lines = append(lines, truncate(sb.String(), innerW))
	}
	return lines
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
