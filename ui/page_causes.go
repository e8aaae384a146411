package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ftahirops/mtop/engine"
	"github.com/ftahirops/mtop/model"
)

func renderCausesPage(rep *model.Report, show bool, width int) string {
	innerW := pageInnerW(width)
	if !rep.Schema.HasCause {
		return boxSection("CAUSES", []string{dimStyle.Render("the file has no Cause column")}, innerW)
	}
	if !show {
		return boxSection("CAUSES", []string{dimStyle.Render("charts hidden, press c to show")}, innerW)
	}
	c := rep.Charts

	total := 0.0
	for _, t := range c.MaintenanceTypes {
		total += t.Value
	}
	types := barChart(c.MaintenanceTypes, innerW-8, typeStyle(c.MaintenanceTypes))
	for i, t := range c.MaintenanceTypes {
		if total > 0 {
			types[i] += dimStyle.Render(fmt.Sprintf(" %5.1f%%", 100*t.Value/total))
		}
	}
	out := boxSection("MAINTENANCE TYPES", types, innerW)
	out += boxSection("MOST FREQUENT CAUSE WORDS", barChart(c.CauseKeywords, innerW, headerStyle), innerW)
	return out
}

// typeStyle colors the type chart by its leading type.
func typeStyle(types []model.Count) lipgloss.Style {
	if len(types) > 0 && types[0].Label == engine.TypeCorrective {
		return critStyle
	}
	return okStyle
}
