package ui

import (
	"github.com/ftahirops/mtop/engine"
	"github.com/ftahirops/mtop/model"
)

func renderPyramidPage(rep *model.Report, width int) string {
	innerW := pageInnerW(width)

	out := boxSection("SAFETY PYRAMID (BIRD 1:3:8:20:600, LOG SCALE)", pyramidChart(rep.Pyramid, innerW), innerW)

	var desc []string
	for _, l := range rep.Pyramid {
		desc = append(desc, hexStyle(l.Color).Render(padRight(l.Level, 28))+" "+dimStyle.Render(l.Description))
	}
	out += boxSection("LEVELS", desc, innerW)

	var notes []string
	for _, n := range engine.PyramidNotes {
		notes = append(notes, dimStyle.Render("• ")+n)
	}
	out += boxSection("INTERPRETATION", notes, innerW)

	var actions []string
	for _, a := range engine.SafetyActions {
		actions = append(actions, okStyle.Render("✓ ")+a)
	}
	out += boxSection("ACTIONS", actions, innerW)
	return out
}
