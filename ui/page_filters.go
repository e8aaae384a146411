package ui

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

func (m Model) renderFiltersPage(width int) string {
	innerW := pageInnerW(width)
	schema := m.engine.Dataset().Schema

	var out string
	dates := dimStyle.Render("no dated rows")
	if m.from != nil && m.to != nil {
		dates = fmt.Sprintf("%s %s   %s %s",
			dimStyle.Render("From"), valueStyle.Render(m.from.Format("2006-01-02")),
			dimStyle.Render("To"), valueStyle.Render(m.to.Format("2006-01-02")))
	}
	out += boxSection("DATE RANGE  [ ] from  { } to", []string{dates}, innerW)

	for f := 0; f < facetCount; f++ {
		available := f == facetStatus ||
			(f == facetLocation && schema.HasLocation) ||
			(f == facetEquipment && schema.HasEquipment)
		title := facetNames[f]
		if f == m.facet {
			title = "▶ " + title
		}
		if !available {
			out += boxSection(title, []string{dimStyle.Render("column not in file")}, innerW)
			continue
		}
		values := m.facetValues(f)
		n := 0
		for _, v := range values {
			if m.selected[f][v] {
				n++
			}
		}
		if n == 0 {
			title += "  (none selected: no filter)"
		} else {
			title += fmt.Sprintf("  (%d of %d)", n, len(values))
		}

		var lines []string
		for i, v := range values {
			mark := dimStyle.Render("[ ]")
			if m.selected[f][v] {
				mark = okStyle.Render("[x]")
			}
			label := v
			if label == "" {
				label = "(blank)"
			}
			line := mark + " " + truncate(label, innerW-6)
			if f == m.facet && i == m.cursor {
				line = selectedStyle.Render(styledPad(line, innerW))
			}
			lines = append(lines, line)
		}
		out += boxSection(title, lines, innerW)
	}

	out += dimStyle.Render(fmt.Sprintf("  %s of %s rows selected",
		humanize.Comma(int64(m.report.Filtered)), humanize.Comma(int64(m.report.Info.Total)))) + "\n"
	return out
}
