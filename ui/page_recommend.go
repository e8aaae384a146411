package ui

import "github.com/ftahirops/mtop/model"

func renderRecommendationsPage(rep *model.Report, width int) string {
	innerW := pageInnerW(width)
	var out string
	for _, g := range rep.Recommendations {
		var lines []string
		for _, item := range g.Items {
			lines = append(lines, priorityColor(g.Priority).Render("● ")+valueStyle.Render(truncate(item, innerW-2)))
		}
		out += boxSection(g.Priority+" PRIORITY", lines, innerW)
	}
	return out
}
