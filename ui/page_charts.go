package ui

import (
	"strings"

	"github.com/ftahirops/mtop/model"
)

func renderChartsPage(rep *model.Report, show bool, width, height int) string {
	innerW := pageInnerW(width)
	if !show {
		return boxSection("CHARTS", []string{dimStyle.Render("charts hidden, press c to show")}, innerW)
	}
	c := rep.Charts
	var out string

	if rep.Schema.HasLocation {
		out += boxSection("STOPS BY LOCATION", barChart(c.ByLocation, innerW, orangeStyle), innerW)
	}
	if rep.Schema.HasEquipment {
		out += boxSection("STOPS BY EQUIPMENT", barChart(c.ByEquipment, innerW, titleStyle), innerW)
	}

	title := "STOPS PER MONTH"
	label := "Stops"
	if c.TrendIsDowntime {
		title = "DOWNTIME PER MONTH"
		label = "Downtime (h)"
	}
	if len(c.MonthlyTrend) == 0 {
		out += boxSection(title, []string{dimStyle.Render("no dated rows")}, innerW)
		return out
	}
	data := make([]float64, len(c.MonthlyTrend))
	for i, p := range c.MonthlyTrend {
		data[i] = p.Value
	}
	chartH := height/4 + 2
	if chartH > 10 {
		chartH = 10
	}
	first, last := c.MonthlyTrend[0].Month, c.MonthlyTrend[len(c.MonthlyTrend)-1].Month
	chart := areaChart(data, label, innerW, chartH, 0, autoScale(data), trendChartColor, first, last)
	out += boxSection(title, strings.Split(strings.TrimRight(chart, "\n"), "\n"), innerW)
	return out
}
