package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ftahirops/mtop/model"
)

// ExplainEntry describes one metric for the explain side panel.
type ExplainEntry struct {
	Metric string // "MTTR"
	Plain  string // "Average hours to repair a closed stop"
	Good   string // "< 4h"
	Bad    string // "> 24h"
}

// ── Per-page glossaries ──────────────────────────────────────────────────────

var overviewGlossary = []ExplainEntry{
	{"MTTR", "Mean Time To Repair: average downtime hours of a closed stop.", "low", "rising"},
	{"MTBF", "Mean Time Between Failures: operating hours between stops. Needs two closed stops.", "high", "falling"},
	{"Availability", "Share of the period between the first and last stop that equipment was running.", "> 95%", "< 85%"},
	{"Total downtime", "Sum of the repair hours of closed stops with a known duration.", "n/a", "n/a"},
	{"Efficiency", "1 - MTTR/MTBF. How small repairs are compared to running time.", "> 80%", "< 50%"},
	{"Failure rate", "1/MTBF. Expected stops per operating hour.", "low", "high"},
	{"Reliability", "exp(-operating/MTBF). Chance of running the whole period without a stop.", "high", "near 0"},
	{"Closed", "Stops with a recorded resolution. Only these feed MTTR and MTBF.", "n/a", "n/a"},
	{"Open", "Stops still unresolved. Counted, never averaged.", "0", "many"},
}

var pyramidGlossary = []ExplainEntry{
	{"Bird pyramid", "Fixed 1:3:8:20:600 ratio of safety events. Reference only, not computed from your data.", "n/a", "n/a"},
	{"Unsafe acts", "The wide base. Reducing them shrinks every tier above.", "reported", "hidden"},
	{"Near miss", "An event that almost caused harm. Report every one.", "reported", "ignored"},
	{"Lost-time accident", "The top tier: injuries with time off work.", "0", "> 0"},
}

var chartsGlossary = []ExplainEntry{
	{"By location", "Stops per site in the current selection.", "n/a", "n/a"},
	{"By equipment", "Stops per asset. Tall bars are candidates for root-cause work.", "even", "one dominant"},
	{"Monthly trend", "Downtime hours per month, or stop counts when durations are unknown.", "flat/falling", "rising"},
}

var causesGlossary = []ExplainEntry{
	{"Preventive", "Cause text mentions a planned activity: preventive, scheduled, wash, flush.", "growing share", "n/a"},
	{"Corrective", "Any other described cause: something broke.", "shrinking share", "dominant"},
	{"Unspecified", "No cause recorded.", "0", "many"},
	{"Cause words", "Most frequent words of five letters or more in the cause text.", "n/a", "n/a"},
}

var dataGlossary = []ExplainEntry{
	{"Preview", "First rows of the loaded file. Toggle with p.", "n/a", "n/a"},
	{"Full table", "Every row of the current selection. Toggle with t.", "n/a", "n/a"},
	{"Columns", "Headers found in the file. Toggle with l.", "n/a", "n/a"},
	{"Unparsed", "Cells that could not be read as a date or number. They are left blank.", "0", "> 0"},
}

var filtersGlossary = []ExplainEntry{
	{"Facets", "Location, equipment and status values to include. Tab switches facet.", "n/a", "n/a"},
	{"Date range", "Stops starting from the From day up to the end of the To day.", "n/a", "n/a"},
	{"Recompute", "Every change recomputes all KPIs and charts from the loaded file.", "n/a", "n/a"},
}

// glossaryForPage returns the appropriate glossary for the current page.
func glossaryForPage(page Page) []ExplainEntry {
	switch page {
	case PagePyramid, PageRecommendations:
		return pyramidGlossary
	case PageCharts:
		return chartsGlossary
	case PageCauses:
		return causesGlossary
	case PageData:
		return dataGlossary
	case PageFilters:
		return filtersGlossary
	default:
		return overviewGlossary
	}
}

// renderExplainSidePanel renders the explain side panel for the given page.
func renderExplainSidePanel(page Page, rep *model.Report, width, height, scrollOffset int) string {
	glossary := glossaryForPage(page)

	var sb strings.Builder
	innerW := width - 4
	if innerW < 16 {
		innerW = 16
	}
	border := dimStyle
	edge := border.Render("│")

	title := fmt.Sprintf(" EXPLAIN: %s ", pageNames[page])
	sb.WriteString(border.Render("┌"+strings.Repeat("─", 2)) +
		titleStyle.Render(title) +
		border.Render(strings.Repeat("─", maxInt(innerW-lipgloss.Width(title), 0))+"┐") + "\n")

	var contentLines []string
	blank := edge + " " + strings.Repeat(" ", innerW) + " " + edge
	for i, entry := range glossary {
		if i > 0 {
			contentLines = append(contentLines, blank)
		}
		contentLines = append(contentLines,
			edge+" "+styledPad(titleStyle.Render(truncate(entry.Metric, innerW)), innerW)+" "+edge)
		for _, dl := range wrapText(" "+entry.Plain, innerW) {
			contentLines = append(contentLines, edge+" "+styledPad(dimStyle.Render(dl), innerW)+" "+edge)
		}
		if entry.Good != "n/a" || entry.Bad != "n/a" {
			goodBad := ""
			if entry.Good != "n/a" {
				goodBad += " " + okStyle.Render("Good: "+entry.Good)
			}
			if entry.Bad != "n/a" {
				goodBad += "  " + critStyle.Render("Bad: "+entry.Bad)
			}
			contentLines = append(contentLines, edge+" "+styledPad(goodBad, innerW)+" "+edge)
		}
	}

	// Phase note on the overview
	if page == PageOverview && rep != nil {
		contentLines = append(contentLines, blank)
		contentLines = append(contentLines,
			edge+" "+styledPad(headerStyle.Render("── PHASE "+rep.KPI.Phase.String()), innerW)+" "+edge)
		for _, l := range wrapText(" "+phaseNote(rep.KPI), innerW) {
			contentLines = append(contentLines, edge+" "+styledPad(warnStyle.Render(l), innerW)+" "+edge)
		}
	}

	visibleLines := height - 4
	if visibleLines < 5 {
		visibleLines = 5
	}
	if scrollOffset > len(contentLines)-visibleLines {
		scrollOffset = len(contentLines) - visibleLines
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	end := minInt(scrollOffset+visibleLines, len(contentLines))
	for _, line := range contentLines[scrollOffset:end] {
		sb.WriteString(line + "\n")
	}

	hint := "E:close"
	sb.WriteString(border.Render("└"+strings.Repeat("─", maxInt(innerW+2-lipgloss.Width(hint), 0))) +
		dimStyle.Render(hint) + border.Render("┘") + "\n")
	return sb.String()
}

// phaseNote explains which KPI outputs the current phase can produce.
func phaseNote(k model.KPIResult) string {
	switch {
	case !k.SufficientData:
		return "Not enough data: every KPI shows its fallback value."
	case k.Phase == model.PhaseSingle:
		return "One closed stop: MTTR only. MTBF needs a second stop, availability shows 100%."
	case k.DegenerateWindow:
		return "Closed stops share one start time, so there is no window to measure MTBF."
	default:
		return fmt.Sprintf("%d closed stops over %.1f hours.", k.ClosedCount, k.PeriodSpanHours)
	}
}
