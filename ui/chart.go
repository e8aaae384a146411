package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ftahirops/mtop/model"
)

// areaChart renders a multi-line area chart with Y-axis labels, sub-cell
// resolution using fractional block characters, and per-cell coloring.
//
//	Downtime per month (h)                              last: 42.0
//	 60│
//	 48│          ████
//	 36│        ████████       ██
//	 24│    ████████████████████████
//	 12│████████████████████████████████
//	   └────────────────────────────────
//	   2025-01                   2025-06
func areaChart(data []float64, label string, width, height int, minVal, maxVal float64,
	colorFn func(float64, float64) lipgloss.Style, startLabel, endLabel string) string {

	if height < 2 {
		height = 2
	}
	if maxVal <= minVal {
		maxVal = minVal + 1
	}

	axisW := 4 // e.g. "100│"
	chartW := width - axisW - 1
	if chartW < 10 {
		chartW = 10
	}

	resampled := stretchData(resampleData(data, chartW), chartW)

	// Sub-block characters for fractional fill within a cell
	subBlocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var sb strings.Builder

	last := float64(0)
	if len(data) > 0 {
		last = data[len(data)-1]
	}
	sb.WriteString(titleStyle.Render(label))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  last: %.1f", last)))
	sb.WriteString("\n")

	rangeVal := maxVal - minVal

	for row := height - 1; row >= 0; row-- {
		yVal := minVal + (float64(row+1)/float64(height))*rangeVal
		sb.WriteString(dimStyle.Render(fmt.Sprintf("%3.0f", yVal)))
		sb.WriteString(dimStyle.Render("│"))

		for col := 0; col < len(resampled); col++ {
			val := resampled[col]
			normalized := (val - minVal) / rangeVal * float64(height)

			cellBottom := float64(row)
			cellTop := float64(row + 1)

			var ch rune
			if normalized >= cellTop {
				ch = '█'
			} else if normalized <= cellBottom {
				ch = ' '
			} else {
				idx := int((normalized - cellBottom) * 8)
				if idx >= len(subBlocks) {
					idx = len(subBlocks) - 1
				}
				if idx < 0 {
					idx = 0
				}
				ch = subBlocks[idx]
			}

			if ch == ' ' {
				sb.WriteRune(' ')
			} else {
				sb.WriteString(colorFn(val, (val-minVal)/rangeVal).Render(string(ch)))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(dimStyle.Render("   └" + strings.Repeat("─", len(resampled))))
	sb.WriteString("\n")

	if startLabel != "" && endLabel != "" {
		gap := len(resampled) - len(startLabel) - len(endLabel) + axisW
		if gap < 1 {
			gap = 1
		}
		sb.WriteString(dimStyle.Render("   " + startLabel + strings.Repeat(" ", gap) + endLabel))
	}

	return sb.String()
}

// resampleData reduces or returns data to fit targetWidth columns.
func resampleData(data []float64, targetWidth int) []float64 {
	if len(data) == 0 {
		return data
	}
	if len(data) <= targetWidth {
		return data
	}
	result := make([]float64, targetWidth)
	for i := 0; i < targetWidth; i++ {
		// Average the bucket of source values that map to this column
		srcStart := i * len(data) / targetWidth
		srcEnd := (i + 1) * len(data) / targetWidth
		if srcEnd > len(data) {
			srcEnd = len(data)
		}
		if srcStart >= srcEnd {
			srcStart = maxInt(srcEnd-1, 0)
		}
		sum := float64(0)
		count := 0
		for j := srcStart; j < srcEnd; j++ {
			sum += data[j]
			count++
		}
		if count > 0 {
			result[i] = sum / float64(count)
		}
	}
	return result
}

// stretchData repeats each point so a short series fills targetWidth.
func stretchData(data []float64, targetWidth int) []float64 {
	if len(data) == 0 || len(data) >= targetWidth {
		return data
	}
	out := make([]float64, targetWidth)
	for i := range out {
		out[i] = data[i*len(data)/targetWidth]
	}
	return out
}

// trendChartColor colors monthly values relative to the series peak.
func trendChartColor(val, ratio float64) lipgloss.Style {
	switch {
	case ratio >= 0.8:
		return critStyle
	case ratio >= 0.5:
		return warnStyle
	default:
		return okStyle
	}
}

// autoScale computes a "nice" Y-axis max with some headroom above the
// largest value.
func autoScale(data []float64) float64 {
	maxVal := float64(0)
	for _, v := range data {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return 5 // minimum scale for all-zero data
	}
	target := maxVal * 1.3
	mag := math.Pow(10, math.Floor(math.Log10(target)))
	for _, n := range []float64{1, 2, 2.5, 5, 10} {
		if target <= n*mag {
			return n * mag
		}
	}
	return 10 * mag
}

// barChart renders labelled horizontal bars, largest first.
func barChart(counts []model.Count, innerW int, style lipgloss.Style) []string {
	if len(counts) == 0 {
		return []string{dimStyle.Render("no data")}
	}
	maxVal := counts[0].Value
	for _, c := range counts {
		if c.Value > maxVal {
			maxVal = c.Value
		}
	}
	barW := innerW - colLabel - 10
	if barW < 10 {
		barW = 10
	}
	lines := make([]string, 0, len(counts))
	for _, c := range counts {
		label := c.Label
		if strings.TrimSpace(label) == "" {
			label = "(blank)"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			valueStyle.Render(padRight(label, colLabel)),
			hbar(c.Value, maxVal, barW, style),
			padLeft(humanize.Comma(int64(c.Value)), 7)))
	}
	return lines
}

// pyramidChart renders the pyramid levels as centred bars on a log scale,
// top tier first.
func pyramidChart(levels []model.PyramidLevel, innerW int) []string {
	if len(levels) == 0 {
		return nil
	}
	maxLog := 0.0
	for _, l := range levels {
		maxLog = math.Max(maxLog, math.Log10(float64(l.Count)+1))
	}
	labelW := 28
	barW := innerW - labelW - 8
	if barW < 10 {
		barW = 10
	}
	lines := make([]string, 0, len(levels))
	for _, l := range levels {
		w := barW
		if maxLog > 0 {
			w = int(math.Log10(float64(l.Count)+1) / maxLog * float64(barW))
		}
		w = maxInt(w, 1)
		left := (barW - w) / 2
		bar := strings.Repeat(" ", left) + hexStyle(l.Color).Render(strings.Repeat("█", w)) + strings.Repeat(" ", barW-w-left)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			bar,
			padLeft(humanize.Comma(int64(l.Count)), 5),
			valueStyle.Render(truncate(l.Level, labelW))))
	}
	return lines
}
