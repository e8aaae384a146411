package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Column widths used across pages for consistent alignment.
const (
	colKey      = 24 // KPI card label
	colLabel    = 22 // chart bar label
	maxBoxInner = 96 // max inner width for boxes
)

type kv struct {
	Key string
	Val string
}

// styledPad pads a styled string to the given visual width using spaces.
// Unlike fmt.Sprintf("%-Xs"), this accounts for ANSI escape codes.
func styledPad(styled string, width int) string {
	visW := lipgloss.Width(styled)
	if visW >= width {
		return styled
	}
	return styled + strings.Repeat(" ", width-visW)
}

// ─── BOX DRAWING HELPERS ─────────────────────────────────────────────────────

// boxTop renders the top border of a rounded box.
// Total visual width = innerW + 5 (1 indent + 1 corner + innerW+2 dashes + 1 corner).
func boxTop(innerW int) string {
	return " " + dimStyle.Render("╭"+strings.Repeat("─", innerW+2)+"╮")
}

// boxBot renders the bottom border of a rounded box.
func boxBot(innerW int) string {
	return " " + dimStyle.Render("╰"+strings.Repeat("─", innerW+2)+"╯")
}

// boxMid renders a horizontal divider inside a box.
func boxMid(innerW int) string {
	return " " + dimStyle.Render("├"+strings.Repeat("─", innerW+2)+"┤")
}

// boxRow renders one content line inside a box, padded to innerW.
func boxRow(content string, innerW int) string {
	visW := lipgloss.Width(content)
	pad := innerW - visW
	if pad < 0 {
		pad = 0
	}
	return " " + dimStyle.Render("│") + " " + content + strings.Repeat(" ", pad) + " " + dimStyle.Render("│")
}

// boxSection renders a titled section inside a bordered box.
func boxSection(title string, lines []string, innerW int) string {
	var sb strings.Builder
	sb.WriteString(boxTop(innerW) + "\n")
	sb.WriteString(boxRow(headerStyle.Render(title), innerW) + "\n")
	sb.WriteString(boxMid(innerW) + "\n")
	for _, line := range lines {
		sb.WriteString(boxRow(line, innerW) + "\n")
	}
	sb.WriteString(boxBot(innerW) + "\n")
	return sb.String()
}

// renderKVLines formats key-value pairs for a box section.
func renderKVLines(details []kv) []string {
	lines := make([]string, 0, len(details))
	for _, d := range details {
		lines = append(lines, styledPad(dimStyle.Render(d.Key+":"), colKey)+" "+d.Val)
	}
	return lines
}

// pageInnerW computes box inner width from terminal width.
func pageInnerW(termWidth int) int {
	w := termWidth - 6
	if w < 60 {
		w = 60
	}
	if w > maxBoxInner {
		w = maxBoxInner
	}
	return w
}

// hbar renders a horizontal bar scaled against maxVal.
func hbar(val, maxVal float64, width int, style lipgloss.Style) string {
	if width < 1 {
		width = 10
	}
	if maxVal <= 0 || val < 0 {
		return strings.Repeat("░", width)
	}
	filled := int(val / maxVal * float64(width))
	if filled > width {
		filled = width
	}
	if filled == 0 && val > 0 {
		filled = 1
	}
	return style.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

// padRight pads or truncates s to width runes.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		if n == width {
			return s
		}
		r := []rune(s)
		if width > 3 {
			return string(r[:width-3]) + "..."
		}
		if width < 0 {
			width = 0
		}
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-n)
}

// truncate shortens s to maxLen runes with ellipsis if needed.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		if maxLen < 0 {
			maxLen = 0
		}
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func padLeft(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return strings.Repeat(" ", width-len(r)) + s
}

// sparkline renders a simple single-line chart.
func sparkline(data []float64, width int, minVal, maxVal float64) string {
	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	if len(data) == 0 {
		return dimStyle.Render(strings.Repeat("░", maxInt(width, 1)) + " no data")
	}
	if maxVal <= minVal {
		maxVal = minVal + 1
	}

	var resampled []float64
	if len(data) <= width {
		resampled = data
	} else {
		resampled = make([]float64, width)
		for i := 0; i < width; i++ {
			srcIdx := i * len(data) / width
			if srcIdx >= len(data) {
				srcIdx = len(data) - 1
			}
			resampled[i] = data[srcIdx]
		}
	}

	var sb strings.Builder
	for _, v := range resampled {
		ratio := (v - minVal) / (maxVal - minVal)
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		idx := int(ratio * float64(len(blocks)-1))
		sb.WriteString(okStyle.Render(string(blocks[idx])))
	}
	sb.WriteString(dimStyle.Render(fmt.Sprintf(" now=%.1f", resampled[len(resampled)-1])))
	return sb.String()
}

// joinColumns joins two text blocks side-by-side with a separator.
func joinColumns(left, right string, leftW int, sep string) string {
	leftLines := strings.Split(strings.TrimRight(left, "\n"), "\n")
	rightLines := strings.Split(strings.TrimRight(right, "\n"), "\n")

	maxLines := len(leftLines)
	if len(rightLines) > maxLines {
		maxLines = len(rightLines)
	}

	var sb strings.Builder
	for i := 0; i < maxLines; i++ {
		l := ""
		r := ""
		if i < len(leftLines) {
			l = leftLines[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		pad := leftW - lipgloss.Width(l)
		if pad < 0 {
			pad = 0
		}
		sb.WriteString(l)
		sb.WriteString(strings.Repeat(" ", pad))
		sb.WriteString(" ")
		sb.WriteString(sep)
		sb.WriteString(" ")
		sb.WriteString(r)
		sb.WriteString("\n")
	}
	return sb.String()
}

// wrapText wraps a string to fit within maxW characters.
// Preserves leading whitespace as an indent for continuation lines.
func wrapText(text string, maxW int) []string {
	if maxW <= 0 {
		maxW = 60
	}
	if lipgloss.Width(text) <= maxW {
		return []string{text}
	}

	indent := ""
	for _, ch := range text {
		if ch != ' ' {
			break
		}
		indent += " "
	}

	var lines []string
	current := indent
	for _, w := range strings.Fields(text) {
		test := current
		if test != indent {
			test += " "
		}
		test += w
		if lipgloss.Width(test) > maxW && current != indent {
			lines = append(lines, current)
			current = indent + w
		} else {
			current = test
		}
	}
	if current != "" && current != indent {
		lines = append(lines, current)
	}
	return lines
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
