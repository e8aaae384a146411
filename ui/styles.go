package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorRed     = lipgloss.Color("#FF5555")
	colorYellow  = lipgloss.Color("#F1FA8C")
	colorGreen   = lipgloss.Color("#50FA7B")
	colorCyan    = lipgloss.Color("#8BE9FD")
	colorMagenta = lipgloss.Color("#FF79C6")
	colorOrange  = lipgloss.Color("#FFB86C")
	colorWhite   = lipgloss.Color("#F8F8F2")
	colorGray    = lipgloss.Color("#6272A4")
	colorPanel   = lipgloss.Color("#44475A")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	valueStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	warnStyle     = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	critStyle     = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	headerStyle   = lipgloss.NewStyle().Foreground(colorMagenta).Bold(true)
	selectedStyle = lipgloss.NewStyle().Background(colorPanel).Foreground(colorWhite)
	helpStyle     = lipgloss.NewStyle().Foreground(colorGray)
	dimStyle      = lipgloss.NewStyle().Foreground(colorGray)
	orangeStyle   = lipgloss.NewStyle().Foreground(colorOrange)
)

// availColor colors an availability percentage against the target.
func availColor(pct, target float64) lipgloss.Style {
	switch {
	case pct < target-10:
		return critStyle
	case pct < target:
		return warnStyle
	default:
		return okStyle
	}
}

// efficiencyColor colors maintenance efficiency and reliability.
func efficiencyColor(pct float64) lipgloss.Style {
	switch {
	case pct < 50:
		return critStyle
	case pct < 80:
		return warnStyle
	default:
		return okStyle
	}
}

func severityColor(sev string) lipgloss.Style {
	switch sev {
	case "crit":
		return critStyle
	case "warn":
		return warnStyle
	default:
		return orangeStyle
	}
}

// priorityColor maps a recommendation priority to a style.
func priorityColor(p string) lipgloss.Style {
	switch p {
	case "High":
		return critStyle
	case "Medium":
		return warnStyle
	default:
		return okStyle
	}
}

// hexStyle renders with an arbitrary hex foreground.
func hexStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
