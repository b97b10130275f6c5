package tui

import (
	"rds-restore/pkg/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#8A8F98", Dark: "#64748B"}
	highlight = lipgloss.AdaptiveColor{Light: "#3B5BDB", Dark: "#6366F1"}
	danger    = lipgloss.AdaptiveColor{Light: "#C92A2A", Dark: "#F43F5E"}

	titleStyle = lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().Bold(true)
	focusedStyle = lipgloss.NewStyle().Foreground(highlight).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(subtle)
	errorStyle   = lipgloss.NewStyle().Foreground(danger)

	messageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1, 2).
			Width(72)

	// row banding follows the display hint of each record
	hintStyles = map[models.RowHint]lipgloss.Style{
		models.HintEven: lipgloss.NewStyle().Background(lipgloss.Color("#FDF5E6")).Foreground(lipgloss.Color("#000000")),
		models.HintOdd:  lipgloss.NewStyle().Background(lipgloss.Color("#FFFFFF")).Foreground(lipgloss.Color("#000000")),
	}
	selectedRowStyle = lipgloss.NewStyle().Background(lipgloss.Color("#CFE0FF")).Foreground(lipgloss.Color("#000000")).Bold(true)
)

func rowStyle(hint models.RowHint, selected bool) lipgloss.Style {
	if selected {
		return selectedRowStyle
	}
	if style, ok := hintStyles[hint]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
