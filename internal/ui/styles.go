package ui

import "github.com/charmbracelet/lipgloss"

var (
	PanelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	FocusedBorder = PanelBorder.
			BorderForeground(lipgloss.Color("212"))

	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	SelectedItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	NormalItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	DimText = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	LinkText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)
)

// levelColors are the heading colors for levels 1 through 6.
var levelColors = [6]lipgloss.Color{"212", "141", "81", "114", "221", "245"}

// Level returns the heading style for a level; out-of-range levels use the
// deepest style.
func Level(level int) lipgloss.Style {
	i := min(max(level, 1), len(levelColors)) - 1
	s := lipgloss.NewStyle().Foreground(levelColors[i])
	if level <= 2 {
		s = s.Bold(true)
	}
	return s
}
