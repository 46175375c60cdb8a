package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/treemd/internal/ui"
)

// Status is the status bar at the bottom.
type Status struct {
	width   int
	mode    string
	file    string
	section string
	message string
	errMsg  string
}

func NewStatus(file string) Status {
	return Status{
		file: file,
		mode: "OUTLINE",
	}
}

func (s *Status) SetMode(mode string) {
	s.mode = mode
}

func (s *Status) SetFile(file string) {
	s.file = file
}

func (s *Status) SetSection(section string) {
	s.section = section
}

func (s *Status) SetWidth(width int) {
	s.width = width
}

// SetMessage shows an informational note until the next one or an error.
func (s *Status) SetMessage(msg string) {
	s.message = msg
	s.errMsg = ""
}

func (s *Status) SetError(msg string) {
	s.errMsg = msg
}

func (s *Status) Clear() {
	s.errMsg = ""
	s.message = ""
}

func (s Status) View() string {
	if s.width == 0 {
		return ""
	}

	modeColors := map[string]lipgloss.Color{
		"OUTLINE": lipgloss.Color("212"),
		"CONTENT": lipgloss.Color("114"),
		"FILTER":  lipgloss.Color("75"),
		"FOLLOW":  lipgloss.Color("216"),
	}

	color, ok := modeColors[s.mode]
	if !ok {
		color = lipgloss.Color("252")
	}

	modeStyle := lipgloss.NewStyle().
		Background(color).
		Foreground(lipgloss.Color("0")).
		Bold(true).
		Padding(0, 1)

	mode := modeStyle.Render(s.mode)

	var middle string
	switch {
	case s.errMsg != "":
		errStyle := ui.StatusBar.
			Foreground(lipgloss.Color("203"))
		middle = errStyle.Render(s.errMsg)
	case s.message != "":
		middle = ui.StatusBar.Render(s.message)
	default:
		middle = ui.StatusBar.Render(s.file)
	}

	left := fmt.Sprintf("%s%s", mode, middle)

	right := ""
	if s.section != "" {
		right = ui.StatusBar.Foreground(lipgloss.Color("245")).Render(s.section)
	}

	padLen := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padLen < 0 {
		padLen = 0
		right = ""
	}
	bgStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("236"))
	padding := bgStyle.Render(strings.Repeat(" ", padLen))

	return left + padding + right
}
