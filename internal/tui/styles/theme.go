package styles

import (
	"github.com/allbin/go-dcserial/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colors.Surface1)

	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Surface2).
			Padding(1, 2).
			Margin(1, 0)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(colors.Green).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(colors.Mauve).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colors.Red).
			Bold(true)
)

// CodeStyle picks the style for a callback result: byte counts and success
// are green, negative status codes red.
func CodeStyle(code int) lipgloss.Style {
	if code < 0 {
		return ErrorStyle
	}
	return SuccessStyle
}
