package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Martinez1337/go-kanban/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
)

// StatusStyle returns the style used to render a task status.
func StatusStyle(s domain.TaskStatus) lipgloss.Style {
	switch s {
	case domain.StatusDone:
		return StyleGreen
	case domain.StatusInProgress:
		return StyleYellow
	case domain.StatusNew:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored status marker such as "● DONE".
func StatusIndicator(s domain.TaskStatus) string {
	return StatusStyle(s).Render("● " + string(s))
}
