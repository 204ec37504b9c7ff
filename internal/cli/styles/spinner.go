package styles

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledSpinner creates a themed dot spinner.
func NewStyledSpinner(theme *Theme) spinner.Model {
	s := spinner.New()
	s.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	s.Spinner = spinner.Dot
	return s
}
