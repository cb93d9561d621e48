package tui

import "github.com/charmbracelet/lipgloss"

// Colors used in the tracker TUI.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#9CA3AF") // Light gray
)

// Styles holds the styles for the tracker TUI.
type Styles struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Filters    lipgloss.Style
	Loading    lipgloss.Style
	Error      lipgloss.Style
	Status     lipgloss.Style
	Dialog     lipgloss.Style
	Label      lipgloss.Style
	Focused    lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Help       lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App:   lipgloss.NewStyle().Padding(1, 2),
		Title: lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).MarginBottom(1),
		Filters: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Loading: lipgloss.NewStyle().Foreground(ColorWarning).Italic(true),
		Error:   lipgloss.NewStyle().Foreground(ColorError),
		Status:  lipgloss.NewStyle().Foreground(ColorSuccess),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2),
		Label:      lipgloss.NewStyle().Width(14).Foreground(ColorMuted),
		Focused:    lipgloss.NewStyle().Width(14).Bold(true).Foreground(ColorPrimary),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess),
		Unselected: lipgloss.NewStyle().Foreground(ColorMuted),
		Help:       lipgloss.NewStyle().Foreground(ColorMuted).MarginTop(1),
	}
}
