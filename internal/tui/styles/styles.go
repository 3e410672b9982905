package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Primary     = lipgloss.AdaptiveColor{Light: "#4f46e5", Dark: "#818cf8"}
	Success     = lipgloss.AdaptiveColor{Light: "#10b981", Dark: "#34d399"}
	Warning     = lipgloss.AdaptiveColor{Light: "#f59e0b", Dark: "#fbbf24"}
	Error       = lipgloss.AdaptiveColor{Light: "#ef4444", Dark: "#f87171"}
	Muted       = lipgloss.AdaptiveColor{Light: "#64748b", Dark: "#94a3b8"}
	BorderColor = lipgloss.AdaptiveColor{Light: "#e2e8f0", Dark: "#334155"}

	StatusBar = lipgloss.NewStyle().
			Background(Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)

	Tab = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 1)

	ActiveTab = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(Primary).
			Padding(0, 1)

	ToolName = lipgloss.NewStyle().
			Bold(true)

	SelectedTool = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	Description = lipgloss.NewStyle().
			Foreground(Muted)

	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Hint = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	ErrorMessage = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	SuccessMessage = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Loading = lipgloss.NewStyle().
		Foreground(Warning).
		Italic(true)

	InputPrompt = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	BorderedBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	ConfirmPrompt = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Background(lipgloss.AdaptiveColor{Light: "#f1f5f9", Dark: "#1e293b"}).
			Padding(0, 1)

	ConfirmKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#ffffff"}).
			Background(Primary).
			Padding(0, 1)
)

// Category returns the badge style of a category color such as "#dc2626".
func Category(color string) lipgloss.Style {
	if color == "" {
		return lipgloss.NewStyle().Foreground(Muted)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}
