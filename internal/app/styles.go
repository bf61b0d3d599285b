package app

import "github.com/charmbracelet/lipgloss"

// Console colors (Catppuccin Mocha inspired).
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"} // Blue
	colorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	colorWarning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	colorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"} // Overlay0
)

// styles contains the lipgloss styles for plan and result output.
type styles struct {
	Title     lipgloss.Style
	Satisfied lipgloss.Style
	Pending   lipgloss.Style
	Failed    lipgloss.Style
	Skipped   lipgloss.Style
	Detail    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),

		Satisfied: lipgloss.NewStyle().
			Foreground(colorSuccess),

		Pending: lipgloss.NewStyle().
			Foreground(colorWarning),

		Failed: lipgloss.NewStyle().
			Foreground(colorError),

		Skipped: lipgloss.NewStyle().
			Foreground(colorMuted),

		Detail: lipgloss.NewStyle().
			Foreground(colorMuted),
	}
}
