package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#58a6ff"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#6e7781", Dark: "#8b949e"}
	colorOK     = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#3fb950"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#d29922"}
	colorError  = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f85149"}

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	outsideStyle  = lipgloss.NewStyle().Faint(true)
	dayStyle      = lipgloss.NewStyle()
	tripDayStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	conflictStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	successStyle  = lipgloss.NewStyle().Foreground(colorOK)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	infoStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle    = lipgloss.NewStyle().Width(12).Foreground(colorMuted)
)
