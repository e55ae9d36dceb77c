package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle    = lipgloss.NewStyle().Faint(true)

	navStyle       = lipgloss.NewStyle().Padding(0, 1)
	navActiveStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(lipgloss.Color("12"))

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder(), false, false, true, false)
	tabActiveStyle = tabStyle.Bold(true).Reverse(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	tagStyle      = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("236"))
)

func panel(inner string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Width(max(width-2, 10)).
		Render(inner)
}

// colorFor maps the site's CSS color classes onto terminal colors.
func colorFor(class string) lipgloss.Color {
	switch {
	case strings.Contains(class, "primary"):
		return lipgloss.Color("12")
	case strings.Contains(class, "secondary"):
		return lipgloss.Color("13")
	case strings.Contains(class, "accent"):
		return lipgloss.Color("14")
	case strings.Contains(class, "green"):
		return lipgloss.Color("42")
	case strings.Contains(class, "purple"):
		return lipgloss.Color("141")
	case strings.Contains(class, "red"):
		return lipgloss.Color("9")
	}
	return lipgloss.Color("7")
}

func progressBar(percent, width int, class string) string {
	if width <= 0 {
		width = 28
	}
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100
	bar := lipgloss.NewStyle().Foreground(colorFor(class)).Render(strings.Repeat("█", filled))
	return bar + mutedStyle.Render(strings.Repeat("░", width-filled))
}
