package prompt

import "github.com/charmbracelet/lipgloss"

var (
	PrimaryColor = lipgloss.Color("#7C3AED")
	WarningColor = lipgloss.Color("#EAB308")
	SuccessColor = lipgloss.Color("#22C55E")
	MutedColor   = lipgloss.Color("#6B7280")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	Question = lipgloss.NewStyle().
			Bold(true)

	Warning = lipgloss.NewStyle().Foreground(WarningColor)
	Success = lipgloss.NewStyle().Foreground(SuccessColor)
	Muted   = lipgloss.NewStyle().Foreground(MutedColor)

	InputBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)
)
