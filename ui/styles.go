package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/workshopdl/progress"
)

// Styling functions using lipgloss
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Bold(true).
			Padding(0, 2)

	SectionStyle = lipgloss.NewStyle().Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	ProcessingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// statusStyle picks the colour for a status label
func statusStyle(s progress.Status) lipgloss.Style {
	switch s {
	case progress.StatusDownloading:
		return ProcessingStyle
	case progress.StatusMoving:
		return WarningStyle
	case progress.StatusCompleted:
		return SuccessStyle
	case progress.StatusError:
		return ErrorStyle
	default:
		return MutedStyle
	}
}
