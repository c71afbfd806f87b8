package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/bake/internal/ui/style"
)

var (
	colorWhite = lipgloss.Color("#FFFFFF")

	// Pane Styles.
	listStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(style.Slate).
			MarginRight(1).
			PaddingRight(1)

	logStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	// Task Status Styles.
	taskRunningStyle = lipgloss.NewStyle().
				Foreground(style.Accent).
				Bold(true)

	taskDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	taskErrorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	durationStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	// Header Styles.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Accent).
			Foreground(colorWhite)

	failureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Background(style.Red).
				Foreground(colorWhite)

	helpStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)
)
