package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
)

// NewModel creates a new TUI model that follows the active step.
// interrupt is called when the user presses ctrl+c and may be nil.
func NewModel(interrupt func()) *Model {
	return &Model{
		Tasks:        make([]*TaskNode, 0),
		SpanMap:      make(map[string]*TaskNode),
		Viewport:     viewport.New(0, 0),
		Spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		FollowActive: true,
		interrupt:    interrupt,
	}
}
