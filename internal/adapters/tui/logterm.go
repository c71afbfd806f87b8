package tui

import (
	"bytes"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/vito/midterm"
)

// LogTerm holds the output of one build step as a terminal screen.
// Compilers run in a pseudo-terminal, so their output carries carriage returns and
// cursor movement; midterm applies them instead of printing them verbatim.
type LogTerm struct {
	mu   sync.Mutex
	vt   *midterm.Terminal
	line bytes.Buffer
}

// NewLogTerm creates an empty LogTerm.
func NewLogTerm() *LogTerm {
	return &LogTerm{vt: midterm.NewAutoResizingTerminal()}
}

// Write implements io.Writer.
func (l *LogTerm) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.vt.Write(p)
}

// Resize sets the number of columns lines wrap at.
func (l *LogTerm) Resize(cols int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vt.ResizeX(max(cols, 1))
}

// String renders the screen with its colors. Trailing blank rows are dropped.
func (l *LogTerm) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows := make([]string, 0, l.vt.UsedHeight())
	for row := range l.vt.UsedHeight() {
		l.line.Reset()
		_ = l.vt.RenderLine(&l.line, row)
		rows = append(rows, l.line.String())
	}

	for len(rows) > 0 && strings.TrimSpace(ansi.Strip(rows[len(rows)-1])) == "" {
		rows = rows[:len(rows)-1]
	}
	return strings.Join(rows, "\n")
}

// Plain returns String without escape sequences.
func (l *LogTerm) Plain() string {
	return ansi.Strip(l.String())
}
