// Package reporter renders the failure summary and derives the exit status.
package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/ui/output"
	"go.trai.ch/bake/internal/ui/style"
)

// SuccessMessage is printed when no step failed.
const SuccessMessage = "All processes succeeded."

const (
	labelIndent  = "  "
	outputIndent = "    "
)

// PrintSummary writes a deterministic rendering of log to w.
// Failures are listed in append order with their indented diagnostics.
// It must be called only after every pipeline of the run has finished.
func PrintSummary(w io.Writer, log *domain.FailureLog) error {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())
	ok := r.NewStyle().Foreground(style.Green).Bold(true)
	bad := r.NewStyle().Foreground(style.Red).Bold(true)
	dim := r.NewStyle().Foreground(style.Slate)

	var entries []domain.ProcessResult
	if log != nil {
		entries = log.Entries()
	}

	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString(ok.Render(style.Check+" "+SuccessMessage) + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	noun := "processes"
	if len(entries) == 1 {
		noun = "process"
	}
	b.WriteString(bad.Render(fmt.Sprintf("%s %d %s failed:", style.Cross, len(entries), noun)) + "\n")

	for _, res := range entries {
		b.WriteString(labelIndent + bad.Render(res.Label) + "\n")
		for line := range strings.SplitSeq(strings.TrimRight(res.Output, "\n"), "\n") {
			if line == "" {
				continue
			}
			b.WriteString(outputIndent + dim.Render(line) + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ExitStatus returns 0 if log is empty and 1 otherwise, regardless of the failure count.
func ExitStatus(log *domain.FailureLog) int {
	if log == nil || log.Len() == 0 {
		return 0
	}
	return 1
}
