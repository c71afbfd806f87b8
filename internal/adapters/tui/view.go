package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/bake/internal/ui/style"
)

// View renders the task list beside the logs of the selected task.
// After stop only the task list remains, so the final frame stays compact.
func (m *Model) View() string {
	if m.Stopped {
		return m.taskList() + "\n"
	}
	if m.Viewport.Height == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header(),
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			listStyle.Render(m.taskList()),
			m.logPane(),
		),
	)
}

func (m *Model) header() string {
	finished, failed := m.Counts()
	title := titleStyle.Render("BAKE")
	if failed > 0 {
		title = failureTitleStyle.Render("BAKE")
	}
	status := fmt.Sprintf(" %d/%d finished", finished, len(m.Tasks))
	if failed > 0 {
		status += fmt.Sprintf(", %d failed", failed)
	}
	return title + status + "  " + helpStyle.Render("↑/↓ select • f follow • ctrl+c cancel") + "\n"
}

func (m *Model) taskList() string {
	var s strings.Builder

	for i, task := range m.Tasks {
		var st lipgloss.Style
		var icon string

		switch task.Status {
		case StatusDone:
			st = taskDoneStyle
			icon = style.Check
		case StatusError:
			st = taskErrorStyle
			icon = style.Cross
		default:
			st = taskRunningStyle
			icon = m.Spinner.View()
		}

		indent := ""
		if task.ParentID != "" {
			indent = "  "
		}

		marker := "  "
		if i == m.Selected && !m.Stopped {
			marker = "> "
		}

		line := marker + indent + st.Render(icon+" "+task.Name)
		if d := task.Duration(); d > 0 {
			line += " " + durationStyle.Render(d.Round(time.Millisecond).String())
		}
		s.WriteString(line + "\n")
	}

	return strings.TrimSuffix(s.String(), "\n")
}

func (m *Model) logPane() string {
	header := titleStyle.Render("LOGS (waiting...)")
	if node := m.selected(); node != nil {
		header = titleStyle.Render("LOGS: " + node.Name)
		if node.Status == StatusError {
			header = failureTitleStyle.Render("LOGS: " + node.Name)
		}
	}

	return logStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			m.Viewport.View(),
		),
	)
}
