// Package tui provides an interactive terminal renderer for build steps.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	taskListWidthRatio = 0.35
	logPaneBorderWidth = 4
	headerHeight       = 3
)

// TaskStatus represents the current state of a task.
type TaskStatus int

const (
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = iota
	// StatusDone indicates the task completed successfully.
	StatusDone
	// StatusError indicates the task failed.
	StatusError
)

// TaskNode is one span in the task list. Spans without a parent are platform pipelines
// or generators; their children are build steps.
type TaskNode struct {
	SpanID   string
	ParentID string
	Name     string
	Status   TaskStatus
	Logs     *LogTerm
	Start    time.Time
	End      time.Time
	Err      error
}

// Duration returns how long the task ran, or zero while it is running.
func (n *TaskNode) Duration() time.Duration {
	if n.End.IsZero() {
		return 0
	}
	return n.End.Sub(n.Start)
}

// Model represents the TUI state.
type Model struct {
	Tasks    []*TaskNode
	SpanMap  map[string]*TaskNode
	Viewport viewport.Model
	Spinner  spinner.Model

	// Selected indexes Tasks. While FollowActive is set it tracks the latest started step.
	Selected     int
	FollowActive bool
	Stopped      bool

	interrupt func()
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.Spinner.Tick
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // message dispatch
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		listWidth := int(float64(msg.Width) * taskListWidthRatio)
		m.Viewport.Width = max(msg.Width-listWidth-logPaneBorderWidth, 0)
		m.Viewport.Height = max(msg.Height-headerHeight, 0)
		for _, n := range m.Tasks {
			n.Logs.Resize(m.Viewport.Width)
		}
		m.refreshLogs()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case msgTaskStart:
		node := &TaskNode{
			SpanID:   msg.SpanID,
			ParentID: msg.ParentID,
			Name:     msg.Name,
			Status:   StatusRunning,
			Logs:     NewLogTerm(),
			Start:    msg.StartTime,
		}
		if m.Viewport.Width > 0 {
			node.Logs.Resize(m.Viewport.Width)
		}
		m.insert(node)
		if m.FollowActive {
			m.Selected = m.indexOf(node)
			m.refreshLogs()
		}

	case msgTaskLog:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			_, _ = node.Logs.Write(msg.Data)
			if m.selected() == node {
				m.refreshLogs()
			}
		}

	case msgTaskComplete:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			node.End = msg.EndTime
			node.Err = msg.Err
			node.Status = StatusDone
			if msg.Err != nil {
				node.Status = StatusError
			}
		}

	case msgStop:
		m.Stopped = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		if m.interrupt != nil {
			m.interrupt()
		}
		return nil
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
			m.FollowActive = false
			m.refreshLogs()
		}
	case "down", "j":
		if m.Selected < len(m.Tasks)-1 {
			m.Selected++
			m.FollowActive = false
			m.refreshLogs()
		}
	case "f":
		m.FollowActive = true
		if len(m.Tasks) > 0 {
			m.Selected = len(m.Tasks) - 1
		}
		m.refreshLogs()
	}
	return nil
}

// insert places node after the last descendant of its parent, so steps stay grouped
// under their platform even when platforms run concurrently.
func (m *Model) insert(node *TaskNode) {
	m.SpanMap[node.SpanID] = node

	pos := len(m.Tasks)
	if parent := m.indexOfSpan(node.ParentID); parent >= 0 {
		pos = parent + 1
		for pos < len(m.Tasks) && m.Tasks[pos].ParentID == node.ParentID && node.ParentID != "" {
			pos++
		}
	}

	m.Tasks = append(m.Tasks, nil)
	copy(m.Tasks[pos+1:], m.Tasks[pos:])
	m.Tasks[pos] = node

	if !m.FollowActive && pos <= m.Selected && len(m.Tasks) > 1 {
		m.Selected++
	}
}

func (m *Model) indexOf(node *TaskNode) int {
	for i, n := range m.Tasks {
		if n == node {
			return i
		}
	}
	return -1
}

func (m *Model) indexOfSpan(spanID string) int {
	if spanID == "" {
		return -1
	}
	for i, n := range m.Tasks {
		if n.SpanID == spanID {
			return i
		}
	}
	return -1
}

func (m *Model) selected() *TaskNode {
	if m.Selected < 0 || m.Selected >= len(m.Tasks) {
		return nil
	}
	return m.Tasks[m.Selected]
}

func (m *Model) refreshLogs() {
	node := m.selected()
	if node == nil {
		m.Viewport.SetContent("")
		return
	}
	m.Viewport.SetContent(node.Logs.String())
	m.Viewport.GotoBottom()
}

// Counts returns the number of finished and failed tasks.
func (m *Model) Counts() (finished, failed int) {
	for _, n := range m.Tasks {
		switch n.Status {
		case StatusDone:
			finished++
		case StatusError:
			finished++
			failed++
		case StatusRunning:
		}
	}
	return finished, failed
}
