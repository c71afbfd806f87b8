package tui

import (
	"context"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/bake/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer runs the Bubble Tea program as a ports.Renderer.
// Every Start launches a fresh program, so one Renderer serves repeated runs.
type Renderer struct {
	opts      []tea.ProgramOption
	interrupt func()

	mu      sync.Mutex
	program *tea.Program
	model   *Model
	errCh   chan error
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithProgramOptions adds Bubble Tea program options.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(r *Renderer) {
		r.opts = append(r.opts, opts...)
	}
}

// WithInterrupt sets the function called when the user presses ctrl+c.
func WithInterrupt(fn func()) Option {
	return func(r *Renderer) {
		r.interrupt = fn
	}
}

// NewRenderer creates a new TUI renderer drawing on stderr.
// By default ctrl+c interrupts the process as if it came from the terminal.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		opts:      []tea.ProgramOption{tea.WithOutput(os.Stderr)},
		interrupt: interruptSelf,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(ctx context.Context) error {
	model := NewModel(r.interrupt)
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, r.opts...)
	program := tea.NewProgram(model, opts...)
	errCh := make(chan error, 1)

	r.mu.Lock()
	r.program = program
	r.model = model
	r.errCh = errCh
	r.mu.Unlock()

	go func() {
		_, err := program.Run()
		if err != nil && ctx.Err() != nil {
			err = nil
		}
		errCh <- err
	}()
	return nil
}

// Stop asks the TUI to draw its final frame and quit.
func (r *Renderer) Stop() error {
	if p := r.current(); p != nil {
		p.Send(msgStop{})
	}
	return nil
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	r.mu.Lock()
	errCh := r.errCh
	r.errCh = nil
	r.mu.Unlock()

	if errCh == nil {
		return nil
	}
	return <-errCh
}

// OnTaskStart forwards task start events to the TUI.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.send(msgTaskStart{SpanID: spanID, ParentID: parentID, Name: name, StartTime: startTime})
}

// OnTaskLog forwards task output to the TUI.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.send(msgTaskLog{SpanID: spanID, Data: data})
}

// OnTaskComplete forwards task completion events to the TUI.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.send(msgTaskComplete{SpanID: spanID, EndTime: endTime, Err: err})
}

// Model returns the model of the most recent run.
func (r *Renderer) Model() *Model {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.model
}

func (r *Renderer) send(msg any) {
	if p := r.current(); p != nil {
		p.Send(msg)
	}
}

func (r *Renderer) current() *tea.Program {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.program
}

func interruptSelf() {
	if p, err := os.FindProcess(os.Getpid()); err == nil {
		_ = p.Signal(os.Interrupt)
	}
}
