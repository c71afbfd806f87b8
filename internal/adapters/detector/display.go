package detector

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/bake/internal/core/ports"
)

var _ ports.Renderer = (*Display)(nil)

// Display is the ports.Renderer handed to telemetry. It forwards every event to the
// renderer chosen by the last Select, so the choice can follow command line flags
// parsed after the dependency graph was built.
type Display struct {
	linear ports.Renderer
	tui    ports.Renderer
	detect func() OutputMode

	mu     sync.RWMutex
	active ports.Renderer
}

// NewDisplay creates a Display that starts out linear.
func NewDisplay(linear, tui ports.Renderer) *Display {
	return &Display{
		linear: linear,
		tui:    tui,
		detect: DetectEnvironment,
		active: linear,
	}
}

// WithDetector replaces the environment detection. Used for testing.
func (d *Display) WithDetector(fn func() OutputMode) *Display {
	d.detect = fn
	return d
}

// Select activates the renderer for the flag value mode and returns the resolved mode.
// It must not be called while a run is in progress.
func (d *Display) Select(mode string) (OutputMode, error) {
	requested, err := ParseMode(mode)
	if err != nil {
		return ModeAuto, err
	}
	resolved := ResolveMode(d.detect(), requested)

	d.mu.Lock()
	defer d.mu.Unlock()
	if resolved == ModeTUI {
		d.active = d.tui
	} else {
		d.active = d.linear
	}
	return resolved, nil
}

func (d *Display) current() ports.Renderer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.active
}

// Start starts the active renderer.
func (d *Display) Start(ctx context.Context) error {
	return d.current().Start(ctx)
}

// Stop stops the active renderer.
func (d *Display) Stop() error {
	return d.current().Stop()
}

// Wait waits for the active renderer.
func (d *Display) Wait() error {
	return d.current().Wait()
}

// OnTaskStart forwards to the active renderer.
func (d *Display) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	d.current().OnTaskStart(spanID, parentID, name, startTime)
}

// OnTaskLog forwards to the active renderer.
func (d *Display) OnTaskLog(spanID string, data []byte) {
	d.current().OnTaskLog(spanID, data)
}

// OnTaskComplete forwards to the active renderer.
func (d *Display) OnTaskComplete(spanID string, endTime time.Time, err error) {
	d.current().OnTaskComplete(spanID, endTime, err)
}
