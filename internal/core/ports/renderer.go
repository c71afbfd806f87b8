package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for step output rendering.
// It decouples telemetry collection from presentation.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnTaskStart is called when a build step begins.
	// spanID: unique identifier for this step execution
	// parentID: spanID of the parent step (empty if root)
	// name: the step label
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskLog is called when a step emits output.
	// data may contain partial lines or ANSI sequences.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a step finishes.
	// err is nil if the step succeeded.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
