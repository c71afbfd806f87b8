package telemetry

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/bake/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor and forwards build spans to a Renderer.
//
// Spans tagged with PlatformAttribute open a platform pipeline. Steps started below
// a pipeline are attributed to it, so a failed pipeline reports which steps failed.
type Bridge struct {
	renderer ports.Renderer

	mu        sync.Mutex
	pipelines map[trace.SpanID]*pipeline
	owners    map[trace.SpanID]trace.SpanID // step span -> pipeline span
}

type pipeline struct {
	platform string
	failed   []string
}

// NewBridge returns a new Bridge.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{
		renderer:  renderer,
		pipelines: make(map[trace.SpanID]*pipeline),
		owners:    make(map[trace.SpanID]trace.SpanID),
	}
}

// OnStart is called when a span starts. The parent is taken from the span itself.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var parentID string
	if parent := s.Parent(); parent.IsValid() {
		parentID = parent.SpanID().String()
	}

	b.track(sc.SpanID(), s.Parent(), platformOf(s))

	b.renderer.OnTaskStart(
		sc.SpanID().String(),
		parentID,
		s.Name(),
		s.StartTime(),
	)
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	failed := b.untrack(sc.SpanID(), s.Name(), s.Status().Code == codes.Error)

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "step failed"
		}
		if len(failed) > 0 {
			desc += ": " + strings.Join(failed, ", ")
		}
		err = errors.New(desc)
	}

	b.renderer.OnTaskComplete(
		sc.SpanID().String(),
		s.EndTime(),
		err,
	)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown forgets every open pipeline.
func (b *Bridge) Shutdown(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	clear(b.pipelines)
	clear(b.owners)
	return nil
}

func (b *Bridge) track(id trace.SpanID, parent trace.SpanContext, platform string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if platform != "" {
		b.pipelines[id] = &pipeline{platform: platform}
		return
	}
	if !parent.IsValid() {
		return
	}
	if _, ok := b.pipelines[parent.SpanID()]; ok {
		b.owners[id] = parent.SpanID()
		return
	}
	if owner, ok := b.owners[parent.SpanID()]; ok {
		b.owners[id] = owner
	}
}

// untrack closes the bookkeeping of a span. For a pipeline span it returns the
// names of its failed steps with the platform prefix removed.
func (b *Bridge) untrack(id trace.SpanID, name string, failed bool) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if owner, ok := b.owners[id]; ok {
		delete(b.owners, id)
		if p, ok := b.pipelines[owner]; ok && failed {
			step := strings.TrimSpace(strings.TrimPrefix(name, p.platform))
			p.failed = append(p.failed, step)
		}
		return nil
	}

	p, ok := b.pipelines[id]
	if !ok {
		return nil
	}
	delete(b.pipelines, id)
	return p.failed
}

func platformOf(s sdktrace.ReadOnlySpan) string {
	for _, kv := range s.Attributes() {
		if string(kv.Key) == PlatformAttribute {
			return kv.Value.AsString()
		}
	}
	return ""
}
