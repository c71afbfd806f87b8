package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/bake/internal/adapters/telemetry"
	"go.trai.ch/bake/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func bridgedTracer(t *testing.T, bridge *telemetry.Bridge) trace.Tracer {
	t.Helper()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp.Tracer("test")
}

func TestBridge_OnStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(mockRenderer)

	mockRenderer.EXPECT().OnTaskStart(gomock.Any(), "", "Linux-x64 C Compile", gomock.Any()).Times(1)

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "Linux-x64 C Compile")
	defer span.End()

	// The span's own context must not make it its own parent.
	if rwSpan, ok := span.(sdktrace.ReadWriteSpan); ok {
		bridge.OnStart(ctx, rwSpan)
	}
}

func TestBridge_OnStartReportsParent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	tp := sdktrace.NewTracerProvider()
	tracer := tp.Tracer("test")
	parentCtx, parent := tracer.Start(context.Background(), "Linux-x64")
	defer parent.End()
	_, child := tracer.Start(parentCtx, "Linux-x64 C Compile")
	defer child.End()

	parentID := parent.SpanContext().SpanID().String()
	mockRenderer.EXPECT().OnTaskStart(child.SpanContext().SpanID().String(), parentID, "Linux-x64 C Compile", gomock.Any())

	if rwSpan, ok := child.(sdktrace.ReadWriteSpan); ok {
		telemetry.NewBridge(mockRenderer).OnStart(parentCtx, rwSpan)
	}
}

func TestBridge_RegisteredProcessorReportsRootWithoutParent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	mockRenderer.EXPECT().OnTaskStart(gomock.Any(), "", "Shaders", gomock.Any())
	mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil)

	_, span := bridgedTracer(t, telemetry.NewBridge(mockRenderer)).Start(context.Background(), "Shaders")
	span.End()
}

func TestBridge_FailedPipelineNamesFailedSteps(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)
	mockRenderer.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	var pipelineErr error
	mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ string, _ time.Time, err error) { pipelineErr = err }).
		Times(3)

	tracer := bridgedTracer(t, telemetry.NewBridge(mockRenderer))

	ctx, platform := tracer.Start(context.Background(), "macOS-ARM64",
		trace.WithAttributes(attribute.String(telemetry.PlatformAttribute, "macOS-ARM64")))

	_, c := tracer.Start(ctx, "macOS-ARM64 C Compile")
	c.End()

	_, cxx := tracer.Start(ctx, "macOS-ARM64 C++ Compile")
	cxx.SetStatus(codes.Error, "command failed")
	cxx.End()

	platform.SetStatus(codes.Error, "build failed")
	platform.End()

	if assert.Error(t, pipelineErr) {
		assert.Equal(t, "build failed: C++ Compile", pipelineErr.Error())
	}
}

func TestBridge_SucceededPipelineReportsNoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)
	mockRenderer.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(2)
	mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil).Times(2)

	tracer := bridgedTracer(t, telemetry.NewBridge(mockRenderer))

	ctx, platform := tracer.Start(context.Background(), "Linux-x64",
		trace.WithAttributes(attribute.String(telemetry.PlatformAttribute, "Linux-x64")))
	_, step := tracer.Start(ctx, "Linux-x64 C Compile")
	step.End()
	platform.End()
}

func TestBridge_OnStartWithNilRenderer(_ *testing.T) {
	bridge := telemetry.NewBridge(nil)

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "test-span")
	defer span.End()

	if rwSpan, ok := span.(sdktrace.ReadWriteSpan); ok {
		bridge.OnStart(ctx, rwSpan)
	}
}

func TestBridge_OnEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(mockRenderer)

	mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil).Times(1)

	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), "test-span")
	span.End()

	if roSpan, ok := span.(sdktrace.ReadOnlySpan); ok {
		bridge.OnEnd(roSpan)
	}
}

func TestBridge_OnEndWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(mockRenderer)

	mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ string, _ time.Time, err error) {
			if err == nil || err.Error() != "link failed" {
				t.Errorf("OnTaskComplete() err = %v, want link failed", err)
			}
		})

	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), "test-span")
	span.SetStatus(codes.Error, "link failed")
	span.End()

	if roSpan, ok := span.(sdktrace.ReadOnlySpan); ok {
		bridge.OnEnd(roSpan)
	}
}

func TestBridge_ForceFlushAndShutdown(t *testing.T) {
	bridge := telemetry.NewBridge(nil)

	if err := bridge.ForceFlush(context.Background()); err != nil {
		t.Errorf("ForceFlush() should not return error, got: %v", err)
	}
	if err := bridge.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() should not return error, got: %v", err)
	}
}
