package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/bake/internal/adapters/telemetry"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/bake/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_SpanLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	sr := tracetest.NewSpanRecorder()
	tp := telemetry.Setup(renderer, sr)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("test").WithRenderer(renderer)

	var spanID string
	gomock.InOrder(
		renderer.EXPECT().OnTaskStart(gomock.Any(), "", "macOS-ARM64", gomock.Any()).
			Do(func(id, _, _ string, _ any) { spanID = id }),
		renderer.EXPECT().OnTaskLog(gomock.Any(), []byte("ld: symbol not found\n")).
			Do(func(id string, _ []byte) { assert.Equal(t, spanID, id) }),
		renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())),
	)

	_, span := tracer.Start(context.Background(), "macOS-ARM64", ports.WithPlatform("macOS-ARM64"))
	_, err := span.Write([]byte("ld: symbol not found\n"))
	require.NoError(t, err)
	span.SetAttribute("bake.tool", "clang")
	span.RecordError(errors.New("link failed"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "link failed", ended[0].Status().Description)
	assert.Contains(t, ended[0].Attributes(), attribute.String(telemetry.PlatformAttribute, "macOS-ARM64"))
	assert.Contains(t, ended[0].Attributes(), attribute.String("bake.tool", "clang"))
}

func TestOTelTracer_WriteWithoutRendererAddsEvent(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := telemetry.Setup(nil, sr)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := telemetry.NewOTelTracer("test").Start(context.Background(), "step")
	n, err := span.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	events := ended[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "log", events[0].Name)
	assert.Contains(t, events[0].Attributes, attribute.String("message", "hello"))
}

func TestOTelSpan_SetAttributeTypes(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := telemetry.Setup(nil, sr)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := telemetry.NewOTelTracer("test").Start(context.Background(), "step")
	span.SetAttribute("int", 3)
	span.SetAttribute("int64", int64(4))
	span.SetAttribute("float", 1.5)
	span.SetAttribute("bool", true)
	span.SetAttribute("slice", []string{"a", "b"})
	span.SetAttribute("other", struct{ X int }{X: 1})
	span.End()

	attrs := sr.Ended()[0].Attributes()
	assert.Contains(t, attrs, attribute.Int("int", 3))
	assert.Contains(t, attrs, attribute.Int64("int64", 4))
	assert.Contains(t, attrs, attribute.Float64("float", 1.5))
	assert.Contains(t, attrs, attribute.Bool("bool", true))
	assert.Contains(t, attrs, attribute.StringSlice("slice", []string{"a", "b"}))
	assert.Contains(t, attrs, attribute.String("other", "{1}"))
}

func TestNoOpTracer(t *testing.T) {
	ctx := context.Background()
	got, span := telemetry.NewNoOpTracer().Start(ctx, "step")
	assert.Equal(t, ctx, got)

	n, err := span.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
}
