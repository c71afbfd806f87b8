package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bake/internal/adapters/logger"
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing into a buffer without ANSI sequences.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden")
	lg.Info("building")
	lg.Warn("artifact missing")

	assert.Equal(t, "building\n! artifact missing\n", buf.String())
}

func TestLogger_Debug(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetDebug(true)

	lg.Debug("resolved toolchain")

	assert.Equal(t, "● resolved toolchain\n", buf.String())

	buf.Reset()
	lg.SetDebug(false)
	lg.Debug("resolved toolchain")
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_ErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "error_plain",
			err:  errors.New("boom"),
		},
		{
			name: "error_chain",
			err: zerr.With(
				zerr.Wrap(domain.ErrUnknownPlatform, "failed to parse target"),
				"os", "beos",
			),
		},
		{
			name: "error_with_on_plain",
			err:  zerr.With(zerr.Wrap(zerr.With(errors.New("permission denied"), "path", "/bin"), "failed to write manifest"), "platform", "Linux-x64"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestFormatError(t *testing.T) {
	err := zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "failed to load config"), "path", "bake.yaml")

	assert.Equal(t,
		"Error: failed to load config (path=bake.yaml)\n\n  Caused by:\n    → invalid configuration",
		logger.FormatError(err),
	)
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(zerr.With(zerr.Wrap(errors.New("exit status 2"), "command failed"), "exit_code", 2))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "operation failed", rec["msg"])
	assert.Equal(t, "command failed: exit status 2", rec["error"])
	assert.InDelta(t, 2, rec["exit_code"], 0)
}

func TestLogger_SetOutputNil(t *testing.T) {
	lg := logger.New()
	assert.NotPanics(t, func() { lg.SetOutput(nil) })
}
