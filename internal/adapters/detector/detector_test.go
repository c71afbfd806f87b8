package detector_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bake/internal/adapters/detector"
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want detector.OutputMode
	}{
		{in: "", want: detector.ModeAuto},
		{in: "auto", want: detector.ModeAuto},
		{in: "TUI", want: detector.ModeTUI},
		{in: "linear", want: detector.ModeLinear},
		{in: "ci", want: detector.ModeLinear},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := detector.ParseMode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := detector.ParseMode("fancy")
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestDetectEnvironment_CI(t *testing.T) {
	for _, v := range []string{"true", "1"} {
		t.Setenv("CI", v)
		assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment())
	}
}

func TestResolveMode(t *testing.T) {
	assert.Equal(t, detector.ModeTUI, detector.ResolveMode(detector.ModeTUI, detector.ModeAuto))
	assert.Equal(t, detector.ModeLinear, detector.ResolveMode(detector.ModeLinear, detector.ModeAuto))
	assert.Equal(t, detector.ModeLinear, detector.ResolveMode(detector.ModeTUI, detector.ModeLinear))
	assert.Equal(t, detector.ModeTUI, detector.ResolveMode(detector.ModeLinear, detector.ModeTUI))
}

func TestDisplay_ForwardsToSelectedRenderer(t *testing.T) {
	ctrl := gomock.NewController(t)
	lin := mocks.NewMockRenderer(ctrl)
	tui := mocks.NewMockRenderer(ctrl)
	now := time.Now()
	stepErr := errors.New("exit status 1")

	d := detector.NewDisplay(lin, tui).WithDetector(func() detector.OutputMode { return detector.ModeTUI })

	// Linear until selected otherwise.
	lin.EXPECT().OnTaskStart("a", "", "Linux-x64", now)
	d.OnTaskStart("a", "", "Linux-x64", now)

	mode, err := d.Select("auto")
	require.NoError(t, err)
	assert.Equal(t, detector.ModeTUI, mode)

	gomock.InOrder(
		tui.EXPECT().Start(gomock.Any()).Return(nil),
		tui.EXPECT().OnTaskLog("a", []byte("x")),
		tui.EXPECT().OnTaskComplete("a", now, stepErr),
		tui.EXPECT().Stop().Return(nil),
		tui.EXPECT().Wait().Return(nil),
	)
	require.NoError(t, d.Start(context.Background()))
	d.OnTaskLog("a", []byte("x"))
	d.OnTaskComplete("a", now, stepErr)
	require.NoError(t, d.Stop())
	require.NoError(t, d.Wait())

	mode, err = d.Select("linear")
	require.NoError(t, err)
	assert.Equal(t, detector.ModeLinear, mode)

	lin.EXPECT().Stop().Return(nil)
	require.NoError(t, d.Stop())
}

func TestDisplay_InvalidModeKeepsRenderer(t *testing.T) {
	ctrl := gomock.NewController(t)
	lin := mocks.NewMockRenderer(ctrl)
	d := detector.NewDisplay(lin, mocks.NewMockRenderer(ctrl))

	_, err := d.Select("fancy")
	require.Error(t, err)

	lin.EXPECT().Start(gomock.Any()).Return(nil)
	require.NoError(t, d.Start(context.Background()))
}
