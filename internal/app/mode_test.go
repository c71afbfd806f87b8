package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/bake/internal/app"
	"go.trai.ch/bake/internal/core/domain"
)

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name  string
		flags app.Flags
		want  domain.BuildMode
	}{
		{name: "no flags", flags: app.Flags{}, want: domain.ModeDirectBuild},
		{name: "android", flags: app.Flags{GenAndroid: true}, want: domain.ModeGenerateAndroidProject},
		{name: "xcode", flags: app.Flags{GenXcode: true}, want: domain.ModeGenerateXcodeProject},
		{name: "shaders", flags: app.Flags{RebuildShaders: true}, want: domain.ModeRebuildShaders},
		{
			name:  "android before xcode",
			flags: app.Flags{GenAndroid: true, GenXcode: true},
			want:  domain.ModeGenerateAndroidProject,
		},
		{
			name:  "xcode before shaders",
			flags: app.Flags{GenXcode: true, RebuildShaders: true},
			want:  domain.ModeGenerateXcodeProject,
		},
		{
			name:  "all flags",
			flags: app.Flags{GenAndroid: true, GenXcode: true, RebuildShaders: true},
			want:  domain.ModeGenerateAndroidProject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, app.SelectMode(tt.flags))
		})
	}
}
