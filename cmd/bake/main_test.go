package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/bake/internal/app"
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"bake": func() {
			os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, resolveComponents))
		},
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("NO_COLOR", "1")
			return nil
		},
	})
}

func newTestApp(ctrl *gomock.Controller, loader *mocks.MockConfigLoader, log *mocks.MockLogger) *app.App {
	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().Start(gomock.Any()).Return(nil).AnyTimes()
	renderer.EXPECT().Stop().Return(nil).AnyTimes()
	renderer.EXPECT().Wait().Return(nil).AnyTimes()

	return app.New(
		loader,
		nil,
		nil,
		mocks.NewMockProjectGenerator(ctrl),
		mocks.NewMockProjectGenerator(ctrl),
		mocks.NewMockTracer(ctrl),
		renderer,
		mocks.NewMockWatcher(ctrl),
		log,
	)
}

func TestRun_Version(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	application := newTestApp(ctrl, mocks.NewMockConfigLoader(ctrl), log)

	provider := func(context.Context) (*app.Components, error) {
		return &app.Components{App: application, Logger: log}, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "bake version")
}

func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_ConfigurationErrorIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	application := newTestApp(ctrl, loader, log)

	loader.EXPECT().Load(domain.DefaultConfigFile).Return(nil, domain.ErrInvalidConfig)
	log.EXPECT().Error(gomock.Any()).Times(1)

	provider := func(context.Context) (*app.Components, error) {
		return &app.Components{App: application, Logger: log}, nil
	}

	exitCode := run(context.Background(), nil, new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 1, exitCode)
}
