package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bake/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/bake/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/bake/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/bake/internal/adapters/projgen"   //nolint:depguard // Wired in app layer
	"go.trai.ch/bake/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/bake/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/bake/internal/engine/orchestrator"
	"go.trai.ch/bake/internal/engine/shaders"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			orchestrator.NodeID,
			shaders.NodeID,
			projgen.AndroidNodeID,
			projgen.XcodeNodeID,
			telemetry.TracerNodeID,
			detector.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
	if err != nil {
		return nil, err
	}

	dispatcher, err := graft.Dep[*shaders.Dispatcher](ctx)
	if err != nil {
		return nil, err
	}

	android, err := graft.Dep[*projgen.AndroidGenerator](ctx)
	if err != nil {
		return nil, err
	}

	xcode, err := graft.Dep[*projgen.XcodeGenerator](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, orch, dispatcher, android, xcode, tracer, renderer, w, log), nil
}
