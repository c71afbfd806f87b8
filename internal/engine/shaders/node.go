package shaders

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bake/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bake/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bake/internal/adapters/shader"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bake/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bake/internal/core/ports"
)

// NodeID is the unique identifier for the shader dispatcher Graft node.
const NodeID graft.ID = "engine.shaders"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, shader.NodeID, telemetry.TracerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			walker, err := graft.Dep[ports.FileWalker](ctx)
			if err != nil {
				return nil, err
			}
			compiler, err := graft.Dep[ports.ShaderCompiler](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(walker, compiler, tracer, log), nil
		},
	})
}
