package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bake/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bake/internal/adapters/compdb"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bake/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bake/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bake/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bake/internal/adapters/toolchain" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/bake/internal/engine/runner"
)

// NodeID is the unique identifier for the build orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			runner.NodeID,
			telemetry.TracerNodeID,
			toolchain.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			compdb.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			r, err := graft.Dep[*runner.Runner](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.ToolchainResolver](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			manifest, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}

			compdbWriter, err := graft.Dep[ports.CompileDatabaseWriter](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(r, tracer, resolver, hasher, manifest, compdbWriter, log), nil
		},
	})
}
