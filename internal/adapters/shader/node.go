package shader

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bake/internal/core/ports"
)

// NodeID is the unique identifier for the shader compiler Graft node.
const NodeID graft.ID = "adapter.shader"

func init() {
	graft.Register(graft.Node[ports.ShaderCompiler]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ShaderCompiler, error) {
			return NewCompiler(), nil
		},
	})
}
