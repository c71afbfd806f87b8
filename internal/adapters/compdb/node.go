package compdb

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bake/internal/core/ports"
)

// NodeID is the unique identifier for the compile database writer Graft node.
const NodeID graft.ID = "adapter.compdb"

func init() {
	graft.Register(graft.Node[ports.CompileDatabaseWriter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CompileDatabaseWriter, error) {
			return NewWriter(), nil
		},
	})
}
