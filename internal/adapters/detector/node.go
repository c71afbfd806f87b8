package detector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bake/internal/adapters/linear"
	"go.trai.ch/bake/internal/adapters/tui"
	"go.trai.ch/bake/internal/core/ports"
)

// NodeID is the unique identifier for the display Graft node.
const NodeID graft.ID = "adapter.display"

func init() {
	graft.Register(graft.Node[ports.Renderer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{linear.NodeID, tui.NodeID},
		Run: func(ctx context.Context) (ports.Renderer, error) {
			lin, err := graft.Dep[*linear.Renderer](ctx)
			if err != nil {
				return nil, err
			}

			t, err := graft.Dep[*tui.Renderer](ctx)
			if err != nil {
				return nil, err
			}

			return NewDisplay(lin, t), nil
		},
	})
}
