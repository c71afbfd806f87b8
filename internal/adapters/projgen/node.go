package projgen

import (
	"context"

	"github.com/grindlemire/graft"
)

const (
	// AndroidNodeID is the unique identifier for the Android generator Graft node.
	AndroidNodeID graft.ID = "adapter.projgen.android"
	// XcodeNodeID is the unique identifier for the Xcode generator Graft node.
	XcodeNodeID graft.ID = "adapter.projgen.xcode"
)

func init() {
	graft.Register(graft.Node[*AndroidGenerator]{
		ID:        AndroidNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*AndroidGenerator, error) {
			return NewAndroidGenerator(), nil
		},
	})

	graft.Register(graft.Node[*XcodeGenerator]{
		ID:        XcodeNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*XcodeGenerator, error) {
			return NewXcodeGenerator(), nil
		},
	})
}
