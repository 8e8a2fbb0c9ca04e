package packages

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/soldeps/internal/core/ports"
)

// NodeID is the unique identifier for the dependency provider Graft node.
const NodeID graft.ID = "adapter.packages"

func init() {
	graft.Register(graft.Node[ports.DependencyProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DependencyProvider, error) {
			return New(), nil
		},
	})
}
