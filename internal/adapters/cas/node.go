package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/soldeps/internal/core/ports"
)

// NodeID is the unique identifier for the scan cache provider Graft node.
const NodeID graft.ID = "adapter.scan_cache"

func init() {
	graft.Register(graft.Node[ports.ScanCacheProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ScanCacheProvider, error) {
			return NewProvider(), nil
		},
	})
}
