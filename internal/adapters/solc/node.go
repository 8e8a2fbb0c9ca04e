package solc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/soldeps/internal/adapters/logger"
	"go.trai.ch/soldeps/internal/core/ports"
)

const (
	// CompilerNodeID is the unique identifier for the solc compiler Graft node.
	CompilerNodeID graft.ID = "adapter.solc.compiler"
	// RegistryNodeID is the unique identifier for the solc registry Graft node.
	RegistryNodeID graft.ID = "adapter.solc.registry"
)

func init() {
	graft.Register(graft.Node[ports.Compiler]{
		ID:        CompilerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Compiler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCompiler(log), nil
		},
	})

	graft.Register(graft.Node[ports.VersionRegistry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VersionRegistry, error) {
			return NewRegistry(), nil
		},
	})
}
