package session

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/soldeps/internal/adapters/cas"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/soldeps/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/soldeps/internal/adapters/metrics"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/soldeps/internal/adapters/packages" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/soldeps/internal/adapters/solc"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/soldeps/internal/core/ports"
)

// NodeID is the unique identifier for the session factory Graft node.
const NodeID graft.ID = "engine.session"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.SourcesNodeID,
			fs.HasherNodeID,
			packages.NodeID,
			solc.RegistryNodeID,
			cas.NodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Factory, error) {
			sources, err := graft.Dep[ports.SourceProvider](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.ContentHasher](ctx)
			if err != nil {
				return nil, err
			}

			deps, err := graft.Dep[ports.DependencyProvider](ctx)
			if err != nil {
				return nil, err
			}

			registry, err := graft.Dep[ports.VersionRegistry](ctx)
			if err != nil {
				return nil, err
			}

			caches, err := graft.Dep[ports.ScanCacheProvider](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return NewFactory(sources, deps, registry, hasher, caches, m), nil
		},
	})
}
