package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/soldeps/internal/adapters/metrics"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/soldeps/internal/adapters/solc"               //nolint:depguard // Wired in engine wiring
	"go.trai.ch/soldeps/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/soldeps/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			solc.CompilerNodeID,
			solc.RegistryNodeID,
			progrock.NodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			compiler, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}

			registry, err := graft.Dep[ports.VersionRegistry](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(compiler, registry, telemetry, m), nil
		},
	})
}
