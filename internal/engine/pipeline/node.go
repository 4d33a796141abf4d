package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/embark/internal/adapters/fs"
	"go.trai.ch/embark/internal/adapters/logger"
	"go.trai.ch/embark/internal/adapters/shell"
	"go.trai.ch/embark/internal/adapters/telemetry"
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
)

const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[ports.BuildPipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			fs.CopierNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.BuildPipeline, error) {
			runner, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}
			copier, err := graft.Dep[ports.Copier](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(runner, copier, tracer, log, domain.DefaultPlatforms()), nil
		},
	})
}
