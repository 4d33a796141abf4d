package packaging

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/embark/internal/adapters/archive"
	"go.trai.ch/embark/internal/adapters/fs"
	"go.trai.ch/embark/internal/adapters/logger"
	"go.trai.ch/embark/internal/adapters/shell"
	"go.trai.ch/embark/internal/adapters/toolchain"
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
)

const NodeID graft.ID = "adapter.packaging"

func init() {
	graft.Register(graft.Node[ports.Packager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			toolchain.NodeID,
			shell.NodeID,
			fs.CopierNodeID,
			archive.ArchiverNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Packager, error) {
			tc, err := graft.Dep[domain.Toolchain](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}
			copier, err := graft.Dep[ports.Copier](ctx)
			if err != nil {
				return nil, err
			}
			archiver, err := graft.Dep[ports.Archiver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBackend(tc, runner, copier, archiver, log, domain.DefaultPlatforms()), nil
		},
	})
}
