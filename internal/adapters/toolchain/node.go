package toolchain

import (
	"context"
	"os"
	"os/exec"

	"github.com/grindlemire/graft"
	"go.trai.ch/embark/internal/adapters/logger"
	"go.trai.ch/embark/internal/adapters/shell"
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
)

const (
	NodeID         graft.ID = "adapter.toolchain"
	ResolverNodeID graft.ID = "adapter.toolchain.resolver"
)

func init() {
	graft.Register(graft.Node[domain.Toolchain]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (domain.Toolchain, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return domain.Toolchain{}, err
			}
			tc := Discover(os.Getenv, exec.LookPath)
			log.Debug("flutter sdk: " + tc.FlutterRoot)
			log.Debug("cargo: " + tc.Cargo)
			return tc, nil
		},
	})

	graft.Register(graft.Node[ports.PlatformResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, shell.NodeID},
		Run: func(ctx context.Context) (ports.PlatformResolver, error) {
			tc, err := graft.Dep[domain.Toolchain](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(tc, runner, domain.DefaultPlatforms()), nil
		},
	})
}
