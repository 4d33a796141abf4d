package enginecache

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/embark/internal/adapters/archive"
	"go.trai.ch/embark/internal/adapters/download"
	"go.trai.ch/embark/internal/adapters/fs"
	"go.trai.ch/embark/internal/adapters/logger"
	"go.trai.ch/embark/internal/core/ports"
)

const NodeID graft.ID = "adapter.enginecache"

func init() {
	graft.Register(graft.Node[ports.RuntimeCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			download.NodeID,
			archive.ExtractorNodeID,
			fs.HasherNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.RuntimeCache, error) {
			downloader, err := graft.Dep[ports.Downloader](ctx)
			if err != nil {
				return nil, err
			}
			extractor, err := graft.Dep[ports.Extractor](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(DefaultOptions(os.Getenv), downloader, extractor, hasher, log), nil
		},
	})
}
