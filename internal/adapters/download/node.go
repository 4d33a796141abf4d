package download

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/embark/internal/core/ports"
)

const NodeID graft.ID = "adapter.downloader"

func init() {
	graft.Register(graft.Node[ports.Downloader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Downloader, error) {
			return NewDownloader(), nil
		},
	})
}
