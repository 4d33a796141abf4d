package archive

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/embark/internal/core/ports"
)

const (
	ExtractorNodeID graft.ID = "adapter.archive.extractor"
	ArchiverNodeID  graft.ID = "adapter.archive.archiver"
)

func init() {
	graft.Register(graft.Node[ports.Extractor]{
		ID:        ExtractorNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Extractor, error) {
			return NewExtractor(), nil
		},
	})

	graft.Register(graft.Node[ports.Archiver]{
		ID:        ArchiverNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Archiver, error) {
			return NewArchiver(), nil
		},
	})
}
