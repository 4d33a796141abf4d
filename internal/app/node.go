package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/embark/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/embark/internal/adapters/enginecache" //nolint:depguard // Wired in app layer
	"go.trai.ch/embark/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/embark/internal/adapters/packaging"   //nolint:depguard // Wired in app layer
	"go.trai.ch/embark/internal/adapters/shell"       //nolint:depguard // Wired in app layer
	"go.trai.ch/embark/internal/adapters/telemetry"   //nolint:depguard // Wired in app layer
	"go.trai.ch/embark/internal/adapters/toolchain"   //nolint:depguard // Wired in app layer
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
	"go.trai.ch/embark/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles what the command line needs after wiring.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			toolchain.NodeID,
			toolchain.ResolverNodeID,
			enginecache.NodeID,
			pipeline.NodeID,
			packaging.NodeID,
			shell.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}
	tc, err := graft.Dep[domain.Toolchain](ctx)
	if err != nil {
		return nil, err
	}
	resolver, err := graft.Dep[ports.PlatformResolver](ctx)
	if err != nil {
		return nil, err
	}
	cache, err := graft.Dep[ports.RuntimeCache](ctx)
	if err != nil {
		return nil, err
	}
	buildPipeline, err := graft.Dep[ports.BuildPipeline](ctx)
	if err != nil {
		return nil, err
	}
	packager, err := graft.Dep[ports.Packager](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.ProcessRunner](ctx)
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

	return New(loader, tc, resolver, cache, buildPipeline, packager, runner, tracer, log), nil
}
