// Package pipeline sequences the build stages that turn a project into an artifact set.
package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"slices"
	"sync"

	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildPipeline = (*Pipeline)(nil)

// Pipeline runs the stages of one build strictly in order:
// bundle, intermediate-compile, snapshot, native-build, assemble.
// Disabled stages are recorded as skipped. The first failure aborts the run.
type Pipeline struct {
	runner ports.ProcessRunner
	copier ports.Copier
	tracer ports.Tracer
	logger ports.Logger
	table  domain.PlatformTable

	mu     sync.RWMutex
	states []domain.StageState
}

// New creates a Pipeline resolving platforms against table.
func New(
	runner ports.ProcessRunner,
	copier ports.Copier,
	tracer ports.Tracer,
	logger ports.Logger,
	table domain.PlatformTable,
) *Pipeline {
	return &Pipeline{
		runner: runner,
		copier: copier,
		tracer: tracer,
		logger: logger,
		table:  table,
	}
}

// step is one stage of the state machine.
type step struct {
	stage   domain.Stage
	enabled bool
	run     func(context.Context, *runState) error
}

// runState is the mutable state of a single run.
type runState struct {
	req      domain.BuildRequest
	host     domain.PlatformEntry
	target   domain.PlatformEntry
	outDir   string
	bundled  bool
	snapshot bool
	set      *domain.ArtifactSet
}

// Plan returns the stages a run of req executes, in order.
func Plan(req domain.BuildRequest) []domain.Stage {
	var stages []domain.Stage
	for _, s := range (&Pipeline{}).steps(req) {
		if s.enabled {
			stages = append(stages, s.stage)
		}
	}
	return stages
}

func (p *Pipeline) steps(req domain.BuildRequest) []step {
	aot := req.RunsAOT()
	return []step{
		{stage: domain.StageBundle, enabled: !req.NoBundle, run: p.bundle},
		{stage: domain.StageIntermediateCompile, enabled: aot, run: p.intermediateCompile},
		{stage: domain.StageSnapshot, enabled: aot, run: p.snapshot},
		{stage: domain.StageNativeBuild, enabled: true, run: p.nativeBuild},
		{stage: domain.StageAssemble, enabled: true, run: p.assemble},
	}
}

// Run executes the pipeline for req and returns the assembled artifacts.
func (p *Pipeline) Run(ctx context.Context, req domain.BuildRequest) (*domain.ArtifactSet, error) {
	p.reset()

	target, err := p.table.Lookup(req.Target)
	if err != nil {
		return nil, err
	}
	host, err := p.table.Lookup(req.Host)
	if err != nil {
		return nil, err
	}
	if req.TargetEngine == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidRuntimeHandle, "target engine is not resolved"), "platform", req.Target.String())
	}
	if req.RunsAOT() && req.HostEngine == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidRuntimeHandle, "host engine is not resolved"), "platform", req.Host.String())
	}

	state := &runState{
		req:    req,
		host:   host,
		target: target,
		outDir: req.OutDir(),
	}
	if err := os.MkdirAll(state.outDir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", state.outDir)
	}

	ctx, span := p.tracer.Start(ctx, "pipeline",
		ports.WithAttribute("target", req.Target.String()),
		ports.WithAttribute("profile", req.Profile.Name()),
	)
	defer span.End()

	steps := p.steps(req)
	plan := make([]string, 0, len(steps))
	for _, s := range steps {
		if s.enabled {
			plan = append(plan, string(s.stage))
		}
	}
	p.tracer.EmitPlan(ctx, plan)

	for _, s := range steps {
		if !s.enabled {
			p.record(s.stage, domain.StatusSkipped)
			p.logger.Debug("skipping " + string(s.stage))
			continue
		}
		if err := p.runStep(ctx, s, state); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	return state.set, nil
}

func (p *Pipeline) runStep(ctx context.Context, s step, state *runState) error {
	p.record(s.stage, domain.StatusRunning)
	p.logger.Info("running " + string(s.stage))

	ctx, span := p.tracer.Start(ctx, string(s.stage), ports.WithAttribute("stage", string(s.stage)))
	defer span.End()

	if err := s.run(ctx, state); err != nil {
		stageErr := &domain.StageError{Stage: s.stage, Err: err}
		var procErr *domain.ProcessError
		if errors.As(err, &procErr) {
			stageErr.ExitCode = procErr.ExitCode
			span.SetAttribute("exit_code", procErr.ExitCode)
		}
		span.RecordError(stageErr)
		p.record(s.stage, domain.StatusFailed)
		return stageErr
	}

	p.record(s.stage, domain.StatusCompleted)
	return nil
}

// States returns the stage transitions of the most recent run.
func (p *Pipeline) States() []domain.StageState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.states)
}

func (p *Pipeline) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.states = nil
}

func (p *Pipeline) record(stage domain.Stage, status domain.StageStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.states = append(p.states, domain.StageState{Stage: stage, Status: status})
}

// command fills in the fields every stage shares.
func (state *runState) command(stage domain.Stage, name string, args ...string) domain.Command {
	c := domain.Command{
		Stage:   stage,
		Name:    name,
		Args:    args,
		Dir:     state.req.RootDir,
		Timeout: state.req.StageTimeout,
	}
	if state.req.Quiet {
		c.Stdout = io.Discard
		c.Stderr = io.Discard
	}
	return c
}

func toolNotFound(tool string, stage domain.Stage) error {
	err := zerr.With(zerr.Wrap(domain.ErrToolNotFound, "required tool is not installed"), "tool", tool)
	return zerr.With(err, "stage", string(stage))
}
