// Package dataset builds labeled feeder datasets from a circuit snapshot and
// base load profiles.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-feederdata/pkg/config"
	"github.com/dd0wney/cluso-feederdata/pkg/constraints"
	"github.com/dd0wney/cluso-feederdata/pkg/logging"
	"github.com/dd0wney/cluso-feederdata/pkg/metrics"
	"github.com/dd0wney/cluso-feederdata/pkg/monitor"
	"github.com/dd0wney/cluso-feederdata/pkg/profile"
	"github.com/dd0wney/cluso-feederdata/pkg/topology"
)

// Build stages, used in logs and the stage duration metric.
const (
	StageValidate   = "validate"
	StageResolve    = "resolve"
	StageSynthesize = "synthesize"
	StageCommands   = "commands"
)

// Options are the parameters of a build.
type Options struct {
	Profile profile.Config
	// Workers bounds substream parallelism; 0 means runtime.NumCPU().
	Workers int
	// StrictBuses fails the build on Error-severity constraint violations.
	StrictBuses bool
	// SubstationTransformer tags the named transformer with RoleSubstation.
	SubstationTransformer string
	// MonitorMode is the engine mode of every planned monitor.
	MonitorMode int
}

// OptionsFromConfig maps a loaded configuration onto build options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	pc, err := cfg.ProfileConfig()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Profile:               pc,
		Workers:               cfg.Workers,
		StrictBuses:           cfg.StrictBuses,
		SubstationTransformer: cfg.SubstationTransformer,
		MonitorMode:           cfg.MonitorMode,
	}, nil
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the build logger.
func WithLogger(l logging.Logger) Option {
	return func(b *Builder) { b.logger = logging.OrNop(l) }
}

// WithMetrics sets the metrics registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(b *Builder) { b.metrics = r }
}

// WithProgress reports synthesis progress. In substream mode the callback
// runs on worker goroutines.
func WithProgress(fn profile.ProgressFunc) Option {
	return func(b *Builder) { b.progress = fn }
}

// Builder runs dataset builds.
type Builder struct {
	opts     Options
	logger   logging.Logger
	metrics  *metrics.Registry
	progress profile.ProgressFunc
	now      func() time.Time
	newID    func() string
}

// NewBuilder creates a builder. Without options it neither logs nor records metrics.
func NewBuilder(opts Options, options ...Option) *Builder {
	b := &Builder{
		opts:    opts,
		logger:  logging.NewNopLogger(),
		metrics: metrics.NewRegistry(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, o := range options {
		o(b)
	}
	return b
}

// Build labels every load, groups loads by transformer and synthesizes one
// profile per load. Any resolution failure aborts the whole build.
func (b *Builder) Build(ctx context.Context, circuit topology.Circuit, bases map[string][]float64) (ds *Dataset, err error) {
	id := b.newID()
	log := b.logger.With(logging.Component("dataset"), logging.BuildID(id))
	timer := logging.StartTimer(log, "build finished", logging.Seed(b.opts.Profile.Seed))
	defer func() {
		b.metrics.RecordBuild(err)
		if err != nil {
			timer.EndError(err)
			return
		}
		timer.End(logging.Count(len(ds.LoadLabels)))
	}()

	circuit = tagSubstation(circuit, b.opts.SubstationTransformer)
	b.metrics.SetTransformerRoles(map[string]int{
		topology.RoleDistribution.String(): len(circuit.TransformersByRole(topology.RoleDistribution)),
		topology.RoleSubstation.String():   len(circuit.TransformersByRole(topology.RoleSubstation)),
	})
	log.Info("build started",
		logging.Int("lines", len(circuit.Lines)),
		logging.Int("transformers", len(circuit.Transformers)),
		logging.Int("loads", len(circuit.Loads)),
		logging.String("mode", b.opts.Profile.Mode.String()))

	ds = &Dataset{
		BuildID:   id,
		CreatedAt: b.now().UTC(),
		Circuit:   circuit,
		Seed:      b.opts.Profile.Seed,
		Step:      b.opts.Profile.Step,
		Mode:      b.opts.Profile.Mode,
	}

	input := constraints.NewInput(circuit)
	if err := b.stage(ctx, log, StageValidate, func() error {
		return b.check(log, ds, input, constraints.StructuralConstraints(b.opts.StrictBuses))
	}); err != nil {
		return nil, err
	}

	if err := b.stage(ctx, log, StageResolve, func() error {
		return b.resolve(log, ds, input)
	}); err != nil {
		return nil, err
	}

	if err := b.stage(ctx, log, StageSynthesize, func() error {
		return b.synthesize(ctx, log, ds, bases)
	}); err != nil {
		return nil, err
	}

	if err := b.stage(ctx, log, StageCommands, func() error {
		ds.Commands = renderCommands(ds.Profiles, ds.Step)
		ds.Monitors = monitor.NewPlan(ds.Circuit, b.opts.MonitorMode)
		log.Info("commands rendered",
			logging.Int("loadshapes", len(ds.Profiles)),
			logging.Int("monitors", ds.Monitors.Len()))
		return nil
	}); err != nil {
		return nil, err
	}

	return ds, nil
}

// stage runs fn unless ctx is done and records its duration.
func (b *Builder) stage(ctx context.Context, log logging.Logger, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timer := logging.StartTimer(log, "stage finished", logging.Stage(name))
	err := fn()
	b.metrics.RecordStage(name, timer.Elapsed())
	if err != nil {
		timer.EndError(err)
		return fmt.Errorf("%s: %w", name, err)
	}
	timer.End()
	return nil
}

func (b *Builder) check(log logging.Logger, ds *Dataset, in constraints.Input, cs []constraints.Constraint) error {
	result, err := constraints.NewValidator(cs...).Validate(in)
	if err != nil {
		return err
	}

	for _, v := range result.Violations {
		b.metrics.RecordViolation(v.Type.String(), v.Severity.String())
		fields := []logging.Field{
			logging.String("constraint", v.Constraint),
			logging.String("element", v.Element),
		}
		if v.Bus != "" {
			fields = append(fields, logging.Bus(v.Bus))
		}
		switch v.Severity {
		case constraints.Error, constraints.Warning:
			log.Warn(v.Message, fields...)
		default:
			log.Debug(v.Message, fields...)
		}
	}
	ds.Violations = append(ds.Violations, result.Violations...)

	if b.opts.StrictBuses {
		return result.Err()
	}
	return nil
}

func (b *Builder) resolve(log logging.Logger, ds *Dataset, in constraints.Input) error {
	labels, err := topology.NewResolver(in.Index).ResolveAll(ds.Circuit.Loads)
	if err != nil {
		b.metrics.RecordResolution(0, failureKind(err))
		return err
	}
	b.metrics.RecordResolution(len(labels), "")

	ds.LoadLabels = labels
	ds.TransformerLabels = topology.Aggregate(labels)

	sizes := make([]int, len(ds.TransformerLabels))
	for i, group := range ds.TransformerLabels {
		sizes[i] = len(group.LoadIndices)
		log.Debug("transformer group",
			logging.TransformerName(group.TransformerName),
			logging.Int("phase", group.Phase),
			logging.Count(sizes[i]))
	}
	b.metrics.RecordGroups(sizes)
	log.Info("loads resolved", logging.Count(len(labels)), logging.Int("groups", len(sizes)))

	return b.check(log, ds, in.WithLabels(labels), constraints.LabelConstraints(b.opts.StrictBuses))
}

func (b *Builder) synthesize(ctx context.Context, log logging.Logger, ds *Dataset, bases map[string][]float64) error {
	synth, err := profile.NewSynthesizer(b.opts.Profile, bases)
	if err != nil {
		return err
	}

	workers := b.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	profiles, err := synth.Run(ctx, ds.Circuit.Loads, workers, b.progress)
	if err != nil {
		return err
	}

	for _, p := range profiles {
		b.metrics.RecordProfile(p.BaseProfile, p.Degenerate)
		if p.Degenerate {
			log.Warn("degenerate profile filled with constant",
				logging.LoadName(p.ElementName),
				logging.BaseProfile(p.BaseProfile),
				logging.Float64("value", profile.DegenerateValue))
		}
	}
	b.metrics.ProfilePoints.Set(float64(b.opts.Profile.TargetLength))

	ds.Profiles = profiles
	ds.BaseProfiles = make([]BaseProfile, 0, len(bases))
	for _, name := range synth.BaseNames() {
		ds.BaseProfiles = append(ds.BaseProfiles, BaseProfile{Name: name, Values: bases[name]})
	}
	log.Info("profiles synthesized",
		logging.Count(len(profiles)),
		logging.Int("points", b.opts.Profile.TargetLength),
		logging.Int("workers", workers))
	return nil
}

// tagSubstation returns c with the named transformer's role set to substation.
// The input circuit is not modified.
func tagSubstation(c topology.Circuit, name string) topology.Circuit {
	if name == "" {
		return c
	}
	xfmrs := make([]topology.Transformer, len(c.Transformers))
	copy(xfmrs, c.Transformers)
	for i := range xfmrs {
		if xfmrs[i].Name == name {
			xfmrs[i].Role = topology.RoleSubstation
		}
	}
	c.Transformers = xfmrs
	return c
}

func renderCommands(profiles []profile.SyntheticProfile, step float64) []string {
	cmds := make([]string, 0, 2*len(profiles))
	for _, p := range profiles {
		cmds = append(cmds, profile.LoadshapeCommands(topology.ObjectName(LoadObjectClass, p.ElementName), p.Values, step)...)
	}
	return cmds
}

// failureKind names a resolution error for the failure metric.
func failureKind(err error) string {
	switch {
	case errors.Is(err, topology.ErrUnresolvedLine):
		return "unresolved_line"
	case errors.Is(err, topology.ErrUnresolvedTransformer):
		return "unresolved_transformer"
	case errors.Is(err, topology.ErrMalformedBusIdentifier):
		return "malformed_bus"
	default:
		return "other"
	}
}
