package profile

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/dd0wney/cluso-feederdata/pkg/parallel"
	"github.com/dd0wney/cluso-feederdata/pkg/topology"
)

// SyntheticProfile is the fine-resolution series generated for one load.
type SyntheticProfile struct {
	ElementName string
	BaseProfile string
	Values      []float64
	Degenerate  bool
}

// ProgressFunc is called after each profile is produced. In ModeSubstream it
// is called from worker goroutines and must be safe for concurrent use.
type ProgressFunc func(done, total int)

// Synthesizer turns named coarse base profiles into per-load synthetic profiles.
// Each base shape is upsampled once at construction; draws only add noise.
type Synthesizer struct {
	cfg    Config
	shapes map[string][]float64
}

// NewSynthesizer validates cfg and upsamples every base profile.
func NewSynthesizer(cfg Config, bases map[string][]float64) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(bases))
	for name := range bases {
		names = append(names, name)
	}
	sort.Strings(names)

	shapes := make(map[string][]float64, len(bases))
	for _, name := range names {
		base := bases[name]
		if cfg.CoarseLength > 0 && len(base) != cfg.CoarseLength {
			return nil, fmt.Errorf("base profile %q: %w: has %d points, want %d",
				name, ErrLengthMismatch, len(base), cfg.CoarseLength)
		}
		shape, err := Upsample(base, cfg.Step, cfg.TargetLength)
		if err != nil {
			return nil, fmt.Errorf("base profile %q: %w", name, err)
		}
		shapes[name] = shape
	}

	return &Synthesizer{cfg: cfg, shapes: shapes}, nil
}

// Config returns the synthesis parameters.
func (s *Synthesizer) Config() Config {
	return s.cfg
}

// Shape returns the upsampled, noise-free shape of a base profile.
func (s *Synthesizer) Shape(name string) ([]float64, bool) {
	shape, ok := s.shapes[name]
	return shape, ok
}

// BaseNames returns the known base profile names in ascending order.
func (s *Synthesizer) BaseNames() []string {
	names := make([]string, 0, len(s.shapes))
	for name := range s.shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkBases fails on the first load whose base profile is unknown, before any
// randomness is consumed.
func (s *Synthesizer) checkBases(loads []topology.Load) error {
	for i, load := range loads {
		if _, ok := s.shapes[load.BaseProfile]; !ok {
			return fmt.Errorf("load %q (index %d): %w %q", load.Name, i, ErrUnknownBaseProfile, load.BaseProfile)
		}
	}
	return nil
}

// Synthesize produces one profile per load in ModeSerial: a single stream
// seeded with cfg.Seed, one draw per load, in the given order. The order is
// part of the determinism contract.
func (s *Synthesizer) Synthesize(loads []topology.Load, progress ProgressFunc) ([]SyntheticProfile, error) {
	if err := s.checkBases(loads); err != nil {
		return nil, err
	}

	stream := NewStream(s.cfg.Seed)
	out := make([]SyntheticProfile, len(loads))
	for i, load := range loads {
		values, degenerate := Draw(s.shapes[load.BaseProfile], s.cfg.Sigma, stream)
		out[i] = SyntheticProfile{
			ElementName: load.Name,
			BaseProfile: load.BaseProfile,
			Values:      values,
			Degenerate:  degenerate,
		}
		if progress != nil {
			progress(i+1, len(loads))
		}
	}
	return out, nil
}

// SynthesizeAt draws the profile of the load at a given index from that
// index's own substream. It is a pure function of (base shape, seed, index).
func (s *Synthesizer) SynthesizeAt(baseName string, index int) ([]float64, bool, error) {
	shape, ok := s.shapes[baseName]
	if !ok {
		return nil, false, fmt.Errorf("%w %q", ErrUnknownBaseProfile, baseName)
	}
	values, degenerate := Draw(shape, s.cfg.Sigma, NewSubStream(s.cfg.Seed, index))
	return values, degenerate, nil
}

// SynthesizeSubstreams produces one profile per load in ModeSubstream, fanning
// loads out over a worker pool. The result does not depend on the number of
// workers or on scheduling.
func (s *Synthesizer) SynthesizeSubstreams(ctx context.Context, loads []topology.Load, workers int, progress ProgressFunc) ([]SyntheticProfile, error) {
	if err := s.checkBases(loads); err != nil {
		return nil, err
	}

	pool, err := parallel.NewWorkerPool(workers)
	if err != nil {
		return nil, err
	}

	out := make([]SyntheticProfile, len(loads))
	var done atomic.Int64

	for i, load := range loads {
		if ctx.Err() != nil {
			break
		}
		pool.Submit(func() error {
			values, degenerate, err := s.SynthesizeAt(load.BaseProfile, i)
			if err != nil {
				return err
			}
			out[i] = SyntheticProfile{
				ElementName: load.Name,
				BaseProfile: load.BaseProfile,
				Values:      values,
				Degenerate:  degenerate,
			}
			if progress != nil {
				progress(int(done.Add(1)), len(loads))
			}
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Run dispatches on cfg.Mode. workers is ignored in ModeSerial.
func (s *Synthesizer) Run(ctx context.Context, loads []topology.Load, workers int, progress ProgressFunc) ([]SyntheticProfile, error) {
	switch s.cfg.Mode {
	case ModeSubstream:
		return s.SynthesizeSubstreams(ctx, loads, workers, progress)
	default:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return s.Synthesize(loads, progress)
	}
}
