package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-feederdata/pkg/topology"
)

func smallConfig() Config {
	return Config{Step: 0.25, Sigma: 0.1, TargetLength: 16, Seed: DefaultSeed}
}

func smallBases() map[string][]float64 {
	return map[string][]float64{
		"Residential":   {0.2, 0.9, 0.4, 0.7},
		"Commercial_SM": {0.5, 0.6, 0.9, 0.1},
		"Flat":          {1, 1, 1, 1},
	}
}

func smallLoads() []topology.Load {
	return []topology.Load{
		{Name: "L1", Bus: "b1.1", BaseProfile: "Residential"},
		{Name: "L2", Bus: "b2.1", BaseProfile: "Commercial_SM"},
		{Name: "L3", Bus: "b3.2", BaseProfile: "Residential"},
		{Name: "L4", Bus: "b4.3", BaseProfile: "Flat"},
	}
}

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero step", func(c *Config) { c.Step = 0 }},
		{"step above one", func(c *Config) { c.Step = 1.5 }},
		{"negative sigma", func(c *Config) { c.Sigma = -0.1 }},
		{"zero target", func(c *Config) { c.TargetLength = 0 }},
		{"unknown mode", func(c *Config) { c.Mode = Mode(7) }},
		{"target too short", func(c *Config) { c.TargetLength = 35036 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.TargetLength = 100
	assert.ErrorIs(t, cfg.Validate(), ErrLengthMismatch)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("substream")
	require.NoError(t, err)
	assert.Equal(t, ModeSubstream, m)
	assert.Equal(t, "substream", m.String())

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSerial, m)

	_, err = ParseMode("parallel")
	assert.Error(t, err)
}

func TestNewSynthesizerRejectsWrongBaseLength(t *testing.T) {
	cfg := smallConfig()
	cfg.CoarseLength = 5

	_, err := NewSynthesizer(cfg, smallBases())
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestSynthesizerShapes(t *testing.T) {
	s, err := NewSynthesizer(smallConfig(), smallBases())
	require.NoError(t, err)

	assert.Equal(t, []string{"Commercial_SM", "Flat", "Residential"}, s.BaseNames())

	shape, ok := s.Shape("Residential")
	require.True(t, ok)
	assert.Len(t, shape, 16)

	_, ok = s.Shape("missing")
	assert.False(t, ok)
}

func TestSynthesizeSerial(t *testing.T) {
	s, err := NewSynthesizer(smallConfig(), smallBases())
	require.NoError(t, err)

	var calls []int
	profiles, err := s.Synthesize(smallLoads(), func(done, total int) {
		assert.Equal(t, 4, total)
		calls = append(calls, done)
	})
	require.NoError(t, err)
	require.Len(t, profiles, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, calls)

	for i, p := range profiles {
		assert.Equal(t, smallLoads()[i].Name, p.ElementName)
		assert.Len(t, p.Values, 16)
	}

	// L1 and L3 share a base but draw from different positions in the stream.
	assert.NotEqual(t, profiles[0].Values, profiles[2].Values)

	assert.True(t, profiles[3].Degenerate)
	for _, v := range profiles[3].Values {
		assert.Equal(t, DegenerateValue, v)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	s, err := NewSynthesizer(smallConfig(), smallBases())
	require.NoError(t, err)

	a, err := s.Synthesize(smallLoads(), nil)
	require.NoError(t, err)
	b, err := s.Synthesize(smallLoads(), nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSynthesizeOrderMatters(t *testing.T) {
	s, err := NewSynthesizer(smallConfig(), smallBases())
	require.NoError(t, err)

	loads := smallLoads()
	original, err := s.Synthesize(loads, nil)
	require.NoError(t, err)

	loads[0], loads[1] = loads[1], loads[0]
	swapped, err := s.Synthesize(loads, nil)
	require.NoError(t, err)

	// L1 now takes the second draw of the stream.
	assert.NotEqual(t, original[0].Values, swapped[1].Values)
	// The draws after the swapped pair sit at the same stream position.
	assert.Equal(t, original[2].Values, swapped[2].Values)
}

func TestSynthesizeDegenerateKeepsStreamPosition(t *testing.T) {
	s, err := NewSynthesizer(smallConfig(), smallBases())
	require.NoError(t, err)

	withFlat := []topology.Load{
		{Name: "F", BaseProfile: "Flat"},
		{Name: "R", BaseProfile: "Residential"},
	}
	withOther := []topology.Load{
		{Name: "C", BaseProfile: "Commercial_SM"},
		{Name: "R", BaseProfile: "Residential"},
	}

	a, err := s.Synthesize(withFlat, nil)
	require.NoError(t, err)
	b, err := s.Synthesize(withOther, nil)
	require.NoError(t, err)

	assert.Equal(t, a[1].Values, b[1].Values)
}

func TestSynthesizeUnknownBase(t *testing.T) {
	s, err := NewSynthesizer(smallConfig(), smallBases())
	require.NoError(t, err)

	loads := append(smallLoads(), topology.Load{Name: "L5", BaseProfile: "Industrial"})
	_, err = s.Synthesize(loads, nil)
	assert.ErrorIs(t, err, ErrUnknownBaseProfile)

	_, err = s.SynthesizeSubstreams(context.Background(), loads, 2, nil)
	assert.ErrorIs(t, err, ErrUnknownBaseProfile)
}

func TestSynthesizeSubstreamsIndependentOfWorkers(t *testing.T) {
	cfg := smallConfig()
	cfg.Mode = ModeSubstream
	s, err := NewSynthesizer(cfg, smallBases())
	require.NoError(t, err)

	loads := make([]topology.Load, 0, 40)
	for i := 0; i < 10; i++ {
		loads = append(loads, smallLoads()...)
	}

	one, err := s.Run(context.Background(), loads, 1, nil)
	require.NoError(t, err)
	eight, err := s.Run(context.Background(), loads, 8, nil)
	require.NoError(t, err)

	assert.Equal(t, one, eight)

	values, _, err := s.SynthesizeAt("Residential", 2)
	require.NoError(t, err)
	assert.Equal(t, values, one[2].Values)
}

func TestSynthesizeSubstreamsCancelled(t *testing.T) {
	cfg := smallConfig()
	cfg.Mode = ModeSubstream
	s, err := NewSynthesizer(cfg, smallBases())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Run(ctx, smallLoads(), 2, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSynthesizeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("every non-degenerate draw spans exactly [0, 1]", prop.ForAll(
		func(seed int64, a, b, c float64) bool {
			cfg := smallConfig()
			cfg.Seed = seed
			s, err := NewSynthesizer(cfg, map[string][]float64{"X": {a, b, c, a}})
			if err != nil {
				return false
			}
			profiles, err := s.Synthesize([]topology.Load{{Name: "L", BaseProfile: "X"}}, nil)
			if err != nil {
				return false
			}
			p := profiles[0]
			if len(p.Values) != cfg.TargetLength {
				return false
			}
			if p.Degenerate {
				return true
			}
			lo, hi := minMax(p.Values)
			return lo > -1e-9 && lo < 1e-9 && hi > 1-1e-9 && hi < 1+1e-9
		},
		gen.Int64(),
		gen.Float64Range(0, 10),
		gen.Float64Range(0, 10),
		gen.Float64Range(0, 10),
	))

	properties.TestingRun(t)
}
