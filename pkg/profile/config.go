package profile

import (
	"fmt"

	"github.com/dd0wney/cluso-feederdata/pkg/validation"
)

// Default synthesis parameters: one year of hourly base data upsampled to
// 15-minute resolution.
const (
	DefaultCoarseLength = 8760
	DefaultStep         = 0.25
	DefaultSigma        = 0.1
	DefaultTargetLength = 35040
	DefaultSeed         = 1337
)

// Mode selects how draws consume randomness.
type Mode int

const (
	// ModeSerial draws every profile from one stream seeded once per build,
	// in load iteration order. Reordering loads changes the output.
	ModeSerial Mode = iota
	// ModeSubstream derives an independent stream per load index, so draws
	// can run in parallel. Output differs from ModeSerial for the same seed.
	ModeSubstream
)

// String returns the string representation of a mode
func (m Mode) String() string {
	switch m {
	case ModeSerial:
		return "serial"
	case ModeSubstream:
		return "substream"
	default:
		return "unknown"
	}
}

// ParseMode converts a string to a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "serial":
		return ModeSerial, nil
	case "substream":
		return ModeSubstream, nil
	default:
		return ModeSerial, fmt.Errorf("unknown draw mode %q (want serial or substream)", s)
	}
}

// Config holds the synthesis parameters.
type Config struct {
	// CoarseLength is the expected base profile length H. Zero accepts any length >= 2.
	CoarseLength int `validate:"gte=0"`
	// Step is the fine-to-coarse index ratio r.
	Step float64 `validate:"gt=0,lte=1"`
	// Sigma is the standard deviation of the additive gaussian noise.
	Sigma float64 `validate:"gte=0"`
	// TargetLength is the exact number of points T of every synthetic profile.
	TargetLength int `validate:"gt=0"`
	Seed         int64
	Mode         Mode `validate:"gte=0,lte=1"`
}

// DefaultConfig returns the parameters used for the yearly 15-minute dataset.
func DefaultConfig() Config {
	return Config{
		CoarseLength: DefaultCoarseLength,
		Step:         DefaultStep,
		Sigma:        DefaultSigma,
		TargetLength: DefaultTargetLength,
		Seed:         DefaultSeed,
		Mode:         ModeSerial,
	}
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if err := validation.Struct(&c); err != nil {
		return fmt.Errorf("profile config: %w", err)
	}
	if c.CoarseLength > 0 {
		if n := InterpolatedCount(c.CoarseLength, c.Step); n > c.TargetLength {
			return fmt.Errorf("profile config: %w: %d interpolated points exceed target %d",
				ErrLengthMismatch, n, c.TargetLength)
		}
	}
	return nil
}
