// Package config loads the YAML build configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-feederdata/pkg/logging"
	"github.com/dd0wney/cluso-feederdata/pkg/profile"
	"github.com/dd0wney/cluso-feederdata/pkg/validation"
)

// DefaultSubstationTransformer is the feeder head transformer of the SMART-DS regions.
const DefaultSubstationTransformer = "mdv_sub_1"

// Config is the full build configuration.
type Config struct {
	Seed    int64         `yaml:"seed"`
	Profile ProfileConfig `yaml:"profile"`
	// Workers bounds substream parallelism; 0 means one per CPU.
	Workers int `yaml:"workers" validate:"gte=0,lte=4096"`
	// StrictBuses turns duplicate, malformed and mixed-phase buses into build errors.
	StrictBuses           bool         `yaml:"strict_buses"`
	SubstationTransformer string       `yaml:"substation_transformer" validate:"omitempty,element"`
	MonitorMode           int          `yaml:"monitor_mode" validate:"oneof=0 1"`
	LogLevel              string       `yaml:"log_level"`
	Output                OutputConfig `yaml:"output"`
}

// ProfileConfig holds the synthesis parameters.
type ProfileConfig struct {
	CoarseLength int     `yaml:"coarse_length" validate:"gte=0"`
	Step         float64 `yaml:"step" validate:"gt=0,lte=1"`
	Sigma        float64 `yaml:"sigma" validate:"gte=0"`
	TargetLength int     `yaml:"target_length" validate:"gt=0"`
	Mode         string  `yaml:"mode" validate:"oneof=serial substream"`
}

// OutputConfig selects where and how artifacts are written.
type OutputConfig struct {
	Dir      string    `yaml:"dir"`
	Compress bool      `yaml:"compress"`
	S3       *S3Config `yaml:"s3"`
}

// S3Config targets an S3-compatible bucket. Empty credentials fall back to
// the default AWS credential chain.
type S3Config struct {
	Bucket          string `yaml:"bucket" validate:"required"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint" validate:"omitempty,url"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// Default returns the configuration of the yearly 15-minute dataset.
func Default() Config {
	return Config{
		Seed: profile.DefaultSeed,
		Profile: ProfileConfig{
			CoarseLength: profile.DefaultCoarseLength,
			Step:         profile.DefaultStep,
			Sigma:        profile.DefaultSigma,
			TargetLength: profile.DefaultTargetLength,
			Mode:         profile.ModeSerial.String(),
		},
		SubstationTransformer: DefaultSubstationTransformer,
		LogLevel:              logging.InfoLevel.String(),
		Output: OutputConfig{
			Dir: "out",
		},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and cross-field rules.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}

	cv := validation.NewConfigValidator("config").
		Custom("log_level", func() error {
			_, err := logging.LookupLevel(c.LogLevel)
			return err
		}).
		Custom("profile", func() error {
			_, err := c.ProfileConfig()
			return err
		})

	cv.When(c.Output.S3 != nil, func(cv *validation.ConfigValidator) {
		s3 := c.Output.S3
		cv.Custom("output.s3", func() error {
			if (s3.AccessKeyID == "") != (s3.SecretAccessKey == "") {
				return errors.New("access_key_id and secret_access_key must be set together")
			}
			return nil
		})
	})

	return cv.Validate()
}

// ProfileConfig converts the profile section and seed into synthesis parameters.
func (c *Config) ProfileConfig() (profile.Config, error) {
	mode, err := profile.ParseMode(c.Profile.Mode)
	if err != nil {
		return profile.Config{}, err
	}

	pc := profile.Config{
		CoarseLength: c.Profile.CoarseLength,
		Step:         c.Profile.Step,
		Sigma:        c.Profile.Sigma,
		TargetLength: c.Profile.TargetLength,
		Seed:         c.Seed,
		Mode:         mode,
	}
	if err := pc.Validate(); err != nil {
		return profile.Config{}, err
	}
	return pc, nil
}

// Level returns the configured log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}
