package vecfuzz

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/vecfuzz/internal/gram"
	"github.com/hupe1980/vecfuzz/internal/normalize"
	"github.com/hupe1980/vecfuzz/internal/partial"
)

// Config is the file form of the engine options.
//
//	normalize:
//	  form: nfkc
//	  case_fold: true
//	  collapse_space: true
//	gram:
//	  n: 3
//	  measure: cosine
//	  multiset: true
//	  pad: true
//	partial:
//	  empty_needle: strict
//	fail_on_decode: false
//	chunk_size: 4096
//	workers: 8
//	memory_limit_bytes: 1073741824
//	log_level: info
//
// Unset keys keep their defaults.
type Config struct {
	Normalize NormalizeConfig `yaml:"normalize"`
	Gram      GramConfig      `yaml:"gram"`
	Partial   PartialConfig   `yaml:"partial"`

	FailOnDecode     bool   `yaml:"fail_on_decode"`
	ChunkSize        int    `yaml:"chunk_size"`
	Workers          int    `yaml:"workers"`
	MemoryLimitBytes int64  `yaml:"memory_limit_bytes"`
	LogLevel         string `yaml:"log_level,omitempty"`
}

// NormalizeConfig holds the pre-scoring transforms.
type NormalizeConfig struct {
	Form          string `yaml:"form"`
	CaseFold      bool   `yaml:"case_fold"`
	TrimSpace     bool   `yaml:"trim_space"`
	CollapseSpace bool   `yaml:"collapse_space"`
}

// GramConfig holds the gram scorer settings.
type GramConfig struct {
	N        int    `yaml:"n"`
	Measure  string `yaml:"measure"`
	Multiset bool   `yaml:"multiset"`
	Pad      bool   `yaml:"pad"`
}

// PartialConfig holds the partial_ratio settings.
type PartialConfig struct {
	EmptyNeedle string `yaml:"empty_needle"`
}

// DefaultConfig returns the configuration New uses without options.
func DefaultConfig() Config {
	return Config{
		Normalize: NormalizeConfig{Form: normalize.FormNone.String()},
		Gram: GramConfig{
			N:       gram.DefaultOptions.N,
			Measure: gram.DefaultOptions.Measure.String(),
		},
		Partial:   PartialConfig{EmptyNeedle: partial.EmptyNeedleStrict.String()},
		ChunkSize: DefaultChunkSize,
	}
}

// ParseConfig parses YAML data on top of DefaultConfig.
// Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return cfg, nil
}

// LoadConfig loads and parses a YAML config file from the given path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(data)
}

// Marshal serializes the config to YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Options converts the config into engine options. Invalid names are
// reported as *ConfigError.
func (c Config) Options() ([]Option, error) {
	form, err := normalize.ParseForm(c.Normalize.Form)
	if err != nil {
		return nil, &ConfigError{Field: "normalize.form", Value: c.Normalize.Form, Reason: "unknown form", cause: err}
	}
	measure, err := gram.ParseMeasure(c.Gram.Measure)
	if err != nil {
		return nil, &ConfigError{Field: "gram.measure", Value: c.Gram.Measure, Reason: "unknown measure", cause: err}
	}
	needle, err := partial.ParseEmptyNeedle(c.Partial.EmptyNeedle)
	if err != nil {
		return nil, &ConfigError{Field: "partial.empty_needle", Value: c.Partial.EmptyNeedle, Reason: "unknown policy", cause: err}
	}

	opts := []Option{
		WithNormalizeForm(form),
		WithCaseFold(c.Normalize.CaseFold),
		WithTrimSpace(c.Normalize.TrimSpace),
		WithCollapseSpace(c.Normalize.CollapseSpace),
		WithGramSize(c.Gram.N),
		WithGramMeasure(measure),
		WithGramMultiset(c.Gram.Multiset),
		WithGramPadding(c.Gram.Pad),
		WithEmptyNeedle(needle),
		WithFailOnDecode(c.FailOnDecode),
		WithChunkSize(c.ChunkSize),
		WithWorkers(c.Workers),
		WithMemoryLimit(c.MemoryLimitBytes),
	}

	if c.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return nil, &ConfigError{Field: "log_level", Value: c.LogLevel, Reason: "unknown level", cause: err}
		}
		opts = append(opts, WithLogLevel(level))
	}

	return opts, nil
}

// WithConfig applies every setting of cfg. Options after it override
// individual settings.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		opts, err := cfg.Options()
		if err != nil {
			if o.err == nil {
				o.err = err
			}
			return
		}
		for _, fn := range opts {
			fn(o)
		}
	}
}
