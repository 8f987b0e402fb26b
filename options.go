package vecfuzz

import (
	"log/slog"

	"github.com/hupe1980/vecfuzz/internal/engine"
	"github.com/hupe1980/vecfuzz/internal/gram"
	"github.com/hupe1980/vecfuzz/internal/normalize"
	"github.com/hupe1980/vecfuzz/internal/partial"
)

// DefaultChunkSize is the number of rows scored per chunk.
const DefaultChunkSize = 4096

// Form is a Unicode normalization form applied before scoring.
type Form = normalize.Form

const (
	FormNone = normalize.FormNone
	FormNFC  = normalize.FormNFC
	FormNFD  = normalize.FormNFD
	FormNFKC = normalize.FormNFKC
	FormNFKD = normalize.FormNFKD
)

// Measure is the overlap coefficient used by gram.
type Measure = gram.Measure

const (
	MeasureDice    = gram.Dice
	MeasureJaccard = gram.Jaccard
	MeasureCosine  = gram.Cosine
)

// EmptyNeedle selects the partial_ratio score of an empty string against
// a non-empty one.
type EmptyNeedle = partial.EmptyNeedle

const (
	EmptyNeedleStrict = partial.EmptyNeedleStrict
	EmptyNeedleMatch  = partial.EmptyNeedleMatch
)

type options struct {
	exec             engine.Config
	chunkSize        int
	workers          int
	memoryLimit      int64
	metricsCollector MetricsCollector
	logger           *Logger

	// err is the first failure recorded by an option and reported by New.
	err error
}

// Option configures Engine constructor behavior.
type Option func(*options)

// WithNormalizeForm applies a Unicode normalization form to both sides
// of every pair before scoring.
func WithNormalizeForm(f Form) Option {
	return func(o *options) {
		o.exec.Normalize.Form = f
	}
}

// WithCaseFold applies Unicode case folding to both sides before scoring.
func WithCaseFold(enabled bool) Option {
	return func(o *options) {
		o.exec.Normalize.CaseFold = enabled
	}
}

// WithTrimSpace strips leading and trailing white space before scoring.
func WithTrimSpace(enabled bool) Option {
	return func(o *options) {
		o.exec.Normalize.TrimSpace = enabled
	}
}

// WithCollapseSpace replaces runs of white space with one space and trims.
func WithCollapseSpace(enabled bool) Option {
	return func(o *options) {
		o.exec.Normalize.CollapseSpace = enabled
	}
}

// WithGramSize sets the shingle length of gram. Defaults to 2.
func WithGramSize(n int) Option {
	return func(o *options) {
		o.exec.Gram.N = n
	}
}

// WithGramMeasure sets the overlap coefficient of gram. Defaults to Dice.
func WithGramMeasure(m Measure) Option {
	return func(o *options) {
		o.exec.Gram.Measure = m
	}
}

// WithGramMultiset makes gram count repeated shingles.
func WithGramMultiset(enabled bool) Option {
	return func(o *options) {
		o.exec.Gram.Multiset = enabled
	}
}

// WithGramPadding surrounds non-empty strings with n-1 spaces so the
// first and last characters form their own shingles.
//
// Padding with multiset cosine scores transpositions at the edges of a
// string the way trigram-style matchers do:
//
//	eng, _ := vecfuzz.New(
//	    vecfuzz.WithGramPadding(true),
//	    vecfuzz.WithGramMultiset(true),
//	    vecfuzz.WithGramMeasure(vecfuzz.MeasureCosine),
//	)
func WithGramPadding(enabled bool) Option {
	return func(o *options) {
		o.exec.Gram.Pad = enabled
	}
}

// WithEmptyNeedle selects how partial_ratio scores an empty string
// against a non-empty one. Defaults to EmptyNeedleStrict (0).
func WithEmptyNeedle(p EmptyNeedle) Option {
	return func(o *options) {
		o.exec.Partial.EmptyNeedle = p
	}
}

// WithFailOnDecode makes a batch fail with *DecodeError at the first cell
// that is not valid UTF-8. By default such rows score null and are
// reported in Result.Errors.
func WithFailOnDecode(enabled bool) Option {
	return func(o *options) {
		o.exec.FailOnDecode = enabled
	}
}

// WithChunkSize sets the number of rows scored per chunk.
// Cancellation is checked between chunks. 0 selects DefaultChunkSize.
func WithChunkSize(rows int) Option {
	return func(o *options) {
		o.chunkSize = rows
	}
}

// WithWorkers sets the maximum number of chunks ExecuteParallel scores at
// once across all its calls. 0 selects runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMemoryLimit caps the output buffer memory of in-flight batches.
// Batches that do not fit fail fast with ErrMemoryLimitExceeded.
// 0 disables the limit.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &vecfuzz.BasicMetricsCollector{}
//	eng, _ := vecfuzz.New(vecfuzz.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Rows: %d, Avg batch latency: %dns\n", stats.RowCount, stats.BatchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := vecfuzz.NewJSONLogger(slog.LevelInfo)
//	eng, _ := vecfuzz.New(vecfuzz.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		exec:             engine.DefaultConfig(),
		chunkSize:        DefaultChunkSize,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.chunkSize == 0 {
		o.chunkSize = DefaultChunkSize
	}
	return o
}

func (o *options) validate() error {
	if o.err != nil {
		return o.err
	}
	if o.chunkSize < 0 {
		return configError("chunk_size", o.chunkSize, "must not be negative")
	}
	if o.workers < 0 {
		return configError("workers", o.workers, "must not be negative")
	}
	if o.memoryLimit < 0 {
		return configError("memory_limit_bytes", o.memoryLimit, "must not be negative")
	}
	if o.exec.Gram.N < 1 {
		return configError("gram.n", o.exec.Gram.N, "must be at least 1")
	}
	if err := o.exec.Gram.Validate(); err != nil {
		return &ConfigError{Field: "gram.measure", Value: o.exec.Gram.Measure, Reason: "unknown measure", cause: err}
	}
	if err := o.exec.Normalize.Validate(); err != nil {
		return &ConfigError{Field: "normalize.form", Value: o.exec.Normalize.Form, Reason: "unknown form", cause: err}
	}
	if s := o.exec.Partial.EmptyNeedle.String(); s == "unknown" {
		return configError("partial.empty_needle", int(o.exec.Partial.EmptyNeedle), "unknown policy")
	}
	return nil
}
