package vecfuzz

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vecfuzz/column"
	"github.com/hupe1980/vecfuzz/internal/engine"
	"github.com/hupe1980/vecfuzz/internal/resource"
)

// Func selects a similarity function.
type Func uint8

const (
	// FuncRatio is the normalized edit-distance similarity in [0, 100].
	FuncRatio Func = iota
	// FuncPartialRatio is the best-aligned substring ratio in [0, 100].
	FuncPartialRatio
	// FuncGram is the n-gram overlap in [0, 1].
	FuncGram
)

// Funcs lists every function in registration order.
var Funcs = []Func{FuncRatio, FuncPartialRatio, FuncGram}

// String returns the registration name of the function.
func (f Func) String() string {
	return f.kind().String()
}

func (f Func) kind() engine.Kind {
	return engine.Kind(f)
}

// ParseFunc parses a registration name ("ratio", "partial_ratio", "gram").
func ParseFunc(name string) (Func, error) {
	for _, f := range Funcs {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, configError("func", name, "unknown function")
}

// Result holds one score column per requested function.
type Result struct {
	// Funcs are the computed functions, duplicates removed, in request order.
	Funcs []Func
	// Columns[i] holds the scores of Funcs[i]. All columns share one null set.
	Columns []*column.Float64
	// Errors lists the undecodable cells in row order. Their rows are null.
	Errors []*DecodeError
}

// Column returns the scores of fn, or nil if fn was not requested.
func (r *Result) Column(fn Func) *column.Float64 {
	for i, f := range r.Funcs {
		if f == fn {
			return r.Columns[i]
		}
	}
	return nil
}

// Len returns the number of rows.
func (r *Result) Len() int {
	if len(r.Columns) == 0 {
		return 0
	}
	return r.Columns[0].Len()
}

// Engine scores paired string columns.
//
// An Engine is immutable after New and safe for concurrent use.
type Engine struct {
	opts options
	rc   *resource.Controller
}

// New creates an Engine. Invalid settings are reported as *ConfigError.
func New(optFns ...Option) (*Engine, error) {
	o := applyOptions(optFns)
	if err := o.validate(); err != nil {
		return nil, err
	}

	// Build every scorer once so configuration problems surface here
	// rather than on the first batch.
	kinds := make([]engine.Kind, len(Funcs))
	for i, f := range Funcs {
		kinds[i] = f.kind()
	}
	if _, err := engine.New(o.exec, kinds); err != nil {
		return nil, translateError(err)
	}

	return &Engine{
		opts: o,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes: o.memoryLimit,
			MaxWorkers:       int64(o.workers),
		}),
	}, nil
}

// Workers returns the maximum number of chunks scored at once.
func (e *Engine) Workers() int {
	return e.rc.MaxWorkers()
}

// ChunkSize returns the number of rows scored per chunk.
func (e *Engine) ChunkSize() int {
	return e.opts.chunkSize
}

// batch is the validated input of a single Execute call.
type batch struct {
	left, right *column.Strings
	funcs       []Func
	kinds       []engine.Kind
	out         [][]float64
	bytes       int64
}

func (e *Engine) prepare(left, right *column.Strings, fns []Func) (*batch, error) {
	if left == nil || right == nil {
		return nil, ErrNilColumn
	}
	if len(fns) == 0 {
		return nil, ErrNoFuncs
	}
	if left.Len() != right.Len() {
		return nil, &LengthMismatchError{Left: left.Len(), Right: right.Len()}
	}

	b := &batch{left: left, right: right}
	var seen [FuncGram + 1]bool
	for _, fn := range fns {
		if fn > FuncGram {
			return nil, configError("func", int(fn), "unknown function")
		}
		if seen[fn] {
			continue
		}
		seen[fn] = true
		b.funcs = append(b.funcs, fn)
		b.kinds = append(b.kinds, fn.kind())
	}

	n := left.Len()
	b.bytes = int64(n) * int64(len(b.funcs)) * 8
	if err := e.rc.AcquireMemory(b.bytes); err != nil {
		return nil, fmt.Errorf("%w: %d bytes for %d rows", err, b.bytes, n)
	}

	b.out = make([][]float64, len(b.funcs))
	for i := range b.out {
		b.out[i] = make([]float64, n)
	}
	return b, nil
}

func (e *Engine) release(b *batch) {
	e.rc.ReleaseMemory(b.bytes)
}

// Execute scores every row of left against the same row of right.
//
// Rows are scored in chunks of ChunkSize; ctx is checked before each
// chunk. A row is null when either cell is null, or when a cell is not
// valid UTF-8 (see WithFailOnDecode).
func (e *Engine) Execute(ctx context.Context, left, right *column.Strings, fns ...Func) (*Result, error) {
	start := time.Now()

	b, err := e.prepare(left, right, fns)
	if err != nil {
		return nil, e.finish(ctx, b, nil, start, err)
	}
	defer e.release(b)

	exec, err := engine.New(e.opts.exec, b.kinds)
	if err != nil {
		return nil, e.finish(ctx, b, nil, start, translateError(err))
	}

	if err := ctx.Err(); err != nil {
		return nil, e.finish(ctx, b, nil, start, err)
	}

	n := left.Len()
	chunks := make([]engine.Chunk, 0, numChunks(n, e.opts.chunkSize))
	for lo := 0; lo < n; lo += e.opts.chunkSize {
		if lo > 0 {
			if err := ctx.Err(); err != nil {
				return nil, e.finish(ctx, b, nil, start, err)
			}
		}
		hi := min(lo+e.opts.chunkSize, n)

		chunk, err := e.runChunk(ctx, exec, b, lo, hi)
		if err != nil {
			return nil, e.finish(ctx, b, nil, start, translateError(err))
		}
		chunks = append(chunks, chunk)
	}

	res, err := e.assemble(ctx, b, chunks)
	return res, e.finish(ctx, b, res, start, err)
}

// ExecuteParallel is Execute with chunks scored concurrently.
//
// At most Workers chunks are in flight across all concurrent calls on the
// engine. Every row scores exactly as in Execute: the result does not
// depend on chunk size or worker count. With WithFailOnDecode the error
// reported is the one of the lowest failing row.
func (e *Engine) ExecuteParallel(ctx context.Context, left, right *column.Strings, fns ...Func) (*Result, error) {
	start := time.Now()

	b, err := e.prepare(left, right, fns)
	if err != nil {
		return nil, e.finish(ctx, b, nil, start, err)
	}
	defer e.release(b)

	if err := ctx.Err(); err != nil {
		return nil, e.finish(ctx, b, nil, start, err)
	}

	n := left.Len()
	size := e.opts.chunkSize
	chunks := make([]engine.Chunk, numChunks(n, size))
	failed := make([]error, len(chunks))

	// Chunks after the lowest failed one cannot change the outcome.
	var firstFailed atomic.Int64
	firstFailed.Store(math.MaxInt64)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.rc.MaxWorkers())

	for idx := range chunks {
		lo := idx * size
		hi := min(lo+size, n)

		g.Go(func() error {
			if int64(idx) > firstFailed.Load() {
				return nil
			}
			if err := e.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer e.rc.ReleaseWorker()

			if err := gctx.Err(); err != nil {
				return err
			}

			exec, err := engine.New(e.opts.exec, b.kinds)
			if err != nil {
				return err
			}

			chunk, err := e.runChunk(gctx, exec, b, lo, hi)
			if err != nil {
				failed[idx] = err
				for {
					cur := firstFailed.Load()
					if int64(idx) >= cur || firstFailed.CompareAndSwap(cur, int64(idx)) {
						break
					}
				}
				return nil
			}
			chunks[idx] = chunk
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, e.finish(ctx, b, nil, start, translateError(err))
	}
	for _, err := range failed {
		if err != nil {
			return nil, e.finish(ctx, b, nil, start, translateError(err))
		}
	}

	res, err := e.assemble(ctx, b, chunks)
	return res, e.finish(ctx, b, res, start, err)
}

func (e *Engine) runChunk(ctx context.Context, exec *engine.Executor, b *batch, lo, hi int) (engine.Chunk, error) {
	start := time.Now()

	chunk, err := exec.Run(b.left, b.right, lo, hi, b.out)
	if err != nil {
		return chunk, err
	}

	elapsed := time.Since(start)
	e.opts.metricsCollector.RecordChunk(hi-lo, elapsed)
	e.opts.logger.LogChunk(ctx, lo, hi, e.rc.BusyWorkers(), elapsed)
	return chunk, nil
}

// assemble merges the chunk outcomes in row order.
func (e *Engine) assemble(ctx context.Context, b *batch, chunks []engine.Chunk) (*Result, error) {
	nulls := roaring.New()
	var errs []*DecodeError

	for _, c := range chunks {
		nulls.AddMany(c.Nulls)
		for _, re := range c.Errors {
			de := newDecodeError(re)
			errs = append(errs, de)
			e.opts.metricsCollector.RecordDecodeError()
			e.opts.logger.LogDecodeError(ctx, de)
		}
	}

	res := &Result{
		Funcs:   b.funcs,
		Columns: make([]*column.Float64, len(b.funcs)),
		Errors:  errs,
	}
	for i := range b.funcs {
		bm := nulls
		if i > 0 {
			bm = nulls.Clone()
		}
		col, err := column.NewFloat64(b.out[i], bm)
		if err != nil {
			return nil, err
		}
		res.Columns[i] = col
	}
	return res, nil
}

func (e *Engine) finish(ctx context.Context, b *batch, res *Result, start time.Time, err error) error {
	rows, nulls, decodeErrors := 0, 0, 0
	if b != nil {
		rows = b.left.Len()
	}
	if res != nil && len(res.Columns) > 0 {
		nulls = res.Columns[0].NullCount()
		decodeErrors = len(res.Errors)
	}

	elapsed := time.Since(start)
	e.opts.metricsCollector.RecordBatch(rows, nulls, elapsed, err)
	e.opts.logger.LogBatch(ctx, rows, nulls, decodeErrors, elapsed, err)
	return err
}

func numChunks(n, size int) int {
	if n == 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Ratio scores left against right with FuncRatio.
func (e *Engine) Ratio(ctx context.Context, left, right *column.Strings) (*column.Float64, error) {
	return e.single(ctx, left, right, FuncRatio)
}

// PartialRatio scores left against right with FuncPartialRatio.
func (e *Engine) PartialRatio(ctx context.Context, left, right *column.Strings) (*column.Float64, error) {
	return e.single(ctx, left, right, FuncPartialRatio)
}

// Gram scores left against right with FuncGram.
func (e *Engine) Gram(ctx context.Context, left, right *column.Strings) (*column.Float64, error) {
	return e.single(ctx, left, right, FuncGram)
}

func (e *Engine) single(ctx context.Context, left, right *column.Strings, fn Func) (*column.Float64, error) {
	res, err := e.Execute(ctx, left, right, fn)
	if err != nil {
		return nil, err
	}
	return res.Columns[0], nil
}

// Score scores a single pair with the engine's configuration.
// Cells that are not valid UTF-8 are reported as *DecodeError for row 0.
func (e *Engine) Score(fn Func, a, b string) (float64, error) {
	if fn > FuncGram {
		return 0, configError("func", int(fn), "unknown function")
	}
	exec, err := engine.New(e.opts.exec, []engine.Kind{fn.kind()})
	if err != nil {
		return 0, translateError(err)
	}

	var buf [1]float64
	out, err := exec.Pair(a, b, buf[:0])
	if err != nil {
		return 0, translateError(err)
	}
	return out[0], nil
}
