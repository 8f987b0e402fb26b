package vecfuzz

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    rowCounter     prometheus.Counter
//	    batchHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordBatch(rows, nulls int, duration time.Duration, err error) {
//	    p.rowCounter.Add(float64(rows))
//	    p.batchHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordBatch is called after each Execute or ExecuteParallel call.
	// rows is the batch length, nulls the number of null output rows,
	// err is nil if successful.
	RecordBatch(rows, nulls int, duration time.Duration, err error)

	// RecordChunk is called after each chunk of a batch is scored.
	RecordChunk(rows int, duration time.Duration)

	// RecordDecodeError is called for each undecodable cell.
	RecordDecodeError()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBatch(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordChunk(int, time.Duration)             {}
func (NoopMetricsCollector) RecordDecodeError()                         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BatchCount      atomic.Int64
	BatchErrors     atomic.Int64
	BatchTotalNanos atomic.Int64
	RowCount        atomic.Int64
	NullCount       atomic.Int64
	ChunkCount      atomic.Int64
	ChunkTotalNanos atomic.Int64
	DecodeErrors    atomic.Int64
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(rows, nulls int, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BatchErrors.Add(1)
		return
	}
	b.RowCount.Add(int64(rows))
	b.NullCount.Add(int64(nulls))
}

// RecordChunk implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunk(rows int, duration time.Duration) {
	b.ChunkCount.Add(1)
	b.ChunkTotalNanos.Add(duration.Nanoseconds())
}

// RecordDecodeError implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecodeError() {
	b.DecodeErrors.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BatchCount:    b.BatchCount.Load(),
		BatchErrors:   b.BatchErrors.Load(),
		BatchAvgNanos: avg(b.BatchTotalNanos.Load(), b.BatchCount.Load()),
		RowCount:      b.RowCount.Load(),
		NullCount:     b.NullCount.Load(),
		ChunkCount:    b.ChunkCount.Load(),
		ChunkAvgNanos: avg(b.ChunkTotalNanos.Load(), b.ChunkCount.Load()),
		DecodeErrors:  b.DecodeErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BatchCount    int64
	BatchErrors   int64
	BatchAvgNanos int64
	RowCount      int64
	NullCount     int64
	ChunkCount    int64
	ChunkAvgNanos int64
	DecodeErrors  int64
}
