// Package resource implements the Controller for engine-wide limits.
//
// The Controller manages two resource types shared by every batch an
// engine runs:
//
//   - Memory: Track and limit output buffer memory (non-blocking, fail-fast)
//   - Concurrency: Limit the number of chunks scored at the same time
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	if err := rc.AcquireMemory(rows * 8); err != nil {
//	    // ErrMemoryLimitExceeded - the batch is rejected before scoring
//	}
//	defer rc.ReleaseMemory(rows * 8)
//
// # Worker Limits
//
// Limits concurrent chunk workers across all parallel batches:
//
//	rc := resource.NewController(resource.Config{
//	    MaxWorkers: 4,
//	})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
package resource
