// Package engine implements the row executor behind the public Engine.
//
// An Executor scores a contiguous row range of two string columns:
//   - rows with a null on either side become null without decoding
//   - both sides are validated and normalized once per row
//   - the decoded code points are shared by every requested scorer
//
// Executors own their scratch state and are not safe for concurrent use.
// Parallel batches create one Executor per chunk.
package engine
