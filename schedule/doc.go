// Package schedule is the chunked, memory-bounded driver of the distance
// engine.
//
// The n1×n2 pair space is cut into blocks whose size is set by RowChunk and
// ColChunk; only one dense block per worker is alive at a time. For every
// block the scheduler slices the code matrices (no copy), asks the backend
// for the dense scores, sparsifies them into global edges and stores them in
// the block's own result slot. When all workers are done the slots are
// concatenated in plan order.
//
// Two strategies share the same driver:
//
//   - Strategy2D   (row chunk × col chunk) tiles; in self mode with the
//     lower-triangle option, tiles entirely above the diagonal are skipped.
//   - StrategyRows one row chunk against all columns.
//
// A run either returns the complete edge list or a *StageError naming the
// failing stage and block. With Config.Checkpoint set, finished blocks are
// persisted and a later run with identical inputs restores them instead of
// scoring them again.
//
// Usage:
//
//	cfg := schedule.DefaultConfig()
//	cfg.Workers = 4
//	res, err := schedule.Run(ctx, primary, nil, sub, be, cfg)
package schedule
