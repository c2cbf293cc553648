// Package checkpoint persists per-block edge lists so that an interrupted run
// can resume without recomputing finished blocks.
//
// Blocks are keyed by a RunID, an xxh3-128 digest of everything that shapes
// block contents: both code matrices, the substitution matrix, the cutoff,
// the chunk sizes, the strategy and the triangle option. A changed input
// therefore never reuses a stale block. The store is a resumability cache,
// not a result format; it is safe to delete at any time.
//
// Storage is a badger key-value database. Values are varint-packed edges
// followed by an xxh3 checksum.
package checkpoint
