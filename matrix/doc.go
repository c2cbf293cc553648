// Package matrix offers the flat, row-major storage types the distance engine
// is built from.
//
// The matrix package provides:
//
//   - Codes: one fixed-width uint8 feature vector per encoded record, with
//     no-copy row windows (Slice) used for chunking.
//   - Substitution: the square cost table indexed by two token codes.
//   - Scores: a dense int32 block of pair scores with safe At/Set and an
//     in-place Apply for element-wise passes.
//   - COO and Bitmap: the sparse edge form of a block and a presence mask
//     that lets exact zeros survive extraction.
//
// Every public accessor returns a sentinel error (see errors.go) instead of
// panicking, and every loop runs in a fixed i→j order so results are
// reproducible run to run.
package matrix
