// Package tcrdist computes sparse TCRdist edge lists between collections of
// paired-chain T-cell receptors without ever holding the full n×n distance
// matrix in memory.
//
// What is tcrdist?
//
//	A chunked, memory-bounded all-pairs distance engine that brings together:
//		• Encoding: receptors → fixed-width rows of small integer codes
//		• Kernel: substitution-matrix sums over a block of rows × columns
//		• Sparsifier: cutoff pruning that keeps genuine zero distances
//		• Scheduler: 2-D or row-only blocking, worker pool, resumable checkpoints
//		• Validator: a direct all-pairs oracle for equivalence checks
//
// Under the hood, everything is organized into small packages:
//
//	matrix/     Codes, Scores, Substitution, COO and Bitmap storage + validators
//	encode/     token table, centre padding, record encoder
//	backend/    NumericBackend engines (serial, parallel) and the capability probe
//	sparsify/   block → global edges under the sentinel or bitmap policy
//	schedule/   block plan and concurrent run
//	validate/   brute-force oracle and edge-set comparison
//	checkpoint/ badger-backed per-block edge cache keyed by an xxh3 run id
//	neighbors/  top-k nearest records per query
//	network/    connected components of the edge graph
//	tsvio/      TSV readers and writers
//
// Quick example:
//
//	res, err := schedule.RunRecords(ctx, table, records, nil, sub,
//		backend.NewSerial(), schedule.DefaultConfig(), encode.DefaultOptions())
//
// The tcrdist command (cmd/tcrdist) wires all of the above behind flags.
//
//	go install github.com/katalvlaran/tcrdist/cmd/tcrdist@latest
package tcrdist
