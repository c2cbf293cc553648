// Package backend holds the numeric engines that score one block of encoded
// records against another.
//
// For code blocks A (n1×w) and B (n2×w) and a substitution matrix S an engine
// fills the dense block
//
//	D[i,j] = Σ_k S[A[i,k], B[j,k]]
//
// and can extract a sparse COO view of a block. Engines never materialise the
// n1×n2×w lookup tensor: B is transposed once per call and each row of D is
// accumulated column by column, so the working set is the output block plus
// one transposed copy of B.
//
// Two engines ship:
//
//   - "serial"   one goroutine, the reference engine;
//   - "parallel" row stripes scored concurrently on an errgroup.
//
// Both produce identical blocks. Probe picks one at startup; the chosen engine
// is passed explicitly to the scheduler, there is no package-level default.
// Every engine failure, including a recovered panic, is a *BackendError.
package backend
