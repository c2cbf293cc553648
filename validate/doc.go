// Package validate checks the chunked engine against a direct evaluation.
//
// BruteForce scores every pair with plain nested loops and Substitution.Cost,
// without blocks, backends or sparse extraction, so it shares no code path
// with the scheduler beyond the input types. Compare sorts two edge lists by
// (row, col) and reports the first difference. Check runs both and compares.
package validate
