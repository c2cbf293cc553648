// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// Substitution is a square dim×dim cost table indexed by two token codes.
// Costs are non-negative; the diagonal is conventionally (not necessarily) zero.
// A Substitution is immutable after construction and safe for concurrent reads.
type Substitution struct {
	dim     int
	data    []int32
	maxCost int32
}

// NewSubstitution validates and wraps a row-major dim×dim cost buffer.
// The buffer is copied, so later caller mutations cannot leak into a run.
//
// Errors (in priority order):
//   - ErrBadShape when dim <= 0 or dim > 256 (codes are uint8).
//   - ErrNonSquare when len(costs) != dim*dim.
//   - ErrNegativeCost when any cost is < 0 (wrapped with its coordinates).
func NewSubstitution(dim int, costs []int32) (*Substitution, error) {
	if dim <= 0 || dim > 256 {
		return nil, fmt.Errorf("NewSubstitution: dim %d: %w", dim, ErrBadShape)
	}
	if len(costs) != dim*dim {
		return nil, fmt.Errorf("NewSubstitution: %d costs for dim %d: %w", len(costs), dim, ErrNonSquare)
	}
	data := make([]int32, len(costs))
	var hi int32
	for k, v := range costs {
		if v < 0 {
			return nil, indexErrorf("NewSubstitution", k/dim, k%dim, ErrNegativeCost)
		}
		data[k] = v
		hi = max(hi, v)
	}

	return &Substitution{dim: dim, data: data, maxCost: hi}, nil
}

// SubstitutionFromRows builds a Substitution from a [][]int32 table.
//
// Errors:
//   - ErrNonSquare when the table is ragged or not square.
//   - plus everything NewSubstitution reports.
func SubstitutionFromRows(rows [][]int32) (*Substitution, error) {
	dim := len(rows)
	flat := make([]int32, 0, dim*dim)
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("SubstitutionFromRows: row %d has %d entries, want %d: %w", i, len(row), dim, ErrNonSquare)
		}
		flat = append(flat, row...)
	}

	return NewSubstitution(dim, flat)
}

// Dim returns the matrix dimension (max supported code + 1).
func (s *Substitution) Dim() int { return s.dim }

// Cost returns S[a, b] or ErrCodeRange.
func (s *Substitution) Cost(a, b uint8) (int32, error) {
	if int(a) >= s.dim || int(b) >= s.dim {
		return 0, indexErrorf("Substitution.Cost", int(a), int(b), ErrCodeRange)
	}

	return s.data[int(a)*s.dim+int(b)], nil
}

// Row returns the costs S[a, *] as a read-only sub-slice.
// Kernels hoist this lookup out of their inner loop.
func (s *Substitution) Row(a uint8) ([]int32, error) {
	if int(a) >= s.dim {
		return nil, indexErrorf("Substitution.Row", int(a), 0, ErrCodeRange)
	}

	return s.data[int(a)*s.dim : (int(a)+1)*s.dim], nil
}

// MaxCost returns the largest cost in the table.
func (s *Substitution) MaxCost() int32 { return s.maxCost }

// Raw exposes the flat row-major cost buffer (read-only by contract).
func (s *Substitution) Raw() []int32 { return s.data }

// MaxScore returns the largest pair score possible over width positions.
func (s *Substitution) MaxScore(width int) int64 {
	return int64(width) * int64(s.maxCost)
}

// FitsWidth reports whether every pair score over width positions fits in
// int32.
func (s *Substitution) FitsWidth(width int) bool {
	return s.MaxScore(width) <= math.MaxInt32
}

// Covers reports whether every code in c can index the matrix.
// An empty Codes is always covered.
func (s *Substitution) Covers(c *Codes) bool {
	hi, ok := c.MaxCode()

	return !ok || int(hi) < s.dim
}
