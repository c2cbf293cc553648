// SPDX-License-Identifier: MIT

// Package matrix - Scores: dense int32 distance blocks (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Offer in-place element-wise transforms (Apply) used by the sparsifier.
//
// Hints:
//   - Backends write through Raw() in their hot loops; everyone else uses At/Set.
//   - A block is transient: allocate per (row-range, col-range) pair, drop after sparsify.
//
// Complexity quicksheet:
//   - NewScores: O(r*c) zero-init; At/Set: O(1); Clone/Apply: O(r*c).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxScoresAt  = "Scores.At"
	ctxScoresSet = "Scores.Set"
)

// Scores is a dense r×c matrix of int32 pair scores.
//   - r,c hold dimensions (rows, cols); zero is legal for empty blocks.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//
// int32 leaves room for the −1 sentinel used by the sparsifier; a
// score is a sum of W_enc non-negative costs and never approaches the limit
// for realistic substitution matrices.
type Scores struct {
	r, c int
	data []int32
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Scores)(nil)

// NewScores creates an r×c zero block.
// MAIN DESCRIPTION:
//   - Public constructor for Scores with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0; else ErrBadShape.
//   - Stage 2: allocate zero-filled buffer.
//
// Errors:
//   - ErrBadShape (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewScores(rows, cols int) (*Scores, error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf("NewScores", ErrBadShape)
	}

	return &Scores{r: rows, c: cols, data: make([]int32, rows*cols)}, nil
}

// ScoresFromData wraps an existing row-major buffer without copying.
//
// Errors:
//   - ErrBadShape when len(data) != rows*cols or a dimension is negative.
func ScoresFromData(rows, cols int, data []int32) (*Scores, error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, matrixErrorf("ScoresFromData", ErrBadShape)
	}

	return &Scores{r: rows, c: cols, data: data}, nil
}

// Rows returns the row count.
func (m *Scores) Rows() int { return m.r }

// Cols returns the column count.
func (m *Scores) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *Scores) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods (At/Set) wrap the sentinel with coordinates and method name.
func (m *Scores) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
func (m *Scores) At(row, col int) (int32, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, indexErrorf(ctxScoresAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
func (m *Scores) Set(row, col int, v int32) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return indexErrorf(ctxScoresSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Raw exposes the flat row-major buffer for backend hot loops.
func (m *Scores) Raw() []int32 { return m.data }

// Apply rewrites every element in place as fn(i, j, v).
// Loop order is fixed (i→j), so fn observes a deterministic sequence.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Scores) Apply(fn func(i, j int, v int32) int32) {
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			m.data[base+j] = fn(i, j, m.data[base+j])
		}
	}
}

// Clone returns a deep copy.
func (m *Scores) Clone() *Scores {
	cp := make([]int32, len(m.data))
	copy(cp, m.data)

	return &Scores{r: m.r, c: m.c, data: cp}
}

// Equal reports whether two blocks have identical shape and values.
func (m *Scores) Equal(o *Scores) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.r != o.r || m.c != o.c {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}

	return true
}

// String renders one bracketed row per line for debugging.
func (m *Scores) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString("[")
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
