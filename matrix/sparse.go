// SPDX-License-Identifier: MIT

// Package matrix - sparse extraction.
//
// Purpose:
//   - COO is the coordinate-list form of a block: parallel (row, col, value) slices.
//   - ToCOO follows the usual sparse convention and drops zero entries.
//   - ToCOOMasked extracts exactly the entries flagged in a presence Bitmap,
//     so a legitimate zero survives without any value overloading.
//
// Determinism:
//   - Entries are emitted in row-major order (i→j), never by map iteration.

package matrix

import (
	"fmt"
	"math/bits"
)

// COO is a coordinate-list sparse matrix.
// Row, Col and Data always have equal length.
type COO struct {
	Rows, Cols int // shape of the source block
	Row        []int
	Col        []int
	Data       []int32
}

// Len returns the number of stored entries.
func (s *COO) Len() int { return len(s.Data) }

// Bitmap is a dense presence mask with one bit per (i, j) of an r×c block.
type Bitmap struct {
	r, c  int
	words []uint64
}

// NewBitmap allocates an all-clear r×c mask.
func NewBitmap(rows, cols int) (*Bitmap, error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf("NewBitmap", ErrBadShape)
	}

	return &Bitmap{r: rows, c: cols, words: make([]uint64, (rows*cols+63)/64)}, nil
}

// Shape returns (rows, cols).
func (b *Bitmap) Shape() (rows, cols int) { return b.r, b.c }

// Mark sets the bit for (i, j). Out-of-range coordinates are an error.
func (b *Bitmap) Mark(i, j int) error {
	if i < 0 || i >= b.r || j < 0 || j >= b.c {
		return indexErrorf("Bitmap.Mark", i, j, ErrOutOfRange)
	}
	k := i*b.c + j
	b.words[k>>6] |= 1 << (uint(k) & 63)

	return nil
}

// Has reports whether (i, j) is marked; out-of-range coordinates report false.
func (b *Bitmap) Has(i, j int) bool {
	if i < 0 || i >= b.r || j < 0 || j >= b.c {
		return false
	}
	k := i*b.c + j

	return b.words[k>>6]&(1<<(uint(k)&63)) != 0
}

// Count returns the number of marked bits.
func (b *Bitmap) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}

	return n
}

// ToCOO extracts every non-zero entry of d in row-major order.
//
// Complexity:
//   - Time O(r*c), Space O(nnz).
func ToCOO(d *Scores) (*COO, error) {
	if d == nil {
		return nil, matrixErrorf("ToCOO", ErrNilMatrix)
	}
	out := &COO{Rows: d.r, Cols: d.c}
	for i := 0; i < d.r; i++ {
		base := i * d.c
		for j := 0; j < d.c; j++ {
			if v := d.data[base+j]; v != 0 {
				out.Row = append(out.Row, i)
				out.Col = append(out.Col, j)
				out.Data = append(out.Data, v)
			}
		}
	}

	return out, nil
}

// ToCOOMasked extracts the entries of d whose bit is set in keep, zeros included.
//
// Errors:
//   - ErrNilMatrix when d or keep is nil.
//   - ErrDimensionMismatch when shapes differ.
func ToCOOMasked(d *Scores, keep *Bitmap) (*COO, error) {
	if d == nil || keep == nil {
		return nil, matrixErrorf("ToCOOMasked", ErrNilMatrix)
	}
	if d.r != keep.r || d.c != keep.c {
		return nil, fmt.Errorf("ToCOOMasked: block %dx%d, mask %dx%d: %w", d.r, d.c, keep.r, keep.c, ErrDimensionMismatch)
	}
	out := &COO{Rows: d.r, Cols: d.c}
	for wi, w := range keep.words {
		for w != 0 {
			// lowest set bit first keeps row-major order
			k := wi*64 + bits.TrailingZeros64(w)
			w &= w - 1
			i, j := k/d.c, k%d.c
			out.Row = append(out.Row, i)
			out.Col = append(out.Col, j)
			out.Data = append(out.Data, d.data[k])
		}
	}

	return out, nil
}
