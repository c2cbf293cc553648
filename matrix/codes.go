// SPDX-License-Identifier: MIT

// Package matrix - Codes: row-major storage of encoded sequences.
//
// Purpose:
//   - Hold one fixed-width uint8 feature vector per record in a single flat buffer.
//   - Provide no-copy row windows (Slice) so the scheduler can hand blocks to a
//     backend without duplicating the collection.
//
// Complexity quicksheet:
//   - NewCodes: O(r*c) zero-init; At/Set/Row: O(1); Slice: O(1); MaxCode: O(r*c).

package matrix

import "fmt"

const (
	ctxCodesAt    = "Codes.At"
	ctxCodesSet   = "Codes.Set"
	ctxCodesRow   = "Codes.Row"
	ctxCodesSlice = "Codes.Slice"
)

// Codes is a row-major r×c matrix of token codes.
//   - r is the number of encoded records, c the encoded width (W_enc).
//   - data holds r*c codes; row i occupies data[i*c : (i+1)*c].
//
// A Codes value is read-only once handed to the scheduler; windows returned by
// Slice share the backing buffer.
type Codes struct {
	r, c int
	data []uint8
}

// NewCodes allocates a zero-filled rows×cols code matrix.
// Zero rows is legal (an empty collection); negative dimensions are not.
//
// Errors:
//   - ErrBadShape when rows < 0 or cols < 0.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewCodes(rows, cols int) (*Codes, error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf("NewCodes", ErrBadShape)
	}

	return &Codes{r: rows, c: cols, data: make([]uint8, rows*cols)}, nil
}

// CodesFromRows copies a rectangular [][]uint8 into a new Codes.
// Every row must have the same length; an empty input yields a 0×0 matrix.
//
// Errors:
//   - ErrDimensionMismatch when rows are ragged.
func CodesFromRows(rows [][]uint8) (*Codes, error) {
	if len(rows) == 0 {
		return &Codes{}, nil
	}
	c := len(rows[0])
	out := &Codes{r: len(rows), c: c, data: make([]uint8, len(rows)*c)}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("CodesFromRows: row %d has %d codes, want %d: %w", i, len(row), c, ErrDimensionMismatch)
		}
		copy(out.data[i*c:], row)
	}

	return out, nil
}

// Rows returns the number of encoded records.
func (m *Codes) Rows() int { return m.r }

// Cols returns the encoded width.
func (m *Codes) Cols() int { return m.c }

// Shape returns (Rows, Cols).
func (m *Codes) Shape() (rows, cols int) { return m.r, m.c }

// At returns the code at (row, col) or ErrOutOfRange.
func (m *Codes) At(row, col int) (uint8, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, indexErrorf(ctxCodesAt, row, col, ErrOutOfRange)
	}

	return m.data[row*m.c+col], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
func (m *Codes) Set(row, col int, v uint8) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return indexErrorf(ctxCodesSet, row, col, ErrOutOfRange)
	}
	m.data[row*m.c+col] = v

	return nil
}

// Row returns the codes of row i as a sub-slice of the backing buffer.
// The caller must not modify the returned slice.
func (m *Codes) Row(i int) ([]uint8, error) {
	if i < 0 || i >= m.r {
		return nil, indexErrorf(ctxCodesRow, i, 0, ErrOutOfRange)
	}

	return m.data[i*m.c : (i+1)*m.c], nil
}

// Slice returns the half-open row window [r0, r1) as a Codes that shares
// storage with m. This is the chunking primitive: rows are contiguous in
// row-major order, so a window needs no copy.
//
// Errors:
//   - ErrBadShape when the window is inverted or outside [0, Rows()].
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Codes) Slice(r0, r1 int) (*Codes, error) {
	if r0 < 0 || r1 < r0 || r1 > m.r {
		return nil, fmt.Errorf("%s(%d,%d): %w", ctxCodesSlice, r0, r1, ErrBadShape)
	}

	return &Codes{r: r1 - r0, c: m.c, data: m.data[r0*m.c : r1*m.c]}, nil
}

// MaxCode returns the largest code present, and false for an empty matrix.
// Used to check that a substitution matrix can index every code in use.
func (m *Codes) MaxCode() (uint8, bool) {
	if len(m.data) == 0 {
		return 0, false
	}
	var hi uint8
	for _, v := range m.data {
		if v > hi {
			hi = v
		}
	}

	return hi, true
}

// Bytes exposes the flat row-major buffer (read-only by contract).
// Hot loops in backends and the checkpoint fingerprint read it directly.
func (m *Codes) Bytes() []uint8 { return m.data }

// Equal reports whether two code matrices have identical shape and content.
func (m *Codes) Equal(o *Codes) bool {
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
