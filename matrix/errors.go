// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Constructors and accessors return these sentinels (optionally wrapped
// with call-site context) and tests match them via errors.Is. No exported
// function panics on user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for easy grepping across logs.
// Wrap with fmt.Errorf("ctx: %w", ErrX) at the boundary; callers still use errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape -> index -> dimension mismatch -> value policy (negative cost, code range).

var (
	// ErrBadShape is returned when a requested shape is invalid (negative rows/cols,
	// or a backing buffer whose length is not rows*cols).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set/Row) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operands, e.g. two code blocks
	// with different encoded widths, or a mask whose shape differs from its block.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a substitution matrix was not square.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNegativeCost signals a negative substitution cost. Scores are sums of
	// costs and must stay non-negative for the zero-means-identical convention.
	ErrNegativeCost = errors.New("matrix: negative substitution cost")

	// ErrCodeRange signals a token code that cannot index the substitution matrix
	// (code >= dimension).
	ErrCodeRange = errors.New("matrix: code outside substitution matrix range")

	// ErrScoreOverflow signals that width × largest cost does not fit in int32,
	// so a pair score could wrap around and pass any cutoff.
	ErrScoreOverflow = errors.New("matrix: pair score may overflow int32")

	// ErrNilMatrix indicates that a nil receiver or argument was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)

// matrixErrorf wraps err with an operation tag ("Codes.Rows", "ToCOO", ...).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// indexErrorf wraps err with an operation tag and the offending coordinates.
func indexErrorf(tag string, row, col int, err error) error {
	return fmt.Errorf("%s(%d,%d): %w", tag, row, col, err)
}
