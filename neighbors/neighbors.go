// SPDX-License-Identifier: MIT

// Package neighbors finds, for every record, its k closest records.
//
// Rows are scored in chunks with the same backend as the edge engine, so the
// memory bound is one RowChunk × n2 block. Within a row, candidates are fully
// ordered by ascending score and then ascending column index, which makes the
// result deterministic even when many candidates tie (identical records score
// 0 against each other).
package neighbors

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/tcrdist/backend"
	"github.com/katalvlaran/tcrdist/encode"
	"github.com/katalvlaran/tcrdist/matrix"
)

var (
	// ErrK is returned for k <= 0.
	ErrK = errors.New("neighbors: k must be > 0")
	// ErrChunk is returned for a non-positive row chunk.
	ErrChunk = errors.New("neighbors: row chunk must be > 0")
)

// Neighbor is one candidate of a query row.
type Neighbor struct {
	Col   int
	Score int32
}

// Options configures Nearest.
//
// Fields:
//   - K: neighbours per row.
//   - RowChunk: query rows scored per block.
//   - ExcludeSelf: in self mode, drop the record itself (row == col). Other
//     zero-score matches stay.
type Options struct {
	K           int
	RowChunk    int
	ExcludeSelf bool
}

// DefaultOptions returns K=10, RowChunk=1000, ExcludeSelf=true.
func DefaultOptions() Options {
	return Options{K: 10, RowChunk: 1000, ExcludeSelf: true}
}

// Nearest returns, for each primary row i, up to K neighbours from secondary
// (or from primary itself when secondary is nil) ordered by (score, col).
// A row gets fewer than K neighbours only when fewer candidates exist.
//
// Complexity:
//   - Time O(n1*n2*w + n1*n2*log n2), Space O(RowChunk*n2).
func Nearest(
	ctx context.Context,
	primary, secondary *encode.Collection,
	sub *matrix.Substitution,
	be backend.NumericBackend,
	opts Options,
) ([][]Neighbor, error) {
	if opts.K <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrK, opts.K)
	}
	if opts.RowChunk <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrChunk, opts.RowChunk)
	}
	if be == nil || primary == nil {
		return nil, fmt.Errorf("neighbors: nil backend or primary collection")
	}
	self := secondary == nil
	a, b := primary.Codes, primary.Codes
	if !self {
		b = secondary.Codes
	}
	if err := matrix.ValidateKernelInputs(a, b, sub); err != nil {
		return nil, err
	}

	n1, n2 := a.Rows(), b.Rows()
	out := make([][]Neighbor, n1)
	cand := make([]Neighbor, 0, n2)
	for r0 := 0; r0 < n1; r0 += opts.RowChunk {
		r1 := min(r0+opts.RowChunk, n1)
		chunk, err := a.Slice(r0, r1)
		if err != nil {
			return nil, err
		}
		d, err := be.Score(ctx, chunk, b, sub)
		if err != nil {
			return nil, err
		}
		raw := d.Raw()
		for i := 0; i < r1-r0; i++ {
			gi := r0 + i
			cand = cand[:0]
			for j, v := range raw[i*n2 : (i+1)*n2] {
				if self && opts.ExcludeSelf && j == gi {
					continue
				}
				cand = append(cand, Neighbor{Col: j, Score: v})
			}
			slices.SortFunc(cand, compare)
			out[gi] = slices.Clone(cand[:min(opts.K, len(cand))])
		}
	}

	return out, nil
}

func compare(x, y Neighbor) int {
	if c := cmp.Compare(x.Score, y.Score); c != 0 {
		return c
	}

	return cmp.Compare(x.Col, y.Col)
}
