// SPDX-License-Identifier: MIT

package sparsify

import (
	"fmt"

	"github.com/katalvlaran/tcrdist/matrix"
)

// zeroSentinel stands in for a genuine zero score while the block passes
// through zero-dropping extraction.
const zeroSentinel int32 = -1

// Extractor is the sparse-extraction half of a numeric backend.
type Extractor interface {
	Extract(d *matrix.Scores, keep *matrix.Bitmap) (*matrix.COO, error)
}

// Params describes one block and the run it belongs to.
//
// Fields:
//   - Cutoff: keep pairs with score <= Cutoff (must be >= 0).
//   - RowOffset, ColOffset: global index of the block's first row and column.
//   - CompareToSelf: rows and columns index the same collection.
//   - OnlyLowerTri: in self mode keep row > col only.
//   - Policy: zero-preservation policy.
type Params struct {
	Cutoff        int32
	RowOffset     int
	ColOffset     int
	CompareToSelf bool
	OnlyLowerTri  bool
	Policy        Policy
}

// Validate checks the cutoff, the offsets and the policy.
func (p Params) Validate() error {
	if p.Cutoff < 0 {
		return fmt.Errorf("%w (got %d)", ErrCutoff, p.Cutoff)
	}
	if p.RowOffset < 0 || p.ColOffset < 0 {
		return fmt.Errorf("%w (row %d, col %d)", ErrOffset, p.RowOffset, p.ColOffset)
	}
	if _, ok := policyNames[p.Policy]; !ok {
		return fmt.Errorf("%w: %d", ErrPolicy, int(p.Policy))
	}

	return nil
}

// Block converts a dense score block into global edges.
//
// Implementation:
//   - Stage 1: mark the entries to keep (Sentinel rewrites d, Bitmap fills a mask).
//   - Stage 2: extract through x.
//   - Stage 3: restore sentinel zeros, apply the self filter, shift by the offsets.
//
// Edges come out in row-major block order. With the Sentinel policy d is
// modified in place and must not be reused.
//
// Complexity:
//   - Time O(r*c), Space O(nnz) (+ r*c bits for Bitmap).
func Block(d *matrix.Scores, p Params, x Extractor) ([]Edge, error) {
	if d == nil {
		return nil, fmt.Errorf("sparsify: %w", matrix.ErrNilMatrix)
	}
	if x == nil {
		return nil, fmt.Errorf("sparsify: nil extractor")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var (
		coo *matrix.COO
		err error
	)
	switch p.Policy {
	case Bitmap:
		var keep *matrix.Bitmap
		if keep, err = presence(d, p.Cutoff); err != nil {
			return nil, err
		}
		coo, err = x.Extract(d, keep)
	default:
		markZeros(d, p)
		coo, err = x.Extract(d, nil)
	}
	if err != nil {
		return nil, err
	}

	edges := make([]Edge, 0, coo.Len())
	for k, v := range coo.Data {
		gr, gc := coo.Row[k]+p.RowOffset, coo.Col[k]+p.ColOffset
		if !p.keepPair(gr, gc) {
			continue
		}
		if v == zeroSentinel {
			v = 0
		}
		edges = append(edges, Edge{Row: gr, Col: gc, Score: v})
	}

	return edges, nil
}

// keepPair applies the self-comparison filter on global indices.
func (p Params) keepPair(gr, gc int) bool {
	if !p.CompareToSelf {
		return true
	}
	if p.OnlyLowerTri {
		return gr > gc
	}

	return gr != gc
}

// markZeros runs the sentinel rewrite: genuine zeros → -1, above cutoff → 0.
// A record paired with itself keeps its zero so that extraction drops it.
func markZeros(d *matrix.Scores, p Params) {
	d.Apply(func(i, j int, v int32) int32 {
		switch {
		case v == 0:
			if p.CompareToSelf && i+p.RowOffset == j+p.ColOffset {
				return 0
			}
			return zeroSentinel
		case v > p.Cutoff:
			return 0
		default:
			return v
		}
	})
}

// presence marks every entry <= cutoff.
func presence(d *matrix.Scores, cutoff int32) (*matrix.Bitmap, error) {
	r, c := d.Shape()
	keep, err := matrix.NewBitmap(r, c)
	if err != nil {
		return nil, err
	}
	raw := d.Raw()
	for i := 0; i < r; i++ {
		row := raw[i*c : (i+1)*c]
		for j, v := range row {
			if v <= cutoff {
				// in range by construction
				_ = keep.Mark(i, j)
			}
		}
	}

	return keep, nil
}
