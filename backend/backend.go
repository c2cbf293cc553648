// SPDX-License-Identifier: MIT

package backend

import (
	"context"

	"github.com/katalvlaran/tcrdist/matrix"
)

// NumericBackend scores code blocks and extracts sparse views of the result.
//
// Implementations must be safe for concurrent use: the scheduler calls Score
// from several workers with disjoint inputs.
type NumericBackend interface {
	// Name identifies the engine in logs and errors.
	Name() string

	// Score returns the dense block D[i,j] = Σ_k S[a[i,k], b[j,k]].
	// a and b must share their width and every code must index s.
	Score(ctx context.Context, a, b *matrix.Codes, s *matrix.Substitution) (*matrix.Scores, error)

	// Extract returns the non-zero entries of d, or exactly the entries
	// flagged in keep when keep is non-nil.
	Extract(d *matrix.Scores, keep *matrix.Bitmap) (*matrix.COO, error)
}

// kernel is the shared inner loop of all CPU engines. It holds the inputs of
// one Score call with B already transposed.
type kernel struct {
	a   []uint8
	bt  []uint8 // w×n2, bt[k*n2+j] = b[j,k]
	sub []int32
	dim int
	w   int
	n2  int
	out []int32
}

func newKernel(a, b *matrix.Codes, s *matrix.Substitution, out *matrix.Scores) *kernel {
	n2, w := b.Shape()
	bt := make([]uint8, w*n2)
	src := b.Bytes()
	for j := 0; j < n2; j++ {
		row := src[j*w : (j+1)*w]
		for k, v := range row {
			bt[k*n2+j] = v
		}
	}

	return &kernel{
		a:   a.Bytes(),
		bt:  bt,
		sub: s.Raw(),
		dim: s.Dim(),
		w:   w,
		n2:  n2,
		out: out.Raw(),
	}
}

// scoreRows scores the half-open row range [r0, r1), checking ctx once per row.
func (k *kernel) scoreRows(ctx context.Context, r0, r1 int) error {
	for i := r0; i < r1; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		dst := k.out[i*k.n2 : (i+1)*k.n2]
		arow := k.a[i*k.w : (i+1)*k.w]
		for p, code := range arow {
			srow := k.sub[int(code)*k.dim : (int(code)+1)*k.dim]
			col := k.bt[p*k.n2 : (p+1)*k.n2]
			for j, c := range col {
				dst[j] += srow[c]
			}
		}
	}

	return nil
}

// prepare validates the inputs and allocates the output block.
func prepare(a, b *matrix.Codes, s *matrix.Substitution) (*matrix.Scores, error) {
	if err := matrix.ValidateKernelInputs(a, b, s); err != nil {
		return nil, err
	}

	return matrix.NewScores(a.Rows(), b.Rows())
}

// extract is the Extract implementation shared by the CPU engines.
func extract(d *matrix.Scores, keep *matrix.Bitmap) (*matrix.COO, error) {
	if keep == nil {
		return matrix.ToCOO(d)
	}

	return matrix.ToCOOMasked(d, keep)
}
