// SPDX-License-Identifier: MIT

package backend

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tcrdist/matrix"
)

// ParallelName is the registry name of the striped multi-goroutine engine.
const ParallelName = "parallel"

// minStripe keeps stripes large enough that goroutine overhead stays small
// against the per-row work.
const minStripe = 16

// Parallel splits the output block into contiguous row stripes and scores
// them concurrently. Each stripe writes a disjoint range of the block, so no
// locking is involved.
type Parallel struct {
	workers int
}

var _ NumericBackend = (*Parallel)(nil)

// NewParallel returns a striped engine using at most workers goroutines per
// Score call. workers <= 0 means runtime.GOMAXPROCS(0).
func NewParallel(workers int) *Parallel {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Parallel{workers: workers}
}

// Name implements NumericBackend.
func (p *Parallel) Name() string { return ParallelName }

// Workers reports the stripe concurrency limit.
func (p *Parallel) Workers() int { return p.workers }

// Score implements NumericBackend.
//
// Implementation:
//   - Stage 1: validate inputs, allocate D, transpose B once.
//   - Stage 2: cut [0, n1) into at most workers stripes.
//   - Stage 3: score stripes on an errgroup; the first failure cancels the rest.
func (p *Parallel) Score(ctx context.Context, a, b *matrix.Codes, sub *matrix.Substitution) (d *matrix.Scores, err error) {
	defer func() {
		if v := recover(); v != nil {
			d, err = nil, wrap(p.Name(), "score", recovered(v))
		}
	}()
	out, err := prepare(a, b, sub)
	if err != nil {
		return nil, wrap(p.Name(), "score", err)
	}
	k := newKernel(a, b, sub, out)

	n1 := a.Rows()
	stripe := (n1 + p.workers - 1) / p.workers
	if stripe < minStripe {
		stripe = minStripe
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for r0 := 0; r0 < n1; r0 += stripe {
		r0, r1 := r0, min(r0+stripe, n1) // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() (err error) {
			defer func() {
				if v := recover(); v != nil {
					err = recovered(v)
				}
			}()

			return k.scoreRows(gctx, r0, r1)
		})
	}
	if err = g.Wait(); err != nil {
		return nil, wrap(p.Name(), "score", err)
	}

	return out, nil
}

// Extract implements NumericBackend.
func (p *Parallel) Extract(d *matrix.Scores, keep *matrix.Bitmap) (*matrix.COO, error) {
	coo, err := extract(d, keep)

	return coo, wrap(p.Name(), "extract", err)
}
