// SPDX-License-Identifier: MIT

package schedule

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tcrdist/backend"
	"github.com/katalvlaran/tcrdist/checkpoint"
	"github.com/katalvlaran/tcrdist/encode"
	"github.com/katalvlaran/tcrdist/matrix"
	"github.com/katalvlaran/tcrdist/sparsify"
)

// Stats summarises a run.
type Stats struct {
	Planned  int // blocks in the plan
	Skipped  int // 2-D blocks dropped by the triangle rule
	Computed int // blocks scored by the backend
	Restored int // blocks served from the checkpoint store
	Edges    int
	Elapsed  time.Duration
}

// Result is the global edge list of a run.
//
// Edges are in plan order: block by block, row-major inside a block.
// Secondary is nil for a self comparison.
type Result struct {
	Edges     []sparsify.Edge
	Primary   *encode.Collection
	Secondary *encode.Collection
	Stats     Stats
}

// Self reports whether the run compared the primary collection to itself.
func (r *Result) Self() bool { return r.Secondary == nil }

// runner carries the shared, read-only state of one run plus the result slots.
type runner struct {
	a, b  *matrix.Codes
	sub   *matrix.Substitution
	be    backend.NumericBackend
	cfg   Config
	self  bool
	log   *slog.Logger
	run   checkpoint.RunID
	slots [][]sparsify.Edge

	mu    sync.Mutex
	stats Stats
	total int
	done  int
}

// Run scores primary against secondary (or against itself when secondary is
// nil) and returns every pair with score <= cfg.Cutoff.
//
// Implementation:
//   - Stage 1: validate cfg and the inputs before any scoring.
//   - Stage 2: plan the blocks; fingerprint the run when checkpointing.
//   - Stage 3: a feeder sends blocks to cfg.Workers workers on an errgroup;
//     each worker restores or scores, sparsifies and stores its block into
//     the block's own slot.
//   - Stage 4: concatenate the slots in plan order.
//
// The first failing block cancels the rest and Run returns a *StageError
// with no partial result.
func Run(
	ctx context.Context,
	primary, secondary *encode.Collection,
	sub *matrix.Substitution,
	be backend.NumericBackend,
	cfg Config,
) (*Result, error) {
	start := time.Now()
	if err := cfg.Validate(); err != nil {
		return nil, stageErr(StageSchedule, -1, err)
	}
	if be == nil {
		return nil, stageErr(StageSchedule, -1, fmt.Errorf("%w: nil backend", ErrConfig))
	}
	if primary == nil {
		return nil, stageErr(StageSchedule, -1, fmt.Errorf("%w: nil primary collection", ErrConfig))
	}
	self := secondary == nil
	a, b := primary.Codes, primary.Codes
	if !self {
		b = secondary.Codes
	}
	if err := matrix.ValidateKernelInputs(a, b, sub); err != nil {
		return nil, stageErr(StageSchedule, -1, err)
	}

	r := &runner{a: a, b: b, sub: sub, be: be, cfg: cfg, self: self, log: cfg.Logger}
	if r.log == nil {
		r.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	blocks, skipped := plan(a.Rows(), b.Rows(), cfg, self)
	r.slots = make([][]sparsify.Edge, len(blocks))
	r.total = len(blocks)
	r.stats.Planned = len(blocks)
	r.stats.Skipped = skipped

	if cfg.Checkpoint != nil {
		in := checkpoint.Inputs{
			Primary:      a,
			Substitution: sub,
			Cutoff:       cfg.Cutoff,
			RowChunk:     cfg.RowChunk,
			ColChunk:     cfg.colChunk(),
			Strategy:     int(cfg.Strategy),
			OnlyLowerTri: cfg.OnlyLowerTri,
		}
		if !self {
			in.Secondary = b
		}
		id, err := checkpoint.Fingerprint(in)
		if err != nil {
			return nil, stageErr(StageCheckpoint, -1, err)
		}
		r.run = id
	}

	r.log.Debug("run planned",
		"rows", a.Rows(), "cols", b.Rows(), "blocks", len(blocks), "skipped", skipped,
		"strategy", cfg.Strategy, "backend", be.Name(), "workers", cfg.workers())

	if err := r.execute(ctx, blocks); err != nil {
		return nil, err
	}

	n := 0
	for _, s := range r.slots {
		n += len(s)
	}
	edges := make([]sparsify.Edge, 0, n)
	for _, s := range r.slots {
		edges = append(edges, s...)
	}
	r.stats.Edges = len(edges)
	r.stats.Elapsed = time.Since(start)
	r.log.Info("run finished",
		"blocks", r.stats.Planned, "computed", r.stats.Computed, "restored", r.stats.Restored,
		"edges", r.stats.Edges, "elapsed", r.stats.Elapsed)

	return &Result{Edges: edges, Primary: primary, Secondary: secondary, Stats: r.stats}, nil
}

// execute runs the feeder and the workers. Results land in r.slots.
func (r *runner) execute(ctx context.Context, blocks []Block) error {
	workers := r.cfg.workers()
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan Block, workers)

	g.Go(func() error {
		defer close(jobs)
		for _, b := range blocks {
			select {
			case <-gctx.Done():
				return nil
			case jobs <- b:
			}
		}

		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for b := range jobs {
				if err := gctx.Err(); err != nil {
					return nil
				}
				if err := r.block(gctx, b); err != nil {
					return err
				}
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// a cancellation that stopped the feeder without failing a block
	if err := ctx.Err(); err != nil {
		return stageErr(StageSchedule, -1, err)
	}

	return nil
}

// block restores or computes one block and stores its edges in its slot.
func (r *runner) block(ctx context.Context, b Block) error {
	if r.cfg.Checkpoint != nil {
		edges, ok, err := r.cfg.Checkpoint.Load(r.run, b.Index)
		if err != nil {
			return stageErr(StageCheckpoint, b.Index, err)
		}
		if ok {
			r.slots[b.Index] = edges
			r.finish(b, len(edges), true)

			return nil
		}
	}

	a, err := r.a.Slice(b.Row0, b.Row1)
	if err != nil {
		return stageErr(StageSchedule, b.Index, err)
	}
	c, err := r.b.Slice(b.Col0, b.Col1)
	if err != nil {
		return stageErr(StageSchedule, b.Index, err)
	}
	d, err := r.be.Score(ctx, a, c, r.sub)
	if err != nil {
		return stageErr(StageKernel, b.Index, err)
	}
	edges, err := sparsify.Block(d, sparsify.Params{
		Cutoff:        r.cfg.Cutoff,
		RowOffset:     b.Row0,
		ColOffset:     b.Col0,
		CompareToSelf: r.self,
		OnlyLowerTri:  r.cfg.OnlyLowerTri,
		Policy:        r.cfg.Policy,
	}, r.be)
	if err != nil {
		return stageErr(StageSparsify, b.Index, err)
	}
	if r.cfg.Checkpoint != nil {
		if err := r.cfg.Checkpoint.Save(r.run, b.Index, edges); err != nil {
			return stageErr(StageCheckpoint, b.Index, err)
		}
	}
	r.slots[b.Index] = edges
	r.finish(b, len(edges), false)

	return nil
}

// finish updates the counters and reports the block. Calls are serialised so
// OnBlock needs no locking of its own.
func (r *runner) finish(b Block, edges int, restored bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
	if restored {
		r.stats.Restored++
	} else {
		r.stats.Computed++
	}
	r.log.Debug("block done",
		"block", b.Index, "rows", b.Rows(), "cols", b.Cols(), "edges", edges, "restored", restored,
		"done", r.done, "total", r.total)
	if r.cfg.OnBlock != nil {
		r.cfg.OnBlock(BlockEvent{Block: b, Edges: edges, Restored: restored, Done: r.done, Total: r.total})
	}
}

// RunRecords encodes recs1 (and recs2, unless nil) with table and opts, then
// runs the schedule. Encoding failures are reported as a StageEncode error.
func RunRecords(
	ctx context.Context,
	table *encode.TokenTable,
	recs1, recs2 []encode.Record,
	sub *matrix.Substitution,
	be backend.NumericBackend,
	cfg Config,
	opts encode.Options,
) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, stageErr(StageSchedule, -1, err)
	}
	enc, err := encode.NewEncoder(table, opts)
	if err != nil {
		return nil, stageErr(StageEncode, -1, err)
	}
	primary, err := enc.Encode(recs1)
	if err != nil {
		return nil, stageErr(StageEncode, -1, err)
	}
	var secondary *encode.Collection
	if recs2 != nil {
		if secondary, err = enc.Encode(recs2); err != nil {
			return nil, stageErr(StageEncode, -1, err)
		}
	}

	return Run(ctx, primary, secondary, sub, be, cfg)
}
