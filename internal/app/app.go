// SPDX-License-Identifier: MIT

// Package app wires the tcrdist command: flag parsing, input loading, engine
// selection, progress reporting and output.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/katalvlaran/tcrdist/backend"
	"github.com/katalvlaran/tcrdist/checkpoint"
	"github.com/katalvlaran/tcrdist/encode"
	"github.com/katalvlaran/tcrdist/matrix"
	"github.com/katalvlaran/tcrdist/neighbors"
	"github.com/katalvlaran/tcrdist/network"
	"github.com/katalvlaran/tcrdist/schedule"
	"github.com/katalvlaran/tcrdist/sparsify"
	"github.com/katalvlaran/tcrdist/tsvio"
	"github.com/katalvlaran/tcrdist/validate"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitFail   = 1 // input, encoding, engine or verification failure
	ExitUsage  = 2
	ExitOutput = 3 // writing the result failed
)

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// RunContext parses argv, runs the engine and writes the result. It returns
// the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := NewFlagSet("tcrdist")
	fs.SetOutput(io.Discard)

	opts, err := ParseArgs(fs, argv)
	if err != nil {
		fs.SetOutput(stderr)
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return ExitOK
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.Usage()
		return ExitUsage
	}
	if opts.Version {
		_, _ = fmt.Fprintf(stdout, "tcrdist version %s\n", Version)
		return ExitOK
	}

	log := newLogger(stderr, opts)
	code, err := run(ctx, opts, stdout, stderr, log)
	if err != nil {
		if tsvio.IsBrokenPipe(err) {
			return ExitOK
		}
		log.Error("tcrdist failed", "err", err)
	}

	return code
}

func newLogger(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case opts.Debug:
		level = slog.LevelDebug
	case opts.Quiet:
		level = slog.LevelWarn
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// inputs are the loaded and encoded tables of a run.
type inputs struct {
	table     *encode.TokenTable
	sub       *matrix.Substitution
	primary   *encode.Collection
	secondary *encode.Collection
}

func load(opts Options, log *slog.Logger) (*inputs, error) {
	in := &inputs{}
	var err error
	if in.table, err = readFile(opts.Params, tsvio.ReadTokenTable); err != nil {
		return nil, fmt.Errorf("token table %s: %w", opts.Params, err)
	}
	if in.sub, err = readFile(opts.Submat, tsvio.ReadSubstitution); err != nil {
		return nil, fmt.Errorf("substitution matrix %s: %w", opts.Submat, err)
	}
	if need := int(in.table.MaxCode()) + 1; in.sub.Dim() < need {
		return nil, fmt.Errorf("substitution matrix %s: dim %d, token table needs %d: %w",
			opts.Submat, in.sub.Dim(), need, matrix.ErrCodeRange)
	}

	enc, err := encode.NewEncoder(in.table, encode.Options{ChainWidth: opts.ChainWidth})
	if err != nil {
		return nil, err
	}
	if in.primary, err = encodeFile(enc, opts.TCR1, opts.MaxRecords); err != nil {
		return nil, err
	}
	if opts.TCR2 != "" {
		if in.secondary, err = encodeFile(enc, opts.TCR2, opts.MaxRecords); err != nil {
			return nil, err
		}
	}
	log.Info("inputs loaded",
		"tokens", in.table.Len(), "substitution_dim", in.sub.Dim(), "width", enc.Width(),
		"records1", humanize.Comma(int64(in.primary.Len())),
		"records2", humanize.Comma(int64(in.secondary.Len())))

	return in, nil
}

func encodeFile(enc *encode.Encoder, path string, nMax int) (*encode.Collection, error) {
	recs, err := readFile(path, tsvio.ReadRecords)
	if err != nil {
		return nil, fmt.Errorf("records %s: %w", path, err)
	}
	col, err := enc.EncodeN(recs, nMax)
	if err != nil {
		return nil, fmt.Errorf("records %s: %w", path, &schedule.StageError{Stage: schedule.StageEncode, Block: -1, Err: err})
	}

	return col, nil
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	fh, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer fh.Close()

	return read(fh)
}

func run(ctx context.Context, opts Options, stdout, stderr io.Writer, log *slog.Logger) (int, error) {
	in, err := load(opts, log)
	if err != nil {
		return ExitFail, err
	}

	be, err := backend.Probe(backend.ProbeOptions{Name: opts.Backend, Workers: opts.Threads})
	if err != nil {
		return ExitFail, err
	}
	log.Debug("backend selected", "backend", be.Name(), "available", backend.Names())

	if opts.TopK > 0 {
		return nearest(ctx, opts, in, be, stdout, log)
	}

	cfg, closeStore, err := config(opts, be, log)
	if err != nil {
		return ExitFail, err
	}
	defer closeStore()

	var bar *progressBar
	if opts.Progress {
		n2 := in.primary.Len()
		if in.secondary != nil {
			n2 = in.secondary.Len()
		}
		bar = newProgressBar(stderr, len(schedule.Plan(in.primary.Len(), n2, cfg, in.secondary == nil)))
		cfg.OnBlock = bar.onBlock
	}
	var res *schedule.Result
	if opts.Verify {
		res, err = validate.Check(ctx, in.primary, in.secondary, in.sub, be, cfg)
	} else {
		res, err = schedule.Run(ctx, in.primary, in.secondary, in.sub, be, cfg)
	}
	bar.finish(res != nil)
	if err != nil {
		return ExitFail, err
	}
	if opts.Verify {
		log.Info("verified against direct evaluation", "edges", humanize.Comma(int64(len(res.Edges))))
	}

	if err := writeFile(opts.Out, stdout, func(w io.Writer) error {
		return tsvio.WriteEdges(w, res.Edges, !opts.NoHeader)
	}); err != nil {
		return ExitOutput, err
	}

	if opts.Components != "" {
		comps, err := network.Connected(ctx, in.primary.Len(), res.Edges)
		if err != nil {
			return ExitFail, err
		}
		if err := writeFile(opts.Components, stdout, func(w io.Writer) error {
			return tsvio.WriteComponents(w, comps, !opts.NoHeader)
		}); err != nil {
			return ExitOutput, err
		}
		log.Info("components written", "components", humanize.Comma(int64(comps.Count())))
	}

	return ExitOK, nil
}

// config maps the flags onto a schedule.Config. The returned func closes the
// checkpoint store, if one was opened.
func config(opts Options, be backend.NumericBackend, log *slog.Logger) (schedule.Config, func(), error) {
	cfg := schedule.DefaultConfig()
	cfg.Cutoff = int32(opts.Cutoff)
	cfg.RowChunk = opts.Chunk
	cfg.ColChunk = opts.ChunkCol
	cfg.OnlyLowerTri = opts.LowerTri
	cfg.Strategy, _ = schedule.ParseStrategy(opts.Strategy)
	cfg.Policy, _ = sparsify.ParsePolicy(opts.Policy)
	cfg.Logger = log
	// the parallel engine already stripes each block over all threads
	cfg.Workers = 1
	if be.Name() == backend.SerialName && opts.Threads != 1 {
		cfg.Workers = opts.Threads
		if cfg.Workers == 0 {
			cfg.Workers = runtime.GOMAXPROCS(0)
		}
	}

	closeStore := func() {}
	if opts.Checkpoint != "" {
		store, err := checkpoint.Open(opts.Checkpoint)
		if err != nil {
			return cfg, closeStore, err
		}
		cfg.Checkpoint = store
		closeStore = func() {
			if err := store.Close(); err != nil {
				log.Warn("closing checkpoint store", "dir", opts.Checkpoint, "err", err)
			}
		}
	}

	return cfg, closeStore, nil
}

func nearest(ctx context.Context, opts Options, in *inputs, be backend.NumericBackend, stdout io.Writer, log *slog.Logger) (int, error) {
	start := time.Now()
	nopts := neighbors.DefaultOptions()
	nopts.K = opts.TopK
	nopts.RowChunk = opts.Chunk
	rows, err := neighbors.Nearest(ctx, in.primary, in.secondary, in.sub, be, nopts)
	if err != nil {
		return ExitFail, err
	}
	log.Info("nearest neighbours computed", "queries", humanize.Comma(int64(len(rows))), "k", opts.TopK, "elapsed", time.Since(start))
	if err := writeFile(opts.Out, stdout, func(w io.Writer) error {
		return tsvio.WriteNeighbors(w, rows, !opts.NoHeader)
	}); err != nil {
		return ExitOutput, err
	}

	return ExitOK, nil
}

// writeFile runs write against stdout for "-" and against a created file
// otherwise.
func writeFile(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" || path == "" {
		return write(stdout)
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(fh); err != nil {
		_ = fh.Close()
		return err
	}

	return fh.Close()
}

// progressBar drives an mpb bar from scheduler block events.
type progressBar struct {
	p    *mpb.Progress
	bar  *mpb.Bar
	last time.Time
}

func newProgressBar(w io.Writer, total int) *progressBar {
	p := mpb.New(mpb.WithWidth(40), mpb.WithOutput(w))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("blocks: ", decor.WC{W: len("blocks: "), C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
			decor.EwmaETA(decor.ET_STYLE_GO, 64),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)

	return &progressBar{p: p, bar: bar, last: time.Now()}
}

// onBlock is called serially by the scheduler.
func (b *progressBar) onBlock(schedule.BlockEvent) {
	now := time.Now()
	b.bar.EwmaIncrBy(1, now.Sub(b.last))
	b.last = now
}

// finish completes or aborts the bar and waits for it to render.
func (b *progressBar) finish(ok bool) {
	if b == nil {
		return
	}
	if !ok || !b.bar.Completed() {
		b.bar.Abort(false)
	}
	b.p.Wait()
}
