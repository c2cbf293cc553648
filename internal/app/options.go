// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"flag"
	"fmt"
	"math"

	"github.com/katalvlaran/tcrdist/backend"
	"github.com/katalvlaran/tcrdist/encode"
	"github.com/katalvlaran/tcrdist/schedule"
	"github.com/katalvlaran/tcrdist/sparsify"
)

// Version is the program version reported by -v.
var Version = "0.3.0"

// Options holds all CLI flags.
type Options struct {
	// Inputs
	TCR1       string
	TCR2       string
	Params     string
	Submat     string
	MaxRecords int
	ChainWidth int

	// Engine
	Cutoff     int
	Chunk      int
	ChunkCol   int
	LowerTri   bool
	Strategy   string
	Policy     string
	Threads    int
	Backend    string
	Checkpoint string

	// Output
	Out        string
	TopK       int
	Components string
	NoHeader   bool
	Verify     bool

	// Logging
	Progress bool
	Quiet    bool
	Debug    bool

	Version bool
}

// NewFlagSet returns a ContinueOnError FlagSet with the program usage.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: sparse TCRdist edges between paired-chain receptor tables

Version: %s

Usage of %s:
`, name, Version, name)
		fs.PrintDefaults()
	}

	return fs
}

// ParseArgs registers and parses all flags.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.TCR1, "tcr1", "", "record table (TSV with va, vb, cdr3a, cdr3b) [*]")
	fs.StringVar(&opt.TCR2, "tcr2", "", "second record table; omit to compare -tcr1 with itself")
	fs.StringVar(&opt.Params, "params", "", "token table: feature<TAB>code lines [*]")
	fs.StringVar(&opt.Submat, "submat", "", "substitution matrix: square integer TSV [*]")
	fs.IntVar(&opt.MaxRecords, "max-records", 0, "use only the first N records of each table (0 = all) [0]")
	fs.IntVar(&opt.ChainWidth, "width", encode.DefaultChainWidth, "padded CDR3 width")

	fs.IntVar(&opt.Cutoff, "cutoff", schedule.DefaultCutoff, "keep pairs with TCRdist <= cutoff")
	fs.IntVar(&opt.Chunk, "chunk", schedule.DefaultRowChunk, "rows per block")
	fs.IntVar(&opt.ChunkCol, "chunk-col", 0, "columns per block (0 = same as -chunk) [0]")
	fs.BoolVar(&opt.LowerTri, "lower-tri", true, "self comparison: emit each pair once (row > col)")
	fs.StringVar(&opt.Strategy, "strategy", schedule.Strategy2D.String(), "block strategy: 2d | rows")
	fs.StringVar(&opt.Policy, "policy", sparsify.Sentinel.String(), "zero preservation: sentinel | bitmap")
	fs.IntVar(&opt.Threads, "threads", 0, "worker goroutines (0 = all CPUs) [0]")
	fs.StringVar(&opt.Backend, "backend", backend.AutoName, "numeric backend: auto | serial | parallel")
	fs.StringVar(&opt.Checkpoint, "checkpoint", "", "directory for resumable block checkpoints")

	fs.StringVar(&opt.Out, "out", "-", "output file ('-' = stdout)")
	fs.IntVar(&opt.TopK, "topk", 0, "write the K nearest records per query instead of edges (0 = off) [0]")
	fs.StringVar(&opt.Components, "components", "", "also write connected components of the edge graph to this file")
	fs.BoolVar(&opt.NoHeader, "no-header", false, "suppress header lines [false]")
	fs.BoolVar(&opt.Verify, "verify", false, "check the edges against a direct all-pairs evaluation [false]")

	fs.BoolVar(&opt.Progress, "progress", false, "show a progress bar on stderr [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "log warnings and errors only [false]")
	fs.BoolVar(&opt.Debug, "debug", false, "log every block [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	switch {
	case opt.TCR1 == "":
		return opt, errors.New("-tcr1 is required")
	case opt.Params == "":
		return opt, errors.New("-params is required")
	case opt.Submat == "":
		return opt, errors.New("-submat is required")
	case opt.Cutoff < 0:
		return opt, errors.New("-cutoff must be >= 0")
	case opt.Cutoff > math.MaxInt32:
		return opt, fmt.Errorf("-cutoff must be <= %d", math.MaxInt32)
	case opt.Chunk <= 0:
		return opt, errors.New("-chunk must be > 0")
	case opt.ChunkCol < 0:
		return opt, errors.New("-chunk-col must be >= 0")
	case opt.Threads < 0:
		return opt, errors.New("-threads must be >= 0")
	case opt.TopK < 0:
		return opt, errors.New("-topk must be >= 0")
	case opt.MaxRecords < 0:
		return opt, errors.New("-max-records must be >= 0")
	case opt.Quiet && opt.Debug:
		return opt, errors.New("-quiet conflicts with -debug")
	case opt.Components != "" && opt.TCR2 != "":
		return opt, errors.New("-components needs a self comparison (no -tcr2)")
	case opt.TopK > 0 && (opt.Components != "" || opt.Verify):
		return opt, errors.New("-topk conflicts with -components and -verify")
	}
	if _, err := schedule.ParseStrategy(opt.Strategy); err != nil {
		return opt, fmt.Errorf("invalid -strategy %q", opt.Strategy)
	}
	if _, err := sparsify.ParsePolicy(opt.Policy); err != nil {
		return opt, fmt.Errorf("invalid -policy %q", opt.Policy)
	}
	if err := (encode.Options{ChainWidth: opt.ChainWidth}).Validate(); err != nil {
		return opt, fmt.Errorf("invalid -width: %w", err)
	}

	return opt, nil
}
