// SPDX-License-Identifier: MIT

package schedule

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/tcrdist/checkpoint"
	"github.com/katalvlaran/tcrdist/sparsify"
)

// Strategy selects how the pair space is cut into blocks.
type Strategy int

const (
	// Strategy2D tiles the pair space with (row chunk × col chunk) blocks and
	// skips blocks above the diagonal in lower-triangle self mode.
	Strategy2D Strategy = iota
	// StrategyRows scores one row chunk against the whole secondary collection.
	StrategyRows
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case Strategy2D:
		return "2d"
	case StrategyRows:
		return "rows"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "2d" or "rows" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "2d":
		return Strategy2D, nil
	case "rows":
		return StrategyRows, nil
	default:
		return 0, fmt.Errorf("%w: unknown strategy %q", ErrConfig, s)
	}
}

// Checkpointer persists finished blocks. *checkpoint.Store implements it.
type Checkpointer interface {
	Load(run checkpoint.RunID, block int) ([]sparsify.Edge, bool, error)
	Save(run checkpoint.RunID, block int, edges []sparsify.Edge) error
}

// BlockEvent reports one finished block to Config.OnBlock.
type BlockEvent struct {
	Block    Block
	Edges    int
	Restored bool // served from the checkpoint store
	Done     int  // blocks finished so far, this one included
	Total    int  // blocks in the plan
}

// Config controls a run.
//
// Fields:
//   - Cutoff: keep pairs with score <= Cutoff.
//   - RowChunk: rows per block (> 0); the memory knob.
//   - ColChunk: columns per block for Strategy2D; 0 means RowChunk.
//   - OnlyLowerTri: in self mode keep row > col only.
//   - Strategy: Strategy2D or StrategyRows.
//   - Workers: blocks scored concurrently; 0 means 1.
//   - Policy: zero-preservation policy of the sparsifier.
//   - Checkpoint: optional block store; nil disables resumption.
//   - Logger: receives debug records per block and a run summary; nil discards.
//   - OnBlock: optional progress hook, called serially after each block.
type Config struct {
	Cutoff       int32
	RowChunk     int
	ColChunk     int
	OnlyLowerTri bool
	Strategy     Strategy
	Workers      int
	Policy       sparsify.Policy
	Checkpoint   Checkpointer
	Logger       *slog.Logger
	OnBlock      func(BlockEvent)
}

// Defaults.
const (
	DefaultCutoff   = 90
	DefaultRowChunk = 1000
)

// DefaultConfig returns cutoff 90, 1000-row chunks, square blocks,
// lower-triangle output, Strategy2D, one worker and the sentinel policy.
func DefaultConfig() Config {
	return Config{
		Cutoff:       DefaultCutoff,
		RowChunk:     DefaultRowChunk,
		OnlyLowerTri: true,
		Strategy:     Strategy2D,
		Workers:      1,
		Policy:       sparsify.Sentinel,
	}
}

// Validate reports the first invalid field wrapped in ErrConfig.
func (c Config) Validate() error {
	switch {
	case c.RowChunk <= 0:
		return fmt.Errorf("%w: row chunk must be > 0 (got %d)", ErrConfig, c.RowChunk)
	case c.ColChunk < 0:
		return fmt.Errorf("%w: col chunk must be >= 0 (got %d)", ErrConfig, c.ColChunk)
	case c.Cutoff < 0:
		return fmt.Errorf("%w: cutoff must be >= 0 (got %d)", ErrConfig, c.Cutoff)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must be >= 0 (got %d)", ErrConfig, c.Workers)
	case c.Strategy != Strategy2D && c.Strategy != StrategyRows:
		return fmt.Errorf("%w: unknown strategy %d", ErrConfig, int(c.Strategy))
	}
	if err := (sparsify.Params{Cutoff: c.Cutoff, Policy: c.Policy}).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return nil
}

func (c Config) colChunk() int {
	if c.ColChunk == 0 {
		return c.RowChunk
	}

	return c.ColChunk
}

func (c Config) workers() int {
	if c.Workers == 0 {
		return 1
	}

	return c.Workers
}
