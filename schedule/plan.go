// SPDX-License-Identifier: MIT

package schedule

// Block is one unit of work: primary rows [Row0, Row1) against secondary
// rows [Col0, Col1). Index is the block's position in the plan.
type Block struct {
	Index int
	Row0  int
	Row1  int
	Col0  int
	Col1  int
}

// Rows returns the number of primary rows in the block.
func (b Block) Rows() int { return b.Row1 - b.Row0 }

// Cols returns the number of secondary rows in the block.
func (b Block) Cols() int { return b.Col1 - b.Col0 }

// Plan cuts an n1×n2 pair space into blocks.
//
// Strategy2D visits row chunks in order and, inside each, column chunks in
// order. In self mode with OnlyLowerTri a column chunk starting at or past the
// end of the row chunk holds no pair with row > col and is skipped; with equal
// chunk sizes this is exactly "column chunk after row chunk".
//
// StrategyRows yields one block per row chunk spanning all n2 columns.
//
// The plan is deterministic; Index numbers the returned blocks 0..len-1.
// cfg must be valid. Empty inputs yield an empty plan.
func Plan(n1, n2 int, cfg Config, self bool) []Block {
	blocks, _ := plan(n1, n2, cfg, self)

	return blocks
}

// plan also reports how many 2-D blocks the triangle rule skipped.
func plan(n1, n2 int, cfg Config, self bool) (blocks []Block, skipped int) {
	if n1 <= 0 || n2 <= 0 || cfg.RowChunk <= 0 {
		return nil, 0
	}
	rc := cfg.RowChunk
	if cfg.Strategy == StrategyRows {
		blocks = make([]Block, 0, (n1+rc-1)/rc)
		for r0 := 0; r0 < n1; r0 += rc {
			blocks = append(blocks, Block{Index: len(blocks), Row0: r0, Row1: min(r0+rc, n1), Col0: 0, Col1: n2})
		}

		return blocks, 0
	}

	cc := cfg.colChunk()
	triangle := self && cfg.OnlyLowerTri
	for r0 := 0; r0 < n1; r0 += rc {
		r1 := min(r0+rc, n1)
		for c0 := 0; c0 < n2; c0 += cc {
			if triangle && c0 >= r1 {
				skipped++
				continue
			}
			blocks = append(blocks, Block{Index: len(blocks), Row0: r0, Row1: r1, Col0: c0, Col1: min(c0+cc, n2)})
		}
	}

	return blocks, skipped
}
