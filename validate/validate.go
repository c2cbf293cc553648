// SPDX-License-Identifier: MIT

package validate

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/tcrdist/backend"
	"github.com/katalvlaran/tcrdist/encode"
	"github.com/katalvlaran/tcrdist/matrix"
	"github.com/katalvlaran/tcrdist/schedule"
	"github.com/katalvlaran/tcrdist/sparsify"
)

// ErrMismatch is matched by every *MismatchError.
var ErrMismatch = errors.New("validate: edge lists differ")

// MismatchError describes how two edge lists differ after sorting.
//
// Index is the first sorted position where they disagree; Want and Got are
// the edges at that position (zero when one list is exhausted). Missing and
// Extra count edges present only in want or only in got, matched on
// (row, col); Changed counts common pairs whose score differs.
type MismatchError struct {
	WantLen int
	GotLen  int
	Index   int
	Want    sparsify.Edge
	Got     sparsify.Edge
	Missing int
	Extra   int
	Changed int
}

// Error implements error.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("validate: edge lists differ: want %d, got %d (missing %d, extra %d, changed %d); "+
		"first difference at %d: want %v, got %v",
		e.WantLen, e.GotLen, e.Missing, e.Extra, e.Changed, e.Index, e.Want, e.Got)
}

// Is makes every MismatchError match ErrMismatch.
func (e *MismatchError) Is(target error) bool { return target == ErrMismatch }

// PairScore returns Σ_k S[a[k], b[k]] for two encoded rows of equal width.
func PairScore(a, b []uint8, s *matrix.Substitution) (int32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("validate: rows of width %d and %d: %w", len(a), len(b), matrix.ErrDimensionMismatch)
	}
	if err := matrix.ValidateScoreRange(s, len(a)); err != nil {
		return 0, err
	}
	var sum int32
	for k := range a {
		c, err := s.Cost(a[k], b[k])
		if err != nil {
			return 0, err
		}
		sum += c
	}

	return sum, nil
}

// BruteForce evaluates every pair directly and keeps those with score <=
// cutoff. secondary == nil selects self mode, where row > col is kept with
// onlyLowerTri and row != col otherwise. Edges are returned in row-major
// order.
//
// Complexity:
//   - Time O(n1*n2*w), Space O(edges).
func BruteForce(primary, secondary *matrix.Codes, sub *matrix.Substitution, cutoff int32, onlyLowerTri bool) ([]sparsify.Edge, error) {
	self := secondary == nil
	if self {
		secondary = primary
	}
	if err := matrix.ValidateKernelInputs(primary, secondary, sub); err != nil {
		return nil, err
	}
	var edges []sparsify.Edge
	for i := 0; i < primary.Rows(); i++ {
		a, _ := primary.Row(i)
		for j := 0; j < secondary.Rows(); j++ {
			if self && (i == j || (onlyLowerTri && i < j)) {
				continue
			}
			b, _ := secondary.Row(j)
			s, err := PairScore(a, b, sub)
			if err != nil {
				return nil, err
			}
			if s <= cutoff {
				edges = append(edges, sparsify.Edge{Row: i, Col: j, Score: s})
			}
		}
	}

	return edges, nil
}

// Compare reports nil when want and got hold the same edges in any order,
// and a *MismatchError otherwise. The inputs are not modified.
func Compare(want, got []sparsify.Edge) error {
	w, g := slices.Clone(want), slices.Clone(got)
	sparsify.Sort(w)
	sparsify.Sort(g)
	if slices.Equal(w, g) {
		return nil
	}

	e := &MismatchError{WantLen: len(w), GotLen: len(g), Index: -1}
	for k := 0; k < max(len(w), len(g)); k++ {
		var we, ge sparsify.Edge
		if k < len(w) {
			we = w[k]
		}
		if k < len(g) {
			ge = g[k]
		}
		if k >= len(w) || k >= len(g) || we != ge {
			e.Index, e.Want, e.Got = k, we, ge
			break
		}
	}

	// merge on (row, col)
	i, j := 0, 0
	for i < len(w) && j < len(g) {
		switch c := comparePair(w[i], g[j]); {
		case c < 0:
			e.Missing++
			i++
		case c > 0:
			e.Extra++
			j++
		default:
			if w[i].Score != g[j].Score {
				e.Changed++
			}
			i++
			j++
		}
	}
	e.Missing += len(w) - i
	e.Extra += len(g) - j

	return e
}

func comparePair(a, b sparsify.Edge) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}

	return a.Col - b.Col
}

// Check runs the scheduler with cfg and compares its edges against
// BruteForce. The scheduler's result is returned even on a mismatch so the
// caller can inspect it; it is nil only when the run itself failed.
func Check(
	ctx context.Context,
	primary, secondary *encode.Collection,
	sub *matrix.Substitution,
	be backend.NumericBackend,
	cfg schedule.Config,
) (*schedule.Result, error) {
	res, err := schedule.Run(ctx, primary, secondary, sub, be, cfg)
	if err != nil {
		return nil, err
	}
	var sec *matrix.Codes
	if secondary != nil {
		sec = secondary.Codes
	}
	want, err := BruteForce(primary.Codes, sec, sub, cfg.Cutoff, cfg.OnlyLowerTri)
	if err != nil {
		return res, err
	}

	return res, Compare(want, res.Edges)
}
