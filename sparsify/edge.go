// SPDX-License-Identifier: MIT

package sparsify

import (
	"cmp"
	"slices"
)

// Edge is one retained pair in global zero-based indices.
//
// In self mode with the lower-triangle option Row > Col holds; in self mode
// without it Row != Col.
type Edge struct {
	Row   int
	Col   int
	Score int32
}

// Compare orders edges by (Row, Col, Score).
func Compare(a, b Edge) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Col, b.Col); c != 0 {
		return c
	}

	return cmp.Compare(a.Score, b.Score)
}

// Sort orders edges in place by (Row, Col).
func Sort(edges []Edge) {
	slices.SortFunc(edges, Compare)
}
