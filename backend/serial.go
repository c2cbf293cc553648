// SPDX-License-Identifier: MIT

package backend

import (
	"context"

	"github.com/katalvlaran/tcrdist/matrix"
)

// SerialName is the registry name of the single-goroutine engine.
const SerialName = "serial"

// Serial scores a block on the calling goroutine. It is the reference engine
// every other engine must agree with.
type Serial struct{}

var _ NumericBackend = Serial{}

// NewSerial returns the serial engine.
func NewSerial() Serial { return Serial{} }

// Name implements NumericBackend.
func (Serial) Name() string { return SerialName }

// Score implements NumericBackend.
//
// Complexity:
//   - Time O(n1*n2*w), Space O(n1*n2 + n2*w).
func (s Serial) Score(ctx context.Context, a, b *matrix.Codes, sub *matrix.Substitution) (d *matrix.Scores, err error) {
	defer func() {
		if v := recover(); v != nil {
			d, err = nil, wrap(s.Name(), "score", recovered(v))
		}
	}()
	out, err := prepare(a, b, sub)
	if err != nil {
		return nil, wrap(s.Name(), "score", err)
	}
	if err = newKernel(a, b, sub, out).scoreRows(ctx, 0, a.Rows()); err != nil {
		return nil, wrap(s.Name(), "score", err)
	}

	return out, nil
}

// Extract implements NumericBackend.
func (s Serial) Extract(d *matrix.Scores, keep *matrix.Bitmap) (*matrix.COO, error) {
	coo, err := extract(d, keep)

	return coo, wrap(s.Name(), "extract", err)
}
