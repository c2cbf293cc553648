// SPDX-License-Identifier: MIT

package encode

import "fmt"

// DefaultChainWidth is the padded CDR3 width used by TCRdist.
const DefaultChainWidth = 29

// minChainWidth keeps at least one residue after the anchor trim.
const minChainWidth = trimHead + trimTail + 1

// Options configures an Encoder.
//
// Fields:
//   - ChainWidth: target width W every chain is padded or truncated to.
//     The encoded width is 2 + 2*(W-5).
//
// Example:
//
//	opts := encode.DefaultOptions()
//	opts.ChainWidth = 25
//	enc, err := encode.NewEncoder(table, opts)
type Options struct {
	ChainWidth int
}

// DefaultOptions returns Options with ChainWidth = DefaultChainWidth.
func DefaultOptions() Options {
	return Options{ChainWidth: DefaultChainWidth}
}

// Validate reports ErrChainWidth for widths below 6.
func (o Options) Validate() error {
	if o.ChainWidth < minChainWidth {
		return fmt.Errorf("%w (got %d)", ErrChainWidth, o.ChainWidth)
	}

	return nil
}

// EncodedWidth returns the encoded row width for chain width w:
// gene A + trimmed chain A + gene B + trimmed chain B.
func EncodedWidth(w int) int {
	return 2 + 2*(w-trimHead-trimTail)
}
