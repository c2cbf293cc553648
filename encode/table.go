// SPDX-License-Identifier: MIT

package encode

import (
	"fmt"
	"sort"
)

// Pad is the padding symbol inserted in the middle of short chains.
const Pad byte = '_'

// noCode marks an unassigned slot in the symbol lookup array.
const noCode int16 = -1

// Entry is one feature→code row of a token table.
type Entry struct {
	Token string
	Code  uint8
}

// TokenTable maps gene-segment names and chain symbols to small integer codes.
//
// Chain symbols are single bytes and resolve through a fixed 256-slot array,
// so the per-residue lookup in the encoder is one indexed load. Gene names
// resolve through a map built once at construction. A TokenTable is read-only
// after NewTokenTable and safe for concurrent use.
type TokenTable struct {
	symbols [256]int16
	tokens  map[string]uint8
	maxCode uint8
}

// NewTokenTable enumerates entries into a lookup table.
//
// Errors:
//   - ErrEmptyToken for an empty feature name.
//   - ErrDuplicateToken when a feature is listed twice.
//   - ErrMissingPad when no entry maps the padding symbol "_".
func NewTokenTable(entries []Entry) (*TokenTable, error) {
	t := &TokenTable{tokens: make(map[string]uint8, len(entries))}
	for i := range t.symbols {
		t.symbols[i] = noCode
	}
	for _, e := range entries {
		if e.Token == "" {
			return nil, ErrEmptyToken
		}
		if _, dup := t.tokens[e.Token]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateToken, e.Token)
		}
		t.tokens[e.Token] = e.Code
		if len(e.Token) == 1 {
			t.symbols[e.Token[0]] = int16(e.Code)
		}
		if e.Code > t.maxCode {
			t.maxCode = e.Code
		}
	}
	if t.symbols[Pad] == noCode {
		return nil, ErrMissingPad
	}

	return t, nil
}

// Code resolves a whole token (a gene-segment name or a one-letter symbol).
func (t *TokenTable) Code(token string) (uint8, bool) {
	c, ok := t.tokens[token]

	return c, ok
}

// Symbol resolves a single chain symbol.
func (t *TokenTable) Symbol(b byte) (uint8, bool) {
	c := t.symbols[b]
	if c == noCode {
		return 0, false
	}

	return uint8(c), true
}

// MaxCode returns the largest code in the table. A substitution matrix for
// this table needs dimension MaxCode()+1.
func (t *TokenTable) MaxCode() uint8 { return t.maxCode }

// Len returns the number of tokens.
func (t *TokenTable) Len() int { return len(t.tokens) }

// Tokens returns all tokens in lexicographic order.
func (t *TokenTable) Tokens() []string {
	out := make([]string, 0, len(t.tokens))
	for k := range t.tokens {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
