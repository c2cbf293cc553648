// SPDX-License-Identifier: MIT

package encode

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownToken is matched (errors.Is) by every *UnknownTokenError.
	ErrUnknownToken = errors.New("encode: unknown token")

	// ErrChainWidth indicates a chain width too small to keep any residue after
	// the anchor trim (W must be >= 6).
	ErrChainWidth = errors.New("encode: chain width must be >= 6")

	// ErrDuplicateToken indicates a token listed twice while building a TokenTable.
	ErrDuplicateToken = errors.New("encode: duplicate token")

	// ErrMissingPad indicates a TokenTable without the padding symbol.
	ErrMissingPad = errors.New("encode: token table has no padding symbol")

	// ErrEmptyToken indicates an empty feature name in a TokenTable.
	ErrEmptyToken = errors.New("encode: empty token")
)

// Field names a record column, used to point at the offending value.
type Field string

// Record columns, named as in the input table header.
const (
	FieldVA    Field = "va"
	FieldVB    Field = "vb"
	FieldCDR3A Field = "cdr3a"
	FieldCDR3B Field = "cdr3b"
)

// UnknownTokenError reports a token absent from the TokenTable.
// Record is the zero-based original index of the offending record.
type UnknownTokenError struct {
	Token  string
	Record int
	Field  Field
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("encode: unknown token %q in %s of record %d", e.Token, e.Field, e.Record)
}

// Is makes errors.Is(err, ErrUnknownToken) hold.
func (e *UnknownTokenError) Is(target error) bool { return target == ErrUnknownToken }
