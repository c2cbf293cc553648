// SPDX-License-Identifier: MIT

package encode

import (
	"fmt"

	"github.com/katalvlaran/tcrdist/matrix"
)

// Record is one paired-chain receptor: two gene-segment tokens and two CDR3
// chains. Its original index is its position in the input slice.
type Record struct {
	VA    string
	VB    string
	CDR3A string
	CDR3B string
}

// Collection is an encoded input table.
//
// Codes row i encodes Records[Index[i]]. Index is the identity today but is
// kept explicit so edges always refer back to original input order.
type Collection struct {
	Codes   *matrix.Codes
	Index   []int
	Records []Record
}

// Len returns the number of encoded records.
func (c *Collection) Len() int {
	if c == nil || c.Codes == nil {
		return 0
	}

	return c.Codes.Rows()
}

// Width returns the encoded row width.
func (c *Collection) Width() int {
	if c == nil || c.Codes == nil {
		return 0
	}

	return c.Codes.Cols()
}

// Encoder turns Records into fixed-width code rows.
// An Encoder is immutable and safe for concurrent use.
type Encoder struct {
	table *TokenTable
	w     int
	width int
}

// NewEncoder binds a token table and options.
//
// Errors:
//   - ErrChainWidth when opts.ChainWidth < 6.
func NewEncoder(table *TokenTable, opts Options) (*Encoder, error) {
	if table == nil {
		return nil, fmt.Errorf("encode: nil token table")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Encoder{table: table, w: opts.ChainWidth, width: EncodedWidth(opts.ChainWidth)}, nil
}

// Width returns the encoded row width produced by this encoder.
func (e *Encoder) Width() int { return e.width }

// Encode encodes every record.
func (e *Encoder) Encode(records []Record) (*Collection, error) {
	return e.EncodeN(records, 0)
}

// EncodeN encodes the first nMax records (all of them when nMax <= 0).
//
// Row layout:
//
//	code(VA) | trimmed padded CDR3A | code(VB) | trimmed padded CDR3B
//
// Every symbol of the padded chain is resolved, including the trimmed anchor
// positions, so a malformed chain fails here instead of vanishing in the trim.
//
// Errors:
//   - *UnknownTokenError for the first unresolved token, in record order.
func (e *Encoder) EncodeN(records []Record, nMax int) (*Collection, error) {
	n := len(records)
	if nMax > 0 && nMax < n {
		n = nMax
	}
	codes, err := matrix.NewCodes(n, e.width)
	if err != nil {
		return nil, err
	}
	buf := codes.Bytes()
	index := make([]int, n)
	for i := 0; i < n; i++ {
		rec := &records[i]
		row := buf[i*e.width : (i+1)*e.width]
		at := 0

		if row[at], err = e.gene(rec.VA, i, FieldVA); err != nil {
			return nil, err
		}
		at++
		if at, err = e.chain(row, at, rec.CDR3A, i, FieldCDR3A); err != nil {
			return nil, err
		}
		if row[at], err = e.gene(rec.VB, i, FieldVB); err != nil {
			return nil, err
		}
		at++
		if _, err = e.chain(row, at, rec.CDR3B, i, FieldCDR3B); err != nil {
			return nil, err
		}
		index[i] = i
	}

	return &Collection{Codes: codes, Index: index, Records: records[:n]}, nil
}

func (e *Encoder) gene(token string, rec int, f Field) (uint8, error) {
	c, ok := e.table.Code(token)
	if !ok {
		return 0, &UnknownTokenError{Token: token, Record: rec, Field: f}
	}

	return c, nil
}

// chain pads seq, resolves every symbol in place and writes the trimmed
// window into row starting at at. It returns the next free position.
func (e *Encoder) chain(row []uint8, at int, seq string, rec int, f Field) (int, error) {
	p := PadCenter(seq, e.w)
	for k, b := range p {
		c, ok := e.table.Symbol(b)
		if !ok {
			return at, &UnknownTokenError{Token: string([]byte{b}), Record: rec, Field: f}
		}
		p[k] = c
	}
	at += copy(row[at:], TrimAnchors(p))

	return at, nil
}
