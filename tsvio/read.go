// SPDX-License-Identifier: MIT

package tsvio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/tcrdist/encode"
	"github.com/katalvlaran/tcrdist/matrix"
)

var (
	// ErrMissingColumn is returned when the record header lacks a required column.
	ErrMissingColumn = errors.New("tsvio: missing required column")
	// ErrFieldCount is returned for a line with too few fields.
	ErrFieldCount = errors.New("tsvio: wrong field count")
	// ErrValue is returned for a field that does not parse.
	ErrValue = errors.New("tsvio: bad value")
	// ErrEmpty is returned when an input holds no data lines.
	ErrEmpty = errors.New("tsvio: no data")
)

// maxLine bounds a single input line.
const maxLine = 16 << 20

// lines calls fn for every non-blank, non-comment line with its 1-based
// line number.
func lines(r io.Reader, fn func(ln int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || line[0] == '#' {
			continue
		}
		if err := fn(ln, line); err != nil {
			return err
		}
	}

	return sc.Err()
}

// RequiredColumns are the record table columns ReadRecords needs.
var RequiredColumns = []string{"va", "vb", "cdr3a", "cdr3b"}

// ReadRecords parses a record table.
//
// Errors:
//   - ErrMissingColumn when the header lacks one of RequiredColumns.
//   - ErrFieldCount when a data line is shorter than the last required column.
func ReadRecords(r io.Reader) ([]encode.Record, error) {
	var (
		idx  map[string]int
		need int
		out  []encode.Record
	)
	err := lines(r, func(ln int, line string) error {
		f := strings.Split(line, "\t")
		if idx == nil {
			idx = make(map[string]int, len(f))
			for i, name := range f {
				idx[strings.ToLower(strings.TrimSpace(name))] = i
			}
			for _, c := range RequiredColumns {
				i, ok := idx[c]
				if !ok {
					return fmt.Errorf("%w %q (header at line %d)", ErrMissingColumn, c, ln)
				}
				need = max(need, i+1)
			}

			return nil
		}
		if len(f) < need {
			return fmt.Errorf("line %d: %w: %d fields, need %d", ln, ErrFieldCount, len(f), need)
		}
		out = append(out, encode.Record{
			VA:    strings.TrimSpace(f[idx["va"]]),
			VB:    strings.TrimSpace(f[idx["vb"]]),
			CDR3A: strings.TrimSpace(f[idx["cdr3a"]]),
			CDR3B: strings.TrimSpace(f[idx["cdr3b"]]),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}
	if idx == nil {
		return nil, fmt.Errorf("%w: record table has no header", ErrEmpty)
	}

	return out, nil
}

// ReadTokenTable parses "feature<TAB>code" lines into a token table.
func ReadTokenTable(r io.Reader) (*encode.TokenTable, error) {
	var entries []encode.Entry
	err := lines(r, func(ln int, line string) error {
		f := strings.Split(line, "\t")
		if len(f) != 2 {
			return fmt.Errorf("line %d: %w: %d fields, want 2", ln, ErrFieldCount, len(f))
		}
		code, err := strconv.ParseUint(strings.TrimSpace(f[1]), 10, 8)
		if err != nil {
			return fmt.Errorf("line %d: %w: code %q: %w", ln, ErrValue, f[1], err)
		}
		entries = append(entries, encode.Entry{Token: f[0], Code: uint8(code)})

		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: token table", ErrEmpty)
	}

	return encode.NewTokenTable(entries)
}

// ReadSubstitution parses a square integer matrix. Fields may be separated by
// tabs or spaces.
func ReadSubstitution(r io.Reader) (*matrix.Substitution, error) {
	var rows [][]int32
	err := lines(r, func(ln int, line string) error {
		f := strings.Fields(line)
		row := make([]int32, len(f))
		for k, s := range f {
			v, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				return fmt.Errorf("line %d field %d: %w: %w", ln, k+1, ErrValue, err)
			}
			row[k] = int32(v)
		}
		rows = append(rows, row)

		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: substitution matrix", ErrEmpty)
	}

	return matrix.SubstitutionFromRows(rows)
}
