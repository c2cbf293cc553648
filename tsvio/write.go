// SPDX-License-Identifier: MIT

package tsvio

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"syscall"

	"github.com/katalvlaran/tcrdist/neighbors"
	"github.com/katalvlaran/tcrdist/network"
	"github.com/katalvlaran/tcrdist/sparsify"
)

// Output headers.
const (
	EdgeHeader      = "edge1_0index\tedge2_0index\tTCRdist"
	NeighborHeader  = "query_0index\trank\tneighbor_0index\tTCRdist"
	ComponentHeader = "index\tcomponent\tcomponent_size"
)

// IsBrokenPipe reports whether err is a broken or closed pipe, as produced
// when a downstream consumer such as head exits early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// rowWriter formats integer rows into a buffered writer.
type rowWriter struct {
	bw  *bufio.Writer
	buf []byte
}

func newRowWriter(w io.Writer) *rowWriter {
	return &rowWriter{bw: bufio.NewWriterSize(w, 64<<10), buf: make([]byte, 0, 64)}
}

func (rw *rowWriter) line(s string) error {
	if _, err := rw.bw.WriteString(s); err != nil {
		return err
	}

	return rw.bw.WriteByte('\n')
}

func (rw *rowWriter) ints(vs ...int64) error {
	b := rw.buf[:0]
	for k, v := range vs {
		if k > 0 {
			b = append(b, '\t')
		}
		b = strconv.AppendInt(b, v, 10)
	}
	b = append(b, '\n')
	rw.buf = b
	_, err := rw.bw.Write(b)

	return err
}

// WriteEdges writes one "row<TAB>col<TAB>score" line per edge.
func WriteEdges(w io.Writer, edges []sparsify.Edge, header bool) error {
	rw := newRowWriter(w)
	if header {
		if err := rw.line(EdgeHeader); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if err := rw.ints(int64(e.Row), int64(e.Col), int64(e.Score)); err != nil {
			return err
		}
	}

	return rw.bw.Flush()
}

// WriteNeighbors writes one line per (query, rank) with rank starting at 1.
func WriteNeighbors(w io.Writer, rows [][]neighbors.Neighbor, header bool) error {
	rw := newRowWriter(w)
	if header {
		if err := rw.line(NeighborHeader); err != nil {
			return err
		}
	}
	for q, row := range rows {
		for k, nb := range row {
			if err := rw.ints(int64(q), int64(k+1), int64(nb.Col), int64(nb.Score)); err != nil {
				return err
			}
		}
	}

	return rw.bw.Flush()
}

// WriteComponents writes the component label and size of every record.
func WriteComponents(w io.Writer, c *network.Components, header bool) error {
	rw := newRowWriter(w)
	if header {
		if err := rw.line(ComponentHeader); err != nil {
			return err
		}
	}
	for i, id := range c.Label {
		if err := rw.ints(int64(i), int64(id), int64(c.Sizes[id])); err != nil {
			return err
		}
	}

	return rw.bw.Flush()
}
