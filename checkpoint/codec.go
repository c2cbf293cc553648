// SPDX-License-Identifier: MIT

package checkpoint

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/katalvlaran/tcrdist/sparsify"
)

// Value layout:
//
//	uvarint n
//	n × (uvarint Δrow, uvarint col, uvarint score)
//	uint64 xxh3 of everything above (big-endian)
//
// Rows are non-decreasing inside a block, so the row is stored as a delta
// from the previous edge.

func encodeEdges(edges []sparsify.Edge) []byte {
	buf := make([]byte, 0, 8+len(edges)*6)
	buf = binary.AppendUvarint(buf, uint64(len(edges)))
	prev := 0
	for _, e := range edges {
		buf = binary.AppendUvarint(buf, uint64(e.Row-prev))
		buf = binary.AppendUvarint(buf, uint64(e.Col))
		buf = binary.AppendUvarint(buf, uint64(e.Score))
		prev = e.Row
	}

	return binary.BigEndian.AppendUint64(buf, xxh3.Hash(buf))
}

func decodeEdges(val []byte) ([]sparsify.Edge, error) {
	if len(val) < 9 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorrupt, len(val))
	}
	body, sum := val[:len(val)-8], binary.BigEndian.Uint64(val[len(val)-8:])
	if xxh3.Hash(body) != sum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	n, k := binary.Uvarint(body)
	if k <= 0 || n > uint64(len(body)) {
		return nil, fmt.Errorf("%w: bad edge count", ErrCorrupt)
	}
	body = body[k:]
	edges := make([]sparsify.Edge, n)
	row := 0
	for i := range edges {
		var f [3]uint64
		for p := range f {
			v, k := binary.Uvarint(body)
			if k <= 0 {
				return nil, fmt.Errorf("%w: truncated edge %d", ErrCorrupt, i)
			}
			f[p], body = v, body[k:]
		}
		row += int(f[0])
		edges[i] = sparsify.Edge{Row: row, Col: int(f[1]), Score: int32(f[2])}
	}
	if len(body) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(body))
	}

	return edges, nil
}
