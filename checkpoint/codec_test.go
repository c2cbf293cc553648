// SPDX-License-Identifier: MIT

package checkpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tcrdist/sparsify"
)

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	in := []sparsify.Edge{{Row: 5, Col: 1, Score: 0}, {Row: 5, Col: 4, Score: 3}, {Row: 2, Col: 0, Score: 1 << 20}}
	out, err := decodeEdges(encodeEdges(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)

	out, err = decodeEdges(encodeEdges(nil))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCodec_Corrupt(t *testing.T) {
	t.Parallel()

	val := encodeEdges([]sparsify.Edge{{Row: 1, Col: 0, Score: 12}})

	flipped := append([]byte(nil), val...)
	flipped[1] ^= 0xff
	_, err := decodeEdges(flipped)
	require.ErrorIs(t, err, ErrCorrupt)

	_, err = decodeEdges(val[:4])
	require.ErrorIs(t, err, ErrCorrupt)
}
