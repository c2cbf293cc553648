// SPDX-License-Identifier: MIT

package network_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tcrdist/network"
	"github.com/katalvlaran/tcrdist/sparsify"
)

func TestConnected(t *testing.T) {
	t.Parallel()

	// 0-3, 3-5 ; 1-4 ; 2 alone ; 6-7
	edges := []sparsify.Edge{
		{Row: 3, Col: 0, Score: 0},
		{Row: 5, Col: 3, Score: 12},
		{Row: 4, Col: 1, Score: 40},
		{Row: 7, Col: 6, Score: 1},
	}
	c, err := network.Connected(context.Background(), 8, edges)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 0, 1, 0, 3, 3}, c.Label)
	assert.Equal(t, []int{3, 2, 1, 2}, c.Sizes)
	assert.Equal(t, 4, c.Count())
	assert.Equal(t, []int{0, 3, 5}, c.Members(0))
	assert.Nil(t, c.Members(9))
}

func TestConnected_NoEdges(t *testing.T) {
	t.Parallel()

	c, err := network.Connected(context.Background(), 3, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, c.Label)
	assert.Equal(t, []int{1, 1, 1}, c.Sizes)

	c, err = network.Connected(context.Background(), 0, nil)
	require.NoError(t, err)
	assert.Zero(t, c.Count())
}

func TestConnected_Errors(t *testing.T) {
	t.Parallel()

	_, err := network.Connected(context.Background(), 2, []sparsify.Edge{{Row: 2, Col: 0}})
	require.ErrorIs(t, err, network.ErrEdgeIndex)

	_, err = network.Connected(context.Background(), -1, nil)
	require.Error(t, err)
}

func TestConnected_Canceled(t *testing.T) {
	t.Parallel()

	n := 5000
	edges := make([]sparsify.Edge, 0, n-1)
	for i := 1; i < n; i++ {
		edges = append(edges, sparsify.Edge{Row: i, Col: i - 1})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := network.Connected(ctx, n, edges)
	require.ErrorIs(t, err, context.Canceled)
}
