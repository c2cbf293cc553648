// SPDX-License-Identifier: MIT

// Package network groups records into clusters of the similarity graph: two
// records are linked when their pair score is within the cutoff, and a
// cluster is a connected component of those links.
package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/tcrdist/sparsify"
)

// ErrEdgeIndex is returned when an edge references a vertex outside [0, n).
var ErrEdgeIndex = errors.New("network: edge index out of range")

// cancelEvery is how many dequeued vertices pass between ctx checks.
const cancelEvery = 1024

// Components labels each of n records with its cluster.
//
// Label[i] is the component id of record i; Sizes[id] is the number of records
// in component id. Ids are assigned in increasing order of each component's
// smallest member, so record 0 is always in component 0. A record without
// edges is a singleton component.
type Components struct {
	Label []int
	Sizes []int
}

// Count returns the number of components.
func (c *Components) Count() int { return len(c.Sizes) }

// Members returns the records of component id in ascending order.
func (c *Components) Members(id int) []int {
	if id < 0 || id >= len(c.Sizes) {
		return nil
	}
	out := make([]int, 0, c.Sizes[id])
	for i, l := range c.Label {
		if l == id {
			out = append(out, i)
		}
	}

	return out
}

// Connected computes the components of the undirected graph on n vertices
// whose edges are given. Edge direction and score are ignored.
//
// Implementation:
//   - Stage 1: build adjacency lists (both directions).
//   - Stage 2: BFS from every unlabeled vertex in ascending order.
//
// Complexity:
//   - Time O(n + |E|), Space O(n + |E|).
func Connected(ctx context.Context, n int, edges []sparsify.Edge) (*Components, error) {
	if n < 0 {
		return nil, fmt.Errorf("network: negative vertex count %d", n)
	}
	deg := make([]int, n+1)
	for _, e := range edges {
		if e.Row < 0 || e.Row >= n || e.Col < 0 || e.Col >= n {
			return nil, fmt.Errorf("%w: (%d,%d) with %d records", ErrEdgeIndex, e.Row, e.Col, n)
		}
		deg[e.Row+1]++
		deg[e.Col+1]++
	}
	// CSR offsets: neighbours of v are adj[deg[v]:deg[v+1]]
	for v := 1; v <= n; v++ {
		deg[v] += deg[v-1]
	}
	adj := make([]int, deg[n])
	fill := append([]int(nil), deg[:n]...)
	for _, e := range edges {
		adj[fill[e.Row]] = e.Col
		fill[e.Row]++
		adj[fill[e.Col]] = e.Row
		fill[e.Col]++
	}

	label := make([]int, n)
	for i := range label {
		label[i] = -1
	}
	var sizes []int
	queue := make([]int, 0, 64)
	steps := 0
	for s := 0; s < n; s++ {
		if label[s] >= 0 {
			continue
		}
		id := len(sizes)
		label[s] = id
		queue = append(queue[:0], s)
		for qi := 0; qi < len(queue); qi++ {
			if steps++; steps%cancelEvery == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			u := queue[qi]
			for _, v := range adj[deg[u]:deg[u+1]] {
				if label[v] < 0 {
					label[v] = id
					queue = append(queue, v)
				}
			}
		}
		sizes = append(sizes, len(queue))
	}

	return &Components{Label: label, Sizes: sizes}, nil
}
