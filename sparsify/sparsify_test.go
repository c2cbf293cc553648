// SPDX-License-Identifier: MIT

package sparsify_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tcrdist/backend"
	"github.com/katalvlaran/tcrdist/matrix"
	"github.com/katalvlaran/tcrdist/sparsify"
)

var policies = []sparsify.Policy{sparsify.Sentinel, sparsify.Bitmap}

func scores(t *testing.T, rows, cols int, data ...int32) *matrix.Scores {
	t.Helper()
	d, err := matrix.ScoresFromData(rows, cols, append([]int32(nil), data...))
	require.NoError(t, err)

	return d
}

func TestBlock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		rows   int
		cols   int
		data   []int32
		params sparsify.Params
		want   []sparsify.Edge
	}{
		{
			name: "self lower triangle keeps off-diagonal zeros",
			rows: 3, cols: 3,
			data: []int32{
				0, 0, 5,
				0, 0, 100,
				5, 100, 0,
			},
			params: sparsify.Params{Cutoff: 90, CompareToSelf: true, OnlyLowerTri: true},
			want:   []sparsify.Edge{{1, 0, 0}, {2, 0, 5}},
		},
		{
			name: "self full keeps both orientations",
			rows: 3, cols: 3,
			data: []int32{
				0, 0, 5,
				0, 0, 100,
				5, 100, 0,
			},
			params: sparsify.Params{Cutoff: 90, CompareToSelf: true},
			want:   []sparsify.Edge{{0, 1, 0}, {0, 2, 5}, {1, 0, 0}, {2, 0, 5}},
		},
		{
			name: "two collections keep every zero",
			rows: 2, cols: 2,
			data: []int32{
				0, 91,
				90, 0,
			},
			params: sparsify.Params{Cutoff: 90},
			want:   []sparsify.Edge{{0, 0, 0}, {1, 0, 90}, {1, 1, 0}},
		},
		{
			name: "offsets below the diagonal",
			rows: 2, cols: 2,
			data:   []int32{0, 0, 0, 0},
			params: sparsify.Params{Cutoff: 0, RowOffset: 4, ColOffset: 2, CompareToSelf: true, OnlyLowerTri: true},
			want:   []sparsify.Edge{{4, 2, 0}, {4, 3, 0}, {5, 2, 0}, {5, 3, 0}},
		},
		{
			name: "row stripe crossing the diagonal",
			rows: 2, cols: 4,
			data: []int32{
				0, 0, 0, 0,
				0, 0, 0, 0,
			},
			params: sparsify.Params{Cutoff: 0, RowOffset: 2, CompareToSelf: true},
			want:   []sparsify.Edge{{2, 0, 0}, {2, 1, 0}, {2, 3, 0}, {3, 0, 0}, {3, 1, 0}, {3, 2, 0}},
		},
		{
			name: "cutoff zero keeps identical pairs only",
			rows: 1, cols: 3,
			data:   []int32{0, 1, 0},
			params: sparsify.Params{Cutoff: 0},
			want:   []sparsify.Edge{{0, 0, 0}, {0, 2, 0}},
		},
	}

	be := backend.NewSerial()
	for _, tc := range cases {
		for _, pol := range policies {
			p := tc.params
			p.Policy = pol
			got, err := sparsify.Block(scores(t, tc.rows, tc.cols, tc.data...), p, be)
			require.NoError(t, err, "%s/%s", tc.name, pol)
			assert.Equal(t, tc.want, got, "%s/%s", tc.name, pol)
		}
	}
}

func TestBlock_BitmapLeavesBlockIntact(t *testing.T) {
	t.Parallel()

	d := scores(t, 2, 2, 0, 200, 3, 0)
	before := d.Clone()
	_, err := sparsify.Block(d, sparsify.Params{Cutoff: 90, Policy: sparsify.Bitmap}, backend.NewSerial())
	require.NoError(t, err)
	assert.True(t, before.Equal(d))
}

func TestBlock_PoliciesAgree(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	be := backend.NewSerial()
	for trial := 0; trial < 200; trial++ {
		r, c := 1+rng.Intn(12), 1+rng.Intn(12)
		data := make([]int32, r*c)
		for k := range data {
			// a third zeros, the rest spread around the cutoff
			if rng.Intn(3) > 0 {
				data[k] = rng.Int31n(40)
			}
		}
		p := sparsify.Params{
			Cutoff:        rng.Int31n(30),
			RowOffset:     rng.Intn(3) * 4,
			ColOffset:     rng.Intn(3) * 4,
			CompareToSelf: rng.Intn(2) == 0,
			OnlyLowerTri:  rng.Intn(2) == 0,
		}

		p.Policy = sparsify.Sentinel
		a, err := sparsify.Block(scores(t, r, c, data...), p, be)
		require.NoError(t, err)
		p.Policy = sparsify.Bitmap
		b, err := sparsify.Block(scores(t, r, c, data...), p, be)
		require.NoError(t, err)
		require.Equal(t, a, b, "trial %d params %+v", trial, p)

		for _, e := range a {
			assert.LessOrEqual(t, e.Score, p.Cutoff)
			if p.CompareToSelf {
				assert.NotEqual(t, e.Row, e.Col)
				if p.OnlyLowerTri {
					assert.Greater(t, e.Row, e.Col)
				}
			}
		}
	}
}

func TestBlock_Errors(t *testing.T) {
	t.Parallel()

	be := backend.NewSerial()
	d := scores(t, 1, 1, 0)

	_, err := sparsify.Block(d, sparsify.Params{Cutoff: -1}, be)
	require.ErrorIs(t, err, sparsify.ErrCutoff)

	_, err = sparsify.Block(d, sparsify.Params{Policy: sparsify.Policy(9)}, be)
	require.ErrorIs(t, err, sparsify.ErrPolicy)

	_, err = sparsify.Block(d, sparsify.Params{RowOffset: -1}, be)
	require.ErrorIs(t, err, sparsify.ErrOffset)

	_, err = sparsify.Block(nil, sparsify.Params{}, be)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = sparsify.Block(d, sparsify.Params{}, nil)
	require.Error(t, err)
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	for _, pol := range policies {
		got, err := sparsify.ParsePolicy(pol.String())
		require.NoError(t, err)
		assert.Equal(t, pol, got)
	}
	_, err := sparsify.ParsePolicy("magic")
	require.ErrorIs(t, err, sparsify.ErrPolicy)
	assert.Equal(t, "Policy(9)", sparsify.Policy(9).String())
}

func TestSort(t *testing.T) {
	t.Parallel()

	edges := []sparsify.Edge{{2, 1, 4}, {0, 3, 1}, {2, 0, 9}, {0, 1, 2}}
	sparsify.Sort(edges)
	assert.Equal(t, []sparsify.Edge{{0, 1, 2}, {0, 3, 1}, {2, 0, 9}, {2, 1, 4}}, edges)
}
