// SPDX-License-Identifier: MIT

package backend_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tcrdist/backend"
	"github.com/katalvlaran/tcrdist/internal/fixture"
	"github.com/katalvlaran/tcrdist/matrix"
)

func smallInputs(t *testing.T) (a, b *matrix.Codes, s *matrix.Substitution) {
	t.Helper()
	var err error
	s, err = matrix.SubstitutionFromRows([][]int32{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	})
	require.NoError(t, err)
	a, err = matrix.CodesFromRows([][]uint8{{0, 1}, {2, 2}})
	require.NoError(t, err)
	b, err = matrix.CodesFromRows([][]uint8{{0, 1}, {1, 0}, {2, 0}})
	require.NoError(t, err)

	return a, b, s
}

func engines() []backend.NumericBackend {
	return []backend.NumericBackend{backend.NewSerial(), backend.NewParallel(3)}
}

func TestScore_HandComputed(t *testing.T) {
	t.Parallel()

	a, b, s := smallInputs(t)
	want := []int32{
		0, 2, 3,
		5, 5, 2,
	}
	for _, be := range engines() {
		d, err := be.Score(context.Background(), a, b, s)
		require.NoError(t, err, be.Name())
		assert.Equal(t, want, d.Raw(), be.Name())
	}
}

func TestScore_SerialMatchesParallel(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	s := fixture.Substitution(rng, 6)
	a := fixture.Codes(rng, 157, 50)
	b := fixture.Codes(rng, 93, 50)

	want, err := backend.NewSerial().Score(context.Background(), a, b, s)
	require.NoError(t, err)
	for _, workers := range []int{1, 2, 5, 64} {
		got, err := backend.NewParallel(workers).Score(context.Background(), a, b, s)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "workers=%d", workers)
	}
}

func TestScore_EmptyBlocks(t *testing.T) {
	t.Parallel()

	_, _, s := smallInputs(t)
	a, err := matrix.NewCodes(0, 2)
	require.NoError(t, err)
	b, err := matrix.CodesFromRows([][]uint8{{0, 1}})
	require.NoError(t, err)
	for _, be := range engines() {
		d, err := be.Score(context.Background(), a, b, s)
		require.NoError(t, err)
		r, c := d.Shape()
		assert.Equal(t, 0, r)
		assert.Equal(t, 1, c)
	}
}

func TestScore_WidthMismatch(t *testing.T) {
	t.Parallel()

	a, _, s := smallInputs(t)
	b, err := matrix.CodesFromRows([][]uint8{{0, 1, 2}})
	require.NoError(t, err)
	for _, be := range engines() {
		_, err := be.Score(context.Background(), a, b, s)
		require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
		require.ErrorIs(t, err, backend.ErrBackend)

		var bErr *backend.BackendError
		require.True(t, errors.As(err, &bErr))
		assert.Equal(t, be.Name(), bErr.Backend)
		assert.Equal(t, "score", bErr.Op)
	}
}

func TestScore_CodeOutsideSubstitution(t *testing.T) {
	t.Parallel()

	_, b, s := smallInputs(t)
	a, err := matrix.CodesFromRows([][]uint8{{0, 3}})
	require.NoError(t, err)
	for _, be := range engines() {
		_, err := be.Score(context.Background(), a, b, s)
		require.ErrorIs(t, err, matrix.ErrCodeRange)
	}
}

func TestScore_Canceled(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	s := fixture.Substitution(rng, 4)
	a := fixture.Codes(rng, 64, 50)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, be := range engines() {
		_, err := be.Score(ctx, a, a, s)
		require.ErrorIs(t, err, context.Canceled)
		require.ErrorIs(t, err, backend.ErrBackend)
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	d, err := matrix.ScoresFromData(2, 3, []int32{
		0, 4, 0,
		7, 0, 1,
	})
	require.NoError(t, err)
	for _, be := range engines() {
		coo, err := be.Extract(d, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 1}, coo.Row)
		assert.Equal(t, []int{1, 0, 2}, coo.Col)
		assert.Equal(t, []int32{4, 7, 1}, coo.Data)

		keep, err := matrix.NewBitmap(2, 3)
		require.NoError(t, err)
		require.NoError(t, keep.Mark(0, 0))
		require.NoError(t, keep.Mark(1, 2))
		coo, err = be.Extract(d, keep)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, coo.Row)
		assert.Equal(t, []int{0, 2}, coo.Col)
		assert.Equal(t, []int32{0, 1}, coo.Data)

		bad, err := matrix.NewBitmap(3, 3)
		require.NoError(t, err)
		_, err = be.Extract(d, bad)
		require.ErrorIs(t, err, backend.ErrBackend)
		require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	}
}
