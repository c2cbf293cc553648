// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/tcrdist/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewSubstitution_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		dim   int
		costs []int32
		want  error
	}{
		{"zero dim", 0, nil, matrix.ErrBadShape},
		{"too large", 257, make([]int32, 257*257), matrix.ErrBadShape},
		{"not square", 2, []int32{0, 1, 1}, matrix.ErrNonSquare},
		{"negative", 2, []int32{0, 1, -1, 0}, matrix.ErrNegativeCost},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := matrix.NewSubstitution(tc.dim, tc.costs)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSubstitution_CostRowCovers(t *testing.T) {
	t.Parallel()

	s, err := matrix.SubstitutionFromRows([][]int32{
		{0, 4, 8},
		{4, 0, 2},
		{8, 2, 0},
	})
	require.NoError(t, err)
	require.Equal(t, 3, s.Dim())

	c, err := s.Cost(2, 1)
	require.NoError(t, err)
	require.Equal(t, int32(2), c)

	row, err := s.Row(1)
	require.NoError(t, err)
	require.Equal(t, []int32{4, 0, 2}, row)

	_, err = s.Cost(3, 0)
	require.ErrorIs(t, err, matrix.ErrCodeRange)

	ok, err := matrix.CodesFromRows([][]uint8{{0, 2}})
	require.NoError(t, err)
	bad, err := matrix.CodesFromRows([][]uint8{{0, 3}})
	require.NoError(t, err)
	require.True(t, s.Covers(ok))
	require.False(t, s.Covers(bad))

	_, err = matrix.SubstitutionFromRows([][]int32{{0, 1}, {1}})
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestToCOO_DropsZeros(t *testing.T) {
	t.Parallel()

	d, err := matrix.ScoresFromData(2, 3, []int32{0, 5, 0, -1, 0, 7})
	require.NoError(t, err)

	coo, err := matrix.ToCOO(d)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 1}, coo.Row)
	require.Equal(t, []int{1, 0, 2}, coo.Col)
	require.Equal(t, []int32{5, -1, 7}, coo.Data)
	require.Equal(t, 3, coo.Len())

	_, err = matrix.ToCOO(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestToCOOMasked_KeepsMarkedZeros(t *testing.T) {
	t.Parallel()

	// 9×9 crosses a 64-bit word boundary
	d, err := matrix.NewScores(9, 9)
	require.NoError(t, err)
	require.NoError(t, d.Set(8, 8, 3))

	keep, err := matrix.NewBitmap(9, 9)
	require.NoError(t, err)
	require.NoError(t, keep.Mark(0, 1))
	require.NoError(t, keep.Mark(7, 2))
	require.NoError(t, keep.Mark(8, 8))
	require.ErrorIs(t, keep.Mark(9, 0), matrix.ErrOutOfRange)
	require.Equal(t, 3, keep.Count())
	require.True(t, keep.Has(7, 2))
	require.False(t, keep.Has(2, 7))

	coo, err := matrix.ToCOOMasked(d, keep)
	require.NoError(t, err)
	require.Equal(t, []int{0, 7, 8}, coo.Row)
	require.Equal(t, []int{1, 2, 8}, coo.Col)
	require.Equal(t, []int32{0, 0, 3}, coo.Data)

	small, err := matrix.NewBitmap(2, 2)
	require.NoError(t, err)
	_, err = matrix.ToCOOMasked(d, small)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestValidateKernelInputs_Priority(t *testing.T) {
	t.Parallel()

	s, err := matrix.NewSubstitution(2, []int32{0, 1, 1, 0})
	require.NoError(t, err)
	a, err := matrix.CodesFromRows([][]uint8{{0, 1}})
	require.NoError(t, err)
	narrow, err := matrix.CodesFromRows([][]uint8{{0}})
	require.NoError(t, err)
	wide, err := matrix.CodesFromRows([][]uint8{{0, 5}})
	require.NoError(t, err)

	require.ErrorIs(t, matrix.ValidateKernelInputs(nil, a, s), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateKernelInputs(a, narrow, s), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateKernelInputs(a, wide, s), matrix.ErrCodeRange)
	require.ErrorIs(t, matrix.ValidateKernelInputs(a, a, nil), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateKernelInputs(a, a, s))
}

func TestValidateKernelInputs_ScoreOverflow(t *testing.T) {
	t.Parallel()

	rows := make([][]uint8, 2)
	for i := range rows {
		rows[i] = make([]uint8, 50)
		for k := range rows[i] {
			rows[i][k] = uint8(i)
		}
	}
	c, err := matrix.CodesFromRows(rows)
	require.NoError(t, err)

	limit := int32(math.MaxInt32 / 50)
	ok, err := matrix.NewSubstitution(2, []int32{0, limit, limit, 0})
	require.NoError(t, err)
	require.Equal(t, limit, ok.MaxCost())
	require.NoError(t, matrix.ValidateKernelInputs(c, c, ok))

	over, err := matrix.NewSubstitution(2, []int32{0, limit + 1, limit + 1, 0})
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateKernelInputs(c, c, over), matrix.ErrScoreOverflow)

	big, err := matrix.NewSubstitution(2, []int32{0, 85899346, 85899346, 0})
	require.NoError(t, err)
	require.EqualValues(t, 4294967300, big.MaxScore(50))
	require.False(t, big.FitsWidth(50))
	require.True(t, big.FitsWidth(25))
	require.ErrorIs(t, matrix.ValidateKernelInputs(c, c, big), matrix.ErrScoreOverflow)
	require.ErrorIs(t, matrix.ValidateScoreRange(nil, 1), matrix.ErrNilMatrix)
}
