// SPDX-License-Identifier: MIT

package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tcrdist/schedule"
)

func cfgWith(rowChunk, colChunk int, strategy schedule.Strategy, lowerTri bool) schedule.Config {
	c := schedule.DefaultConfig()
	c.RowChunk = rowChunk
	c.ColChunk = colChunk
	c.Strategy = strategy
	c.OnlyLowerTri = lowerTri

	return c
}

func spans(blocks []schedule.Block) [][4]int {
	out := make([][4]int, len(blocks))
	for i, b := range blocks {
		out[i] = [4]int{b.Row0, b.Row1, b.Col0, b.Col1}
	}

	return out
}

func TestPlan_2DSelfLowerTriangle(t *testing.T) {
	t.Parallel()

	blocks := schedule.Plan(5, 5, cfgWith(2, 0, schedule.Strategy2D, true), true)
	assert.Equal(t, [][4]int{
		{0, 2, 0, 2},
		{2, 4, 0, 2}, {2, 4, 2, 4},
		{4, 5, 0, 2}, {4, 5, 2, 4}, {4, 5, 4, 5},
	}, spans(blocks))
	for i, b := range blocks {
		assert.Equal(t, i, b.Index)
	}
}

func TestPlan_2DFull(t *testing.T) {
	t.Parallel()

	// triangle rule applies to self mode only
	assert.Len(t, schedule.Plan(5, 5, cfgWith(2, 0, schedule.Strategy2D, true), false), 9)
	assert.Len(t, schedule.Plan(5, 5, cfgWith(2, 0, schedule.Strategy2D, false), true), 9)
	assert.Len(t, schedule.Plan(5, 3, cfgWith(2, 2, schedule.Strategy2D, true), false), 6)
}

func TestPlan_UnequalChunks(t *testing.T) {
	t.Parallel()

	blocks := schedule.Plan(6, 6, cfgWith(3, 2, schedule.Strategy2D, true), true)
	assert.Equal(t, [][4]int{
		{0, 3, 0, 2}, {0, 3, 2, 4},
		{3, 6, 0, 2}, {3, 6, 2, 4}, {3, 6, 4, 6},
	}, spans(blocks))
}

func TestPlan_Rows(t *testing.T) {
	t.Parallel()

	blocks := schedule.Plan(5, 7, cfgWith(2, 3, schedule.StrategyRows, true), true)
	assert.Equal(t, [][4]int{{0, 2, 0, 7}, {2, 4, 0, 7}, {4, 5, 0, 7}}, spans(blocks))
}

func TestPlan_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, schedule.Plan(0, 5, schedule.DefaultConfig(), false))
	assert.Empty(t, schedule.Plan(5, 0, schedule.DefaultConfig(), false))
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	for _, s := range []schedule.Strategy{schedule.Strategy2D, schedule.StrategyRows} {
		got, err := schedule.ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := schedule.ParseStrategy("diagonal")
	require.ErrorIs(t, err, schedule.ErrConfig)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, schedule.DefaultConfig().Validate())

	bad := map[string]func(c *schedule.Config){
		"row chunk": func(c *schedule.Config) { c.RowChunk = 0 },
		"col chunk": func(c *schedule.Config) { c.ColChunk = -1 },
		"cutoff":    func(c *schedule.Config) { c.Cutoff = -1 },
		"workers":   func(c *schedule.Config) { c.Workers = -2 },
		"strategy":  func(c *schedule.Config) { c.Strategy = 5 },
		"policy":    func(c *schedule.Config) { c.Policy = 5 },
	}
	for name, mutate := range bad {
		c := schedule.DefaultConfig()
		mutate(&c)
		assert.ErrorIs(t, c.Validate(), schedule.ErrConfig, name)
	}
}
