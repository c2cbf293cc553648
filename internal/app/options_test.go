// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFS() *flag.FlagSet {
	fs := NewFlagSet("tcrdist")
	fs.SetOutput(io.Discard)

	return fs
}

var required = []string{"-tcr1", "a.tsv", "-params", "p.tsv", "-submat", "s.tsv"}

func parse(extra ...string) (Options, error) {
	return ParseArgs(newFS(), append(append([]string{}, required...), extra...))
}

func TestParseArgs_Defaults(t *testing.T) {
	t.Parallel()

	o, err := parse()
	require.NoError(t, err)
	assert.Equal(t, "a.tsv", o.TCR1)
	assert.Empty(t, o.TCR2)
	assert.Equal(t, 90, o.Cutoff)
	assert.Equal(t, 1000, o.Chunk)
	assert.Zero(t, o.ChunkCol)
	assert.True(t, o.LowerTri)
	assert.Equal(t, "2d", o.Strategy)
	assert.Equal(t, "sentinel", o.Policy)
	assert.Equal(t, "auto", o.Backend)
	assert.Equal(t, "-", o.Out)
	assert.Equal(t, 29, o.ChainWidth)
}

func TestParseArgs_Overrides(t *testing.T) {
	t.Parallel()

	o, err := parse("-tcr2", "b.tsv", "-cutoff", "24", "-chunk", "50", "-chunk-col", "70",
		"-lower-tri=false", "-strategy", "rows", "-policy", "bitmap", "-threads", "3",
		"-backend", "serial", "-max-records", "10", "-width", "25")
	require.NoError(t, err)
	assert.Equal(t, "b.tsv", o.TCR2)
	assert.Equal(t, 24, o.Cutoff)
	assert.Equal(t, 50, o.Chunk)
	assert.Equal(t, 70, o.ChunkCol)
	assert.False(t, o.LowerTri)
	assert.Equal(t, "rows", o.Strategy)
	assert.Equal(t, "bitmap", o.Policy)
	assert.Equal(t, 3, o.Threads)
	assert.Equal(t, "serial", o.Backend)
	assert.Equal(t, 10, o.MaxRecords)
	assert.Equal(t, 25, o.ChainWidth)
}

func TestParseArgs_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string][]string{
		"no tcr1":          {"-params", "p", "-submat", "s"},
		"no params":        {"-tcr1", "a", "-submat", "s"},
		"no submat":        {"-tcr1", "a", "-params", "p"},
		"negative cutoff":  append(append([]string{}, required...), "-cutoff", "-1"),
		"huge cutoff":      append(append([]string{}, required...), "-cutoff", "4294967386"),
		"zero chunk":       append(append([]string{}, required...), "-chunk", "0"),
		"negative threads": append(append([]string{}, required...), "-threads", "-2"),
		"quiet and debug":  append(append([]string{}, required...), "-quiet", "-debug"),
		"bad strategy":     append(append([]string{}, required...), "-strategy", "diagonal"),
		"bad policy":       append(append([]string{}, required...), "-policy", "dense"),
		"narrow width":     append(append([]string{}, required...), "-width", "4"),
		"components pair":  append(append([]string{}, required...), "-tcr2", "b", "-components", "c.tsv"),
		"topk and verify":  append(append([]string{}, required...), "-topk", "3", "-verify"),
		"unknown flag":     append(append([]string{}, required...), "-bogus"),
	}
	for name, argv := range cases {
		_, err := ParseArgs(newFS(), argv)
		assert.Error(t, err, name)
	}
}

func TestParseArgs_HelpAndVersion(t *testing.T) {
	t.Parallel()

	_, err := ParseArgs(newFS(), []string{"-h"})
	assert.True(t, errors.Is(err, flag.ErrHelp))

	o, err := ParseArgs(newFS(), []string{"-version"})
	require.NoError(t, err)
	assert.True(t, o.Version)
}
