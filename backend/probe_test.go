// SPDX-License-Identifier: MIT

package backend_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tcrdist/backend"
	"github.com/katalvlaran/tcrdist/matrix"
)

func TestProbe(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		opts backend.ProbeOptions
		want string
	}{
		{"single cpu", backend.ProbeOptions{CPUs: 1}, backend.SerialName},
		{"many cpus", backend.ProbeOptions{CPUs: 8}, backend.ParallelName},
		{"one worker", backend.ProbeOptions{CPUs: 8, Workers: 1}, backend.SerialName},
		{"auto", backend.ProbeOptions{Name: backend.AutoName, CPUs: 4}, backend.ParallelName},
		{"explicit serial", backend.ProbeOptions{Name: backend.SerialName, CPUs: 8}, backend.SerialName},
		{"explicit parallel", backend.ProbeOptions{Name: backend.ParallelName, CPUs: 1}, backend.ParallelName},
	}
	for _, tc := range cases {
		be, err := backend.Probe(tc.opts)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, be.Name(), tc.name)
	}
}

func TestProbe_ParallelWorkers(t *testing.T) {
	t.Parallel()

	be, err := backend.Probe(backend.ProbeOptions{Name: backend.ParallelName, Workers: 3})
	require.NoError(t, err)
	p, ok := be.(*backend.Parallel)
	require.True(t, ok)
	assert.Equal(t, 3, p.Workers())
}

func TestProbe_Unknown(t *testing.T) {
	t.Parallel()

	_, err := backend.Probe(backend.ProbeOptions{Name: "gpu"})
	require.ErrorIs(t, err, backend.ErrUnknownBackend)
}

// failing always reports an error from Score.
type failing struct{}

func (failing) Name() string { return "failing-test" }
func (failing) Score(context.Context, *matrix.Codes, *matrix.Codes, *matrix.Substitution) (*matrix.Scores, error) {
	return nil, errors.New("device lost")
}
func (failing) Extract(*matrix.Scores, *matrix.Bitmap) (*matrix.COO, error) {
	return nil, errors.New("device lost")
}

func TestRegister(t *testing.T) {
	t.Parallel()

	factory := func(backend.ProbeOptions) (backend.NumericBackend, error) { return failing{}, nil }
	require.NoError(t, backend.Register("failing-test", factory))
	require.ErrorIs(t, backend.Register("failing-test", factory), backend.ErrDuplicateBackend)
	require.ErrorIs(t, backend.Register(backend.SerialName, factory), backend.ErrDuplicateBackend)
	require.Error(t, backend.Register(backend.AutoName, factory))

	assert.Contains(t, backend.Names(), "failing-test")
	assert.Contains(t, backend.Names(), backend.SerialName)

	be, err := backend.Lookup(backend.ProbeOptions{Name: "failing-test"})
	require.NoError(t, err)
	assert.Equal(t, "failing-test", be.Name())
}
