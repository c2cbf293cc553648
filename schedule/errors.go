// SPDX-License-Identifier: MIT

package schedule

import (
	"errors"
	"fmt"
)

// ErrConfig marks an invalid run configuration: non-positive chunk sizes,
// a negative cutoff, an unknown strategy or policy, or a missing backend.
var ErrConfig = errors.New("schedule: invalid configuration")

// Stage names used in StageError.
const (
	StageEncode     = "encode"
	StageKernel     = "kernel"
	StageSparsify   = "sparsify"
	StageSchedule   = "schedule"
	StageCheckpoint = "checkpoint"
)

// StageError attributes a run failure to a pipeline stage and, for per-block
// stages, to a block index (-1 when no block is involved).
type StageError struct {
	Stage string
	Block int
	Err   error
}

// Error implements error.
func (e *StageError) Error() string {
	if e.Block < 0 {
		return fmt.Sprintf("schedule: %s: %v", e.Stage, e.Err)
	}

	return fmt.Sprintf("schedule: %s: block %d: %v", e.Stage, e.Block, e.Err)
}

// Unwrap exposes the cause.
func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage string, block int, err error) error {
	return &StageError{Stage: stage, Block: block, Err: err}
}
