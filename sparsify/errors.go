// SPDX-License-Identifier: MIT

package sparsify

import "errors"

var (
	// ErrCutoff is returned for a negative cutoff. Scores are sums of
	// non-negative costs, and a negative cutoff would collide with the sentinel.
	ErrCutoff = errors.New("sparsify: cutoff must be >= 0")

	// ErrPolicy is returned for an unknown zero-preservation policy.
	ErrPolicy = errors.New("sparsify: unknown policy")

	// ErrOffset is returned for negative block offsets.
	ErrOffset = errors.New("sparsify: negative block offset")
)
