// SPDX-License-Identifier: MIT

package checkpoint

import "errors"

var (
	// ErrCorrupt is returned when a stored block fails to decode or its
	// checksum does not match.
	ErrCorrupt = errors.New("checkpoint: corrupt block record")

	// ErrBlockIndex is returned for a negative block index.
	ErrBlockIndex = errors.New("checkpoint: negative block index")

	// ErrNilInput is returned by Fingerprint when a required matrix is nil.
	ErrNilInput = errors.New("checkpoint: nil input matrix")
)
