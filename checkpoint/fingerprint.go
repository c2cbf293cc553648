// SPDX-License-Identifier: MIT

package checkpoint

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/xxh3"

	"github.com/katalvlaran/tcrdist/matrix"
)

// formatVersion is mixed into every fingerprint; bump it when the block value
// layout or the planning rules change.
const formatVersion = 1

// RunID identifies one set of run inputs.
type RunID [16]byte

// String returns the lowercase hex form.
func (r RunID) String() string { return hex.EncodeToString(r[:]) }

// Inputs lists everything that determines the contents of a block.
// Secondary is nil in self mode. Strategy is the scheduler's strategy value.
type Inputs struct {
	Primary      *matrix.Codes
	Secondary    *matrix.Codes
	Substitution *matrix.Substitution
	Cutoff       int32
	RowChunk     int
	ColChunk     int
	Strategy     int
	OnlyLowerTri bool
}

// Fingerprint digests in into a RunID.
//
// Implementation:
//   - Stage 1: hash a fixed header (version, scalars, shapes).
//   - Stage 2: stream the code buffers and the substitution costs.
//
// Complexity:
//   - Time O(n1*w + n2*w + dim²), Space O(1).
func Fingerprint(in Inputs) (RunID, error) {
	if in.Primary == nil || in.Substitution == nil {
		return RunID{}, ErrNilInput
	}
	h := xxh3.New()

	var hdr []byte
	hdr = binary.AppendUvarint(hdr, formatVersion)
	hdr = binary.AppendUvarint(hdr, uint64(in.Cutoff))
	hdr = binary.AppendUvarint(hdr, uint64(in.RowChunk))
	hdr = binary.AppendUvarint(hdr, uint64(in.ColChunk))
	hdr = binary.AppendUvarint(hdr, uint64(in.Strategy))
	hdr = append(hdr, boolByte(in.OnlyLowerTri), boolByte(in.Secondary == nil))
	hdr = appendShape(hdr, in.Primary)
	if in.Secondary != nil {
		hdr = appendShape(hdr, in.Secondary)
	}
	hdr = binary.AppendUvarint(hdr, uint64(in.Substitution.Dim()))
	_, _ = h.Write(hdr)

	_, _ = h.Write(in.Primary.Bytes())
	if in.Secondary != nil {
		_, _ = h.Write(in.Secondary.Bytes())
	}
	costs := make([]byte, 0, 4*len(in.Substitution.Raw()))
	for _, v := range in.Substitution.Raw() {
		costs = binary.BigEndian.AppendUint32(costs, uint32(v))
	}
	_, _ = h.Write(costs)

	sum := h.Sum128()
	var id RunID
	binary.BigEndian.PutUint64(id[0:8], sum.Hi)
	binary.BigEndian.PutUint64(id[8:16], sum.Lo)

	return id, nil
}

func appendShape(b []byte, c *matrix.Codes) []byte {
	r, w := c.Shape()
	b = binary.AppendUvarint(b, uint64(r))

	return binary.AppendUvarint(b, uint64(w))
}

func boolByte(v bool) byte {
	if v {
		return 1
	}

	return 0
}
