// SPDX-License-Identifier: MIT

package encode

// Anchor trim applied to every padded chain: the first trimHead and the last
// trimTail symbols are conserved anchor residues and carry no signal.
const (
	trimHead = 3
	trimTail = 2
)

// PadCenter fits chain into exactly w symbols.
//
// A chain of length L >= w keeps its first w symbols. A shorter chain is split
// at L/2 and w-L Pad symbols are inserted between the halves, so both the N-
// and C-terminal ends stay aligned across chains of different lengths.
//
//	PadCenter("ABC", 7)  == "A____BC"
//	PadCenter("ABCD", 3) == "ABC"
func PadCenter(chain string, w int) []byte {
	if w <= 0 {
		return []byte{}
	}
	out := make([]byte, w)
	l := len(chain)
	if l >= w {
		copy(out, chain[:w])
		return out
	}
	half := l / 2
	copy(out, chain[:half])
	for k := half; k < half+w-l; k++ {
		out[k] = Pad
	}
	copy(out[half+w-l:], chain[half:])

	return out
}

// TrimAnchors returns the inner window of a padded chain that takes part in
// scoring. The slice aliases padded.
func TrimAnchors(padded []byte) []byte {
	if len(padded) < trimHead+trimTail {
		return padded[:0]
	}

	return padded[trimHead : len(padded)-trimTail]
}
