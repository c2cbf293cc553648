// SPDX-License-Identifier: MIT

package sparsify

import "fmt"

// Policy selects how exact-zero scores survive sparse extraction.
type Policy int

const (
	// Sentinel rewrites zeros to -1 before extraction and back afterwards.
	Sentinel Policy = iota
	// Bitmap extracts through a presence mask of entries <= cutoff.
	Bitmap
)

var policyNames = map[Policy]string{
	Sentinel: "sentinel",
	Bitmap:   "bitmap",
}

// String implements fmt.Stringer.
func (p Policy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}

	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps "sentinel" or "bitmap" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrPolicy, s)
}
