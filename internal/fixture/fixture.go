// SPDX-License-Identifier: MIT

// Package fixture builds deterministic inputs for tests and examples:
// a token table over the 20 amino acids plus a handful of gene segments,
// random receptor records and a random symmetric substitution matrix.
//
// Every generator takes an explicit *rand.Rand; callers seed it so that a
// failing property test reproduces exactly.
package fixture

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/tcrdist/encode"
	"github.com/katalvlaran/tcrdist/matrix"
)

// Residues is the chain alphabet, coded 1..20 in this order. Pad is code 0.
const Residues = "ACDEFGHIKLMNPQRSTVWY"

// Genes per chain. TRAV genes take codes 21..25, TRBV genes 26..30.
const Genes = 5

// Dim is the substitution dimension that covers every fixture code.
const Dim = 1 + len(Residues) + 2*Genes

// GeneA returns the i-th alpha gene name.
func GeneA(i int) string { return fmt.Sprintf("TRAV%d*01", i+1) }

// GeneB returns the i-th beta gene name.
func GeneB(i int) string { return fmt.Sprintf("TRBV%d*01", i+1) }

// Entries returns the fixture token table rows.
func Entries() []encode.Entry {
	out := make([]encode.Entry, 0, Dim)
	out = append(out, encode.Entry{Token: string(encode.Pad), Code: 0})
	for i, r := range Residues {
		out = append(out, encode.Entry{Token: string(r), Code: uint8(i + 1)})
	}
	base := 1 + len(Residues)
	for i := 0; i < Genes; i++ {
		out = append(out, encode.Entry{Token: GeneA(i), Code: uint8(base + i)})
		out = append(out, encode.Entry{Token: GeneB(i), Code: uint8(base + Genes + i)})
	}

	return out
}

// Table returns the fixture token table. It panics only if Entries is broken.
func Table() *encode.TokenTable {
	t, err := encode.NewTokenTable(Entries())
	if err != nil {
		panic(err)
	}

	return t
}

// Substitution returns a random symmetric Dim×Dim matrix with a zero diagonal
// and off-diagonal costs in [1, maxCost].
func Substitution(rng *rand.Rand, maxCost int32) *matrix.Substitution {
	costs := make([]int32, Dim*Dim)
	for i := 0; i < Dim; i++ {
		for j := i + 1; j < Dim; j++ {
			v := 1 + rng.Int31n(maxCost)
			costs[i*Dim+j] = v
			costs[j*Dim+i] = v
		}
	}
	s, err := matrix.NewSubstitution(Dim, costs)
	if err != nil {
		panic(err)
	}

	return s
}

// Records returns n random records. Chains are 8..18 residues long. About a
// quarter of the records (after the first) duplicate an earlier one, so that
// zero-score pairs between distinct records occur.
func Records(rng *rand.Rand, n int) []encode.Record {
	out := make([]encode.Record, n)
	for i := range out {
		if i > 0 && rng.Intn(4) == 0 {
			out[i] = out[rng.Intn(i)]
			continue
		}
		out[i] = encode.Record{
			VA:    GeneA(rng.Intn(Genes)),
			VB:    GeneB(rng.Intn(Genes)),
			CDR3A: chain(rng),
			CDR3B: chain(rng),
		}
	}

	return out
}

func chain(rng *rand.Rand) string {
	b := make([]byte, 8+rng.Intn(11))
	for i := range b {
		b[i] = Residues[rng.Intn(len(Residues))]
	}

	return string(b)
}

// Encode encodes recs with the fixture table and the default chain width.
func Encode(recs []encode.Record) (*encode.Collection, error) {
	enc, err := encode.NewEncoder(Table(), encode.DefaultOptions())
	if err != nil {
		return nil, err
	}

	return enc.Encode(recs)
}

// Codes returns an n×w matrix of random codes in [0, Dim).
func Codes(rng *rand.Rand, n, w int) *matrix.Codes {
	c, err := matrix.NewCodes(n, w)
	if err != nil {
		panic(err)
	}
	buf := c.Bytes()
	for i := range buf {
		buf[i] = uint8(rng.Intn(Dim))
	}

	return c
}
