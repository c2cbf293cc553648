// Package sparsify turns a dense score block into a list of global edges with
// score <= cutoff.
//
// Sparse extraction drops zeros, but a zero score is meaningful here: two
// identical records. Two policies keep legitimate zeros alive.
//
// Sentinel (default) rewrites the block in place:
//
//  1. every exact zero becomes -1, except a record paired with itself;
//  2. every entry above the cutoff becomes 0;
//  3. the non-zero entries are extracted and -1 is mapped back to 0.
//
// Bitmap marks entries <= cutoff in a presence mask and extracts exactly
// those, so no value is overloaded and the block is left untouched.
//
// Both policies then apply the self-comparison filter (row > col for the lower
// triangle, row != col otherwise) and shift local indices by the block
// offsets. They produce identical edges.
package sparsify
