// Package encode maps paired T-cell receptor records to fixed-width rows of
// small integer codes.
//
// Each record contributes two gene-segment tokens (VA, VB) and two CDR3 chains.
// Chains are center-padded (or truncated) to a common width W, the conserved
// anchor residues are trimmed (3 from the start, 2 from the end), and every
// remaining symbol is resolved through a TokenTable:
//
//	code(VA) | CDR3A[3:W-2] | code(VB) | CDR3B[3:W-2]
//
// Lookups never fall back to a default: an unknown token is an
// *UnknownTokenError naming the token, the record and the column.
//
// Usage:
//
//	table, _ := encode.NewTokenTable(entries)
//	enc, _ := encode.NewEncoder(table, encode.DefaultOptions())
//	col, err := enc.Encode(records)
package encode
