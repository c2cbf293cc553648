// Package tsvio reads the delimited inputs of a distance run and writes its
// results.
//
// Inputs:
//   - record table: tab-separated with a header naming va, vb, cdr3a and
//     cdr3b (any order, case-insensitive, extra columns ignored);
//   - token table: headerless "feature<TAB>code" lines, code 0..255;
//   - substitution matrix: square block of integers, one row per line.
//
// Outputs are tab-separated with an optional header. The edge table uses the
// columns edge1_0index, edge2_0index and TCRdist.
//
// Blank lines and lines starting with '#' are skipped in every input.
package tsvio
