// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for the guards every kernel runs
//    before touching data: nil operands, equal encoded widths, code coverage.
//  - Keep backends minimal by delegating these checks here.
//
// Determinism & Performance:
//  - ValidateNotNil / ValidateSameWidth are O(1); ValidateCovered scans codes once.
//
// Note:
//  - Composite validators follow a fixed sequence (NotNil → Width → Coverage),
//    matching the error priority documented in errors.go.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures none of the code blocks is nil.
func ValidateNotNil(blocks ...*Codes) error {
	for _, b := range blocks {
		if b == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSameWidth ensures a and b carry the same encoded width.
// Assumes non-nil operands (run ValidateNotNil first).
func ValidateSameWidth(a, b *Codes) error {
	if a.c != b.c {
		return fmt.Errorf("ValidateSameWidth: %d vs %d columns: %w", a.c, b.c, ErrDimensionMismatch)
	}

	return nil
}

// ValidateCovered ensures every code in each block indexes s.
func ValidateCovered(s *Substitution, blocks ...*Codes) error {
	if s == nil {
		return validatorErrorf("ValidateCovered", ErrNilMatrix)
	}
	for _, b := range blocks {
		if hi, ok := b.MaxCode(); ok && int(hi) >= s.dim {
			return fmt.Errorf("ValidateCovered: max code %d, substitution dim %d: %w", hi, s.dim, ErrCodeRange)
		}
	}

	return nil
}

// ValidateScoreRange ensures no sum of width costs from s can overflow the
// int32 score of a pair.
func ValidateScoreRange(s *Substitution, width int) error {
	if s == nil {
		return validatorErrorf("ValidateScoreRange", ErrNilMatrix)
	}
	if !s.FitsWidth(width) {
		return fmt.Errorf("ValidateScoreRange: width %d × max cost %d = %d: %w",
			width, s.maxCost, s.MaxScore(width), ErrScoreOverflow)
	}

	return nil
}

// ValidateKernelInputs runs the full kernel guard sequence:
// NotNil(a, b) → SameWidth(a, b) → Covered(s, a, b) → ScoreRange(s, width).
func ValidateKernelInputs(a, b *Codes, s *Substitution) error {
	if err := ValidateNotNil(a, b); err != nil {
		return err
	}
	if err := ValidateSameWidth(a, b); err != nil {
		return err
	}

	if err := ValidateCovered(s, a, b); err != nil {
		return err
	}

	return ValidateScoreRange(s, a.c)
}
