// Package affine: tolerance-based equality and the reference-mismatch
// policy.
//
// Two transforms are equal when their matrices agree element-wise within
// EqualityTol. Matching matrices with differing reference spaces are a soft
// condition: what happens then is a policy choice, not a hard-coded rule.

package affine

import "math"

// ReferencePolicy selects how Equal treats transforms whose matrices match
// but whose reference spaces differ.
type ReferencePolicy int

const (
	// RefAdvise keeps the comparison true and emits a non-fatal advisory via
	// the package logger. This is the default used by Equals, so batch or
	// scripted comparisons never abort on a reference mismatch.
	RefAdvise ReferencePolicy = iota

	// RefIgnore keeps the comparison true and stays silent.
	RefIgnore

	// RefStrict turns a reference mismatch into inequality.
	RefStrict
)

// Equals reports element-wise approximate matrix equality under the default
// RefAdvise policy.
func (a *Affine) Equals(b *Affine) bool {
	return Equal(a, b, RefAdvise)
}

// Equal reports whether a and b carry approximately equal matrices, applying
// pol when the matrices match but the reference spaces differ. Comparison
// never fails: a reference mismatch either flips the result (RefStrict) or
// leaves it true with at most an advisory.
func Equal(a, b *Affine, pol ReferencePolicy) bool {
	if a == nil || b == nil {
		return a == b
	}

	for i := 0; i < HDim; i++ {
		for j := 0; j < HDim; j++ {
			x, y := a.m.At(i, j), b.m.At(i, j)
			if math.Abs(x-y) > equalityAbsTol+EqualityTol*math.Abs(y) {
				return false
			}
		}
	}

	if !sameReference(a.ref, b.ref) {
		switch pol {
		case RefStrict:
			return false
		case RefAdvise:
			logger.Warn("transforms are equal, but references do not match")
		case RefIgnore:
		}
	}

	return true
}

// sameReference reports whether two optional references describe the same
// sampling. Two absent references match; an absent one never matches a
// present one.
func sameReference(a, b Reference) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.Equal(b)
}
