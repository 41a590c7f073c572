// Package testutil provides reusable test helper functions for image
// resizer tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-image-resampler/internal/simdops"
)

// Default tolerances for various test scenarios.
const (
	// ExactTolerance is for computations expected to be exact up to
	// float32 rounding.
	ExactTolerance = 1e-6

	// KernelTolerance absorbs the accumulated error of cubic/Lanczos tap
	// sums across two passes.
	KernelTolerance = 1e-4

	// WeightSumTolerance is the allowed deviation of a normalized weight
	// set from 1.
	WeightSumTolerance = 1e-5
)

// AssertAllInRange verifies that all samples are within [minVal, maxVal].
func AssertAllInRange[F simdops.Float](t *testing.T, s []F, minVal, maxVal F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "sample out of range",
				"s[%d]=%v is outside range [%v, %v]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no samples are NaN or Inf.
func AssertNoNaNOrInf[F simdops.Float](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertSamplesEqual verifies two sample slices match element-wise within
// tolerance.
func AssertSamplesEqual[F simdops.Float](t *testing.T, want, got []F, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), msgAndArgs...) {
		return false
	}
	for i := range want {
		if !assert.InDelta(t, float64(want[i]), float64(got[i]), tolerance,
			"sample %d: want %v, got %v", i, want[i], got[i]) {
			return false
		}
	}
	return true
}

// AssertSamplesIdentical verifies two sample slices are bit-exact.
// Used to check that execution strategy (worker count, tiling) never
// changes results.
func AssertSamplesIdentical[F simdops.Float](t *testing.T, want, got []F, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), msgAndArgs...) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return assert.Fail(t, "samples differ",
				"sample %d: %v != %v", i, want[i], got[i])
		}
	}
	return true
}

// AssertSumsTo verifies that a slice sums to the expected value within
// tolerance. Used for weight normalization checks.
func AssertSumsTo[F simdops.Float](t *testing.T, s []F, expected, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	var sum float64
	for _, v := range s {
		sum += float64(v)
	}
	return assert.InDelta(t, expected, sum, tolerance,
		"sum = %v, want %v", sum, expected)
}
