// Package testutil provides reusable test helper functions for modem and container tests.
package testutil

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Common carrier configurations used across tests.
const (
	SampleRate8k   = 8000
	SampleRate44k1 = 44100
	SampleRate48k  = 48000
	Baud1000       = 1000
	Baud1200       = 1200
	Carrier1k      = 1000.0
	Carrier2k      = 2000.0
	Carrier2k4     = 2400.0
	FullScale16    = 32767
)

// RandomBytes returns n deterministic pseudo-random bytes for seed.
func RandomBytes(seed int64, n int) []byte {
	rng := rand.New(rand.NewSource(seed))
	data := make([]byte, n)
	rng.Read(data)
	return data
}

// RandomSamples returns n deterministic pseudo-random 16-bit samples for seed,
// covering the full signed range.
func RandomSamples(seed int64, n int) []int16 {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(rng.Intn(math.MaxUint16+1) + math.MinInt16)
	}
	return samples
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf[F float32 | float64](t *testing.T, s []F) bool {
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

// AssertAllInRange verifies that all samples are within [minVal, maxVal].
func AssertAllInRange(t *testing.T, s []int16, minVal, maxVal int16) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%d is outside range [%d, %d]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertBitsEqual compares bit sequences and reports the first mismatch.
func AssertBitsEqual(t *testing.T, expected, actual []bool) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), "bit sequence length") {
		return false
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return assert.Fail(t, "bit mismatch",
				"bit %d: expected %v, got %v", i, expected[i], actual[i])
		}
	}
	return true
}
