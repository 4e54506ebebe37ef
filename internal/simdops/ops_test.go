package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor_SelectsImplementation(t *testing.T) {
	assert.Equal(t, "simd", For[float64](true).Name)
	assert.Equal(t, "scalar", For[float64](false).Name)
	assert.Equal(t, "simd", For[float32](true).Name)
	assert.Equal(t, "scalar", For[float32](false).Name)
}

func TestOps_SIMDMatchesScalar(t *testing.T) {
	a := make([]float64, 44) // one symbol window at 44.1kHz / 1000 baud
	b := make([]float64, 44)
	for i := range a {
		a[i] = float64(i%7) - 3
		b[i] = float64(i%5) * 0.5
	}

	simd, scalar := For[float64](true), For[float64](false)

	assert.InDelta(t, scalar.Sum(a), simd.Sum(a), 1e-9)
	assert.InDelta(t, scalar.DotProductUnsafe(a, b), simd.DotProductUnsafe(a, b), 1e-9)

	dstSIMD := make([]float64, len(a))
	dstScalar := make([]float64, len(a))
	simd.Scale(dstSIMD, a, 32767)
	scalar.Scale(dstScalar, a, 32767)
	assert.Equal(t, dstScalar, dstSIMD)
}

func TestOps_ZeroWindowSumsToZero(t *testing.T) {
	for _, useSIMD := range []bool{true, false} {
		assert.Zero(t, For[float64](useSIMD).Sum(make([]float64, 8)))
		assert.Zero(t, For[float32](useSIMD).Sum(make([]float32, 8)))
	}
}

func TestOps_EmptyInput(t *testing.T) {
	ops := For[float64](false)
	assert.Zero(t, ops.Sum(nil))
	assert.Zero(t, ops.DotProductUnsafe(nil, nil))
}

// BenchmarkSumWindow measures integrating one symbol window through the Ops table.
func BenchmarkSumWindow(b *testing.B) {
	for _, useSIMD := range []bool{true, false} {
		ops := For[float64](useSIMD)
		window := make([]float64, 44)
		for i := range window {
			window[i] = float64(i) * 0.01
		}
		b.Run(ops.Name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = ops.Sum(window)
			}
		})
	}
}
