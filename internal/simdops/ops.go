// Package simdops provides generic SIMD operations for float32 and float64 types.
// This enables a single correlator codebase to support both precision levels
// without duplication, with a plain Go fallback for every operation.
//
// With Profile-Guided Optimization (Go 1.22+), function pointer calls in hot paths
// can be devirtualized and inlined, achieving near-zero overhead.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides the vector operations used by the modem for type F.
type Ops[F Float] struct {
	// Name identifies the implementation ("simd" or "scalar").
	Name string

	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []F) F

	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)
}

// Pre-instantiated operations for each float type.
var (
	ops32 = Ops[float32]{
		Name:             "simd",
		DotProductUnsafe: f32.DotProductUnsafe,
		Sum:              f32.Sum,
		Scale:            f32.Scale,
	}
	ops64 = Ops[float64]{
		Name:             "simd",
		DotProductUnsafe: f64.DotProductUnsafe,
		Sum:              f64.Sum,
		Scale:            f64.Scale,
	}
	scalar32 = scalarOps[float32]()
	scalar64 = scalarOps[float64]()
)

// For returns the Ops instance for type F. When useSIMD is false the plain Go
// implementation is returned; it sums strictly left to right and rounds
// every product before adding it.
func For[F Float](useSIMD bool) *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		src := &ops32
		if !useSIMD {
			src = &scalar32
		}
		ops, ok := any(src).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		src := &ops64
		if !useSIMD {
			src = &scalar64
		}
		ops, ok := any(src).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

func scalarOps[F Float]() Ops[F] {
	return Ops[F]{
		Name: "scalar",
		DotProductUnsafe: func(a, b []F) F {
			var sum F
			for i := range a {
				// The conversion rounds the product, which keeps the compiler
				// from fusing it into a multiply-add.
				sum += F(a[i] * b[i])
			}
			return sum
		},
		Sum: func(a []F) F {
			var sum F
			for _, v := range a {
				sum += v
			}
			return sum
		},
		Scale: func(dst, a []F, s F) {
			for i, v := range a {
				dst[i] = v * s
			}
		},
	}
}
