// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package vecmath implements the vector and matrix primitives used by the
// networks: elementwise arithmetic, reductions, and BLAS-style products on
// flat float32 buffers.
//
// Level 1 and level 2 products go through gonum's blas32. Elementwise
// transcendental functions use math32 so that results stay in float32.
//
// Every function returns a new buffer unless its name ends in InPlace.
package vecmath

import (
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/blas/blas32"
)

// Vector is a flat ordered sequence of float32 values.
type Vector []float32

// Zeros returns a zero vector of length n.
func Zeros(n int) Vector {
	return make(Vector, n)
}

// Full returns a vector of length n filled with c.
func Full(n int, c float32) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = c
	}
	return v
}

// OneHot returns a vector of length n with a 1 at index k.
func OneHot(n, k int) Vector {
	if k < 0 || k >= n {
		panic(&ShapeError{Op: "onehot", Want: n, Got: k})
	}
	v := make(Vector, n)
	v[k] = 1
	return v
}

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Len returns the dimension of v.
func (v Vector) Len() int {
	return len(v)
}

// Sum returns the sum of the elements of v.
func (v Vector) Sum() float32 { return Sum(v) }

// Max returns the largest element of v.
func (v Vector) Max() float32 { return Max(v) }

// Argmax returns the index of the largest element of v.
func (v Vector) Argmax() int { return Argmax(v) }

func (v Vector) blas() blas32.Vector {
	return blas32.Vector{N: len(v), Inc: 1, Data: v}
}

// Add returns x + y.
func Add(x, y Vector) Vector {
	mustLen("add", len(x), len(y))
	out := y.Clone()
	blas32.Axpy(1, x.blas(), out.blas())
	return out
}

// Sub returns x - y.
func Sub(x, y Vector) Vector {
	mustLen("sub", len(x), len(y))
	out := x.Clone()
	blas32.Axpy(-1, y.blas(), out.blas())
	return out
}

// Mul returns the elementwise product x ⊙ y.
func Mul(x, y Vector) Vector {
	mustLen("mul", len(x), len(y))
	out := make(Vector, len(x))
	for i := range x {
		out[i] = x[i] * y[i]
	}
	return out
}

// Div returns the elementwise quotient x / y.
func Div(x, y Vector) Vector {
	mustLen("div", len(x), len(y))
	out := make(Vector, len(x))
	for i := range x {
		out[i] = x[i] / y[i]
	}
	return out
}

// AddScalar returns x + c.
func AddScalar(x Vector, c float32) Vector {
	out := make(Vector, len(x))
	for i := range x {
		out[i] = x[i] + c
	}
	return out
}

// SubScalar returns x - c.
func SubScalar(x Vector, c float32) Vector {
	return AddScalar(x, -c)
}

// MulScalar returns c * x.
func MulScalar(x Vector, c float32) Vector {
	out := x.Clone()
	blas32.Scal(c, out.blas())
	return out
}

// DivScalar returns x / c.
func DivScalar(x Vector, c float32) Vector {
	out := make(Vector, len(x))
	for i := range x {
		out[i] = x[i] / c
	}
	return out
}

// AddScaledInPlace performs dst += alpha * src.
func AddScaledInPlace(dst Vector, alpha float32, src Vector) {
	mustLen("axpy", len(dst), len(src))
	blas32.Axpy(alpha, src.blas(), dst.blas())
}

// Exp returns e^x elementwise.
func Exp(x Vector) Vector {
	return apply(x, math32.Exp)
}

// Log returns ln(x) elementwise. Non-positive inputs yield -Inf or NaN.
func Log(x Vector) Vector {
	return apply(x, math32.Log)
}

// Tanh returns tanh(x) elementwise.
func Tanh(x Vector) Vector {
	return apply(x, math32.Tanh)
}

// Square returns x² elementwise.
func Square(x Vector) Vector {
	return apply(x, func(v float32) float32 { return v * v })
}

// Neg returns -x.
func Neg(x Vector) Vector {
	return apply(x, func(v float32) float32 { return -v })
}

func apply(x Vector, f func(float32) float32) Vector {
	out := make(Vector, len(x))
	for i, v := range x {
		out[i] = f(v)
	}
	return out
}

// Sum returns the sum of the elements of x.
func Sum(x Vector) float32 {
	var s float32
	for _, v := range x {
		s += v
	}
	return s
}

// Dot returns the inner product of x and y.
func Dot(x, y Vector) float32 {
	mustLen("dot", len(x), len(y))
	return blas32.Dot(x.blas(), y.blas())
}

// Max returns the largest element of x, or -Inf for an empty vector.
func Max(x Vector) float32 {
	m := math32.Inf(-1)
	for _, v := range x {
		if v > m {
			m = v
		}
	}
	return m
}

// Argmax returns the index of the largest element of x, or -1 when x is empty.
// Ties resolve to the lowest index.
func Argmax(x Vector) int {
	best := -1
	m := math32.Inf(-1)
	for i, v := range x {
		if best < 0 || v > m {
			best, m = i, v
		}
	}
	return best
}
