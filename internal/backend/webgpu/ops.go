//go:build windows

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package webgpu

import (
	"github.com/born-ml/birdbrain/internal/activation"
	"github.com/born-ml/birdbrain/internal/compute"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

// runBinaryOp executes an element-wise binary kernel on GPU.
func (b *Backend) runBinaryOp(k kernel, x, y vecmath.Vector) (vecmath.Vector, error) {
	if err := compute.CheckPair(k.name, x, y); err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return vecmath.Vector{}, nil
	}
	return b.run(dispatch{
		kernel:    k,
		inputs:    [][]float32{x, y},
		resultLen: len(x),
		params:    uniforms(len(x)),
		threads:   len(x),
	})
}

// runScalarOp executes an element-wise kernel with a broadcast scalar.
func (b *Backend) runScalarOp(k kernel, x vecmath.Vector, c float32) (vecmath.Vector, error) {
	if len(x) == 0 {
		return vecmath.Vector{}, nil
	}
	return b.run(dispatch{
		kernel:    k,
		inputs:    [][]float32{x},
		resultLen: len(x),
		params:    uniforms(len(x), c),
		threads:   len(x),
	})
}

// runUnaryOp executes an element-wise unary kernel on GPU.
func (b *Backend) runUnaryOp(k kernel, x vecmath.Vector) (vecmath.Vector, error) {
	if len(x) == 0 {
		return vecmath.Vector{}, nil
	}
	return b.run(dispatch{
		kernel:    k,
		inputs:    [][]float32{x},
		resultLen: len(x),
		params:    uniforms(len(x)),
		threads:   len(x),
	})
}

// Add performs element-wise addition.
func (b *Backend) Add(x, y vecmath.Vector) (vecmath.Vector, error) {
	return b.runBinaryOp(addKernel, x, y)
}

// Sub performs element-wise subtraction.
func (b *Backend) Sub(x, y vecmath.Vector) (vecmath.Vector, error) {
	return b.runBinaryOp(subKernel, x, y)
}

// Mul performs element-wise multiplication.
func (b *Backend) Mul(x, y vecmath.Vector) (vecmath.Vector, error) {
	return b.runBinaryOp(mulKernel, x, y)
}

// Div performs element-wise division.
func (b *Backend) Div(x, y vecmath.Vector) (vecmath.Vector, error) {
	return b.runBinaryOp(divKernel, x, y)
}

// AddScalar adds c to every element of x.
func (b *Backend) AddScalar(x vecmath.Vector, c float32) (vecmath.Vector, error) {
	return b.runScalarOp(addScalarKernel, x, c)
}

// SubScalar subtracts c from every element of x.
func (b *Backend) SubScalar(x vecmath.Vector, c float32) (vecmath.Vector, error) {
	return b.runScalarOp(subScalarKernel, x, c)
}

// MulScalar multiplies every element of x by c.
func (b *Backend) MulScalar(x vecmath.Vector, c float32) (vecmath.Vector, error) {
	return b.runScalarOp(mulScalarKernel, x, c)
}

// DivScalar divides every element of x by c.
func (b *Backend) DivScalar(x vecmath.Vector, c float32) (vecmath.Vector, error) {
	return b.runScalarOp(divScalarKernel, x, c)
}

// MVMul computes a·x with one invocation per output row.
func (b *Backend) MVMul(a vecmath.Matrix, x vecmath.Vector) (vecmath.Vector, error) {
	if err := compute.CheckMV(a, x); err != nil {
		return nil, err
	}
	if a.Rows == 0 || a.Cols == 0 {
		return vecmath.Zeros(a.Rows), nil
	}
	return b.run(dispatch{
		kernel:    mvMulKernel,
		inputs:    [][]float32{a.Data, x},
		resultLen: a.Rows,
		params:    uniforms(a.Rows, a.Cols),
		threads:   a.Rows,
	})
}

// Outer computes x·yᵀ.
func (b *Backend) Outer(x, y vecmath.Vector) (vecmath.Matrix, error) {
	if len(x) == 0 || len(y) == 0 {
		return vecmath.ZeroMatrix(len(x), len(y)), nil
	}
	data, err := b.run(dispatch{
		kernel:    outerKernel,
		inputs:    [][]float32{x, y},
		resultLen: len(x) * len(y),
		params:    uniforms(len(x), len(y)),
		threads:   len(x) * len(y),
	})
	if err != nil {
		return vecmath.Matrix{}, err
	}
	return vecmath.NewMatrix(data, len(x), len(y))
}

// Activate applies act elementwise.
func (b *Backend) Activate(act activation.Activation, x vecmath.Vector) (vecmath.Vector, error) {
	forward, _, err := activationKernels(act)
	if err != nil {
		return nil, err
	}
	return b.runUnaryOp(forward, x)
}

// ActivatePrime applies the derivative of act to the pre-activations x.
func (b *Backend) ActivatePrime(act activation.Activation, x vecmath.Vector) (vecmath.Vector, error) {
	_, prime, err := activationKernels(act)
	if err != nil {
		return nil, err
	}
	return b.runUnaryOp(prime, x)
}

// Softmax computes a numerically stable softmax over x.
func (b *Backend) Softmax(x vecmath.Vector) (vecmath.Vector, error) {
	return b.runUnaryOp(softmaxKernel, x)
}
