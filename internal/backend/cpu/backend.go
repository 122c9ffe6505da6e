// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu implements the synchronous CPU backend on top of vecmath's
// BLAS routines.
package cpu

import (
	"github.com/born-ml/birdbrain/internal/compute"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

// CPUBackend executes every primitive directly on the calling goroutine.
type CPUBackend struct {
	kind compute.Kind
}

// Compile-time check that CPUBackend implements compute.Backend.
var _ compute.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		kind: compute.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Kind returns the execution target.
func (cpu *CPUBackend) Kind() compute.Kind {
	return cpu.kind
}

// Add performs element-wise addition.
func (cpu *CPUBackend) Add(x, y vecmath.Vector) (vecmath.Vector, error) {
	if err := compute.CheckPair("add", x, y); err != nil {
		return nil, err
	}
	return vecmath.Add(x, y), nil
}

// Sub performs element-wise subtraction.
func (cpu *CPUBackend) Sub(x, y vecmath.Vector) (vecmath.Vector, error) {
	if err := compute.CheckPair("sub", x, y); err != nil {
		return nil, err
	}
	return vecmath.Sub(x, y), nil
}

// Mul performs element-wise multiplication.
func (cpu *CPUBackend) Mul(x, y vecmath.Vector) (vecmath.Vector, error) {
	if err := compute.CheckPair("mul", x, y); err != nil {
		return nil, err
	}
	return vecmath.Mul(x, y), nil
}

// Div performs element-wise division.
func (cpu *CPUBackend) Div(x, y vecmath.Vector) (vecmath.Vector, error) {
	if err := compute.CheckPair("div", x, y); err != nil {
		return nil, err
	}
	return vecmath.Div(x, y), nil
}

// MVMul computes a·x.
func (cpu *CPUBackend) MVMul(a vecmath.Matrix, x vecmath.Vector) (vecmath.Vector, error) {
	if err := compute.CheckMV(a, x); err != nil {
		return nil, err
	}
	return vecmath.MVMul(a, x), nil
}

// Outer computes x·yᵀ.
func (cpu *CPUBackend) Outer(x, y vecmath.Vector) (vecmath.Matrix, error) {
	return vecmath.Outer(x, y), nil
}
