//go:build !windows

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package webgpu

import (
	"fmt"

	"github.com/born-ml/birdbrain/internal/activation"
	"github.com/born-ml/birdbrain/internal/compute"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

// Backend is the WebGPU backend. The wgpu-native binding is only wired on
// windows; elsewhere New always fails with compute.ErrUnavailable.
type Backend struct{}

var _ compute.Backend = (*Backend)(nil)

var errUnavailable = fmt.Errorf("webgpu: %w on this platform", compute.ErrUnavailable)

// New always returns compute.ErrUnavailable on this platform.
func New(_ ...Option) (*Backend, error) {
	return nil, errUnavailable
}

// IsAvailable reports false on this platform.
func IsAvailable() bool {
	return false
}

// Release is a no-op.
func (b *Backend) Release() {}

// Name returns the backend name.
func (b *Backend) Name() string { return "WebGPU (unavailable)" }

// Kind returns compute.GPU.
func (b *Backend) Kind() compute.Kind { return compute.GPU }

//nolint:revive // Stub methods share one body.
func (b *Backend) Add(x, y vecmath.Vector) (vecmath.Vector, error) { return nil, errUnavailable }

//nolint:revive
func (b *Backend) Sub(x, y vecmath.Vector) (vecmath.Vector, error) { return nil, errUnavailable }

//nolint:revive
func (b *Backend) Mul(x, y vecmath.Vector) (vecmath.Vector, error) { return nil, errUnavailable }

//nolint:revive
func (b *Backend) Div(x, y vecmath.Vector) (vecmath.Vector, error) { return nil, errUnavailable }

//nolint:revive
func (b *Backend) AddScalar(x vecmath.Vector, c float32) (vecmath.Vector, error) {
	return nil, errUnavailable
}

//nolint:revive
func (b *Backend) SubScalar(x vecmath.Vector, c float32) (vecmath.Vector, error) {
	return nil, errUnavailable
}

//nolint:revive
func (b *Backend) MulScalar(x vecmath.Vector, c float32) (vecmath.Vector, error) {
	return nil, errUnavailable
}

//nolint:revive
func (b *Backend) DivScalar(x vecmath.Vector, c float32) (vecmath.Vector, error) {
	return nil, errUnavailable
}

//nolint:revive
func (b *Backend) MVMul(a vecmath.Matrix, x vecmath.Vector) (vecmath.Vector, error) {
	return nil, errUnavailable
}

//nolint:revive
func (b *Backend) Outer(x, y vecmath.Vector) (vecmath.Matrix, error) {
	return vecmath.Matrix{}, errUnavailable
}

//nolint:revive
func (b *Backend) Activate(act activation.Activation, x vecmath.Vector) (vecmath.Vector, error) {
	return nil, errUnavailable
}

//nolint:revive
func (b *Backend) ActivatePrime(act activation.Activation, x vecmath.Vector) (vecmath.Vector, error) {
	return nil, errUnavailable
}

//nolint:revive
func (b *Backend) Softmax(x vecmath.Vector) (vecmath.Vector, error) { return nil, errUnavailable }
