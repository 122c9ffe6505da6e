// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated network primitives.
//
// The backend is implemented on windows through wgpu-native. On other
// platforms New returns an error wrapping nn.ErrBackendUnavailable so
// callers can fall back to the CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/birdbrain/backend/cpu"
//	    "github.com/born-ml/birdbrain/backend/webgpu"
//	    "github.com/born-ml/birdbrain/nn"
//	)
//
//	func main() {
//	    var backend nn.Backend = cpu.New()
//	    if gpu, err := webgpu.New(); err == nil {
//	        defer gpu.Release()
//	        backend = gpu
//	    }
//	}
package webgpu

import (
	"log/slog"

	internalwebgpu "github.com/born-ml/birdbrain/internal/backend/webgpu"
	"github.com/born-ml/birdbrain/internal/compute"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Option configures a Backend.
type Option = internalwebgpu.Option

// PowerPreference selects which adapter to request.
type PowerPreference = internalwebgpu.PowerPreference

// Adapter power profiles.
const (
	HighPerformance = internalwebgpu.HighPerformance
	LowPower        = internalwebgpu.LowPower
)

// Compile-time check that Backend implements the compute interface.
var _ compute.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// This function initializes the WebGPU device and returns a backend
// ready for use. Call Release() when done to free GPU resources.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
func New(opts ...Option) (*Backend, error) {
	return internalwebgpu.New(opts...)
}

// IsAvailable checks if WebGPU is available on the current system.
//
// Example:
//
//	if webgpu.IsAvailable() {
//	    gpu, _ := webgpu.New()
//	    backend = gpu
//	} else {
//	    backend = cpu.New()
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}

// WithLogger sets the logger used for device and pipeline lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return internalwebgpu.WithLogger(logger)
}

// WithPipelineCache controls whether compiled kernels are reused across calls.
func WithPipelineCache(enabled bool) Option {
	return internalwebgpu.WithPipelineCache(enabled)
}

// WithPowerPreference selects the adapter power profile.
func WithPowerPreference(p PowerPreference) Option {
	return internalwebgpu.WithPowerPreference(p)
}
