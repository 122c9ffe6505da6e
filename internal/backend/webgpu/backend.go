//go:build windows

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu implements the GPU compute backend.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
//
// Every primitive follows the same sequence: acquire the kernel's pipeline,
// upload operands into storage buffers, dispatch ceil(n/128) workgroups,
// block until the result is mapped, and copy it back to host memory.
package webgpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/birdbrain/internal/compute"
)

// Backend executes network primitives on a GPU through WebGPU.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Kernel cache, only populated when pipeline caching is enabled.
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline

	// Result and staging buffers reused across dispatches.
	buffers *bufferPool

	// dispatchMu serializes kernel dispatches: one dispatch is fully read
	// back before the next one starts.
	dispatchMu sync.Mutex

	logger         *slog.Logger
	cachePipelines bool
}

var _ compute.Backend = (*Backend)(nil)

// New acquires a GPU adapter, device and queue.
// Returns an error wrapping compute.ErrUnavailable if WebGPU is not available.
func New(opts ...Option) (backend *Backend, err error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("webgpu: native library not available: %v: %w", r, compute.ErrUnavailable)
		}
	}()

	if initErr := wgpu.Init(); initErr != nil {
		return nil, fmt.Errorf("webgpu: init: %v: %w", initErr, compute.ErrUnavailable)
	}

	instance, instErr := wgpu.CreateInstance(nil)
	if instErr != nil {
		return nil, fmt.Errorf("webgpu: create instance: %v: %w", instErr, compute.ErrUnavailable)
	}

	power := wgpu.PowerPreferenceHighPerformance
	if o.powerPreference == LowPower {
		power = wgpu.PowerPreferenceLowPower
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: power,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %v: %w", adapterErr, compute.ErrUnavailable)
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %v: %w", deviceErr, compute.ErrUnavailable)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue: %w", compute.ErrUnavailable)
	}

	o.logger.Debug("webgpu device acquired",
		"pipeline_cache", o.cachePipelines,
		"low_power", o.powerPreference == LowPower)

	return &Backend{
		instance:       instance,
		adapter:        adapter,
		device:         device,
		queue:          queue,
		shaders:        make(map[string]*wgpu.ShaderModule),
		pipelines:      make(map[string]*wgpu.ComputePipeline),
		buffers:        newBufferPool(device),
		logger:         o.logger,
		cachePipelines: o.cachePipelines,
	}, nil
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() (available bool) {
	b, err := New()
	if err != nil {
		return false
	}
	b.Release()
	return true
}

// Release releases all WebGPU resources.
// Must be called when the backend is no longer needed.
func (b *Backend) Release() {
	b.dispatchMu.Lock()
	defer b.dispatchMu.Unlock()

	if b.buffers != nil {
		hits, misses, idle := b.buffers.stats()
		b.logger.Debug("webgpu buffer pool", "hits", hits, "misses", misses, "idle", idle)
		b.buffers.clear()
		b.buffers = nil
	}

	for _, p := range b.pipelines {
		p.Release()
	}
	b.pipelines = nil

	for _, s := range b.shaders {
		s.Release()
	}
	b.shaders = nil

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
	b.logger.Debug("webgpu backend released")
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Kind returns compute.GPU.
func (b *Backend) Kind() compute.Kind {
	return compute.GPU
}
