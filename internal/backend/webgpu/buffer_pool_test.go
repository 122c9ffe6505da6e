//go:build windows

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package webgpu

import (
	"testing"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/birdbrain/internal/vecmath"
)

func TestBufferPoolAcquireRelease(t *testing.T) {
	backend := newTestBackend(t)
	pool := newBufferPool(backend.device)
	defer pool.clear()

	usage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc
	buf := pool.acquire(1024, usage)
	hits, misses, idle := pool.stats()
	assert.Equal(t, uint64(0), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, 0, idle)

	pool.release(buf, 1024, usage)
	_, _, idle = pool.stats()
	assert.Equal(t, 1, idle)

	again := pool.acquire(1024, usage)
	assert.Same(t, buf, again)
	hits, _, _ = pool.stats()
	assert.Equal(t, uint64(1), hits)

	// A different size misses.
	other := pool.acquire(2048, usage)
	_, misses, _ = pool.stats()
	assert.Equal(t, uint64(2), misses)

	pool.release(again, 1024, usage)
	pool.release(other, 2048, usage)
	pool.clear()
	_, _, idle = pool.stats()
	assert.Equal(t, 0, idle)
}

func TestBufferPoolBounded(t *testing.T) {
	backend := newTestBackend(t)
	pool := newBufferPool(backend.device)
	defer pool.clear()

	usage := wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst
	bufs := make([]*wgpu.Buffer, maxPooledPerKey+3)
	for i := range bufs {
		bufs[i] = pool.acquire(64, usage)
	}
	for _, b := range bufs {
		pool.release(b, 64, usage)
	}
	_, _, idle := pool.stats()
	assert.Equal(t, maxPooledPerKey, idle)
}

func TestBufferPoolReusedAcrossDispatches(t *testing.T) {
	backend := newTestBackend(t)

	for range 4 {
		got, err := backend.Mul(vecmath.Vector{1, 2, 3}, vecmath.Vector{2, 2, 2})
		require.NoError(t, err)
		assertEquivalent(t, vecmath.Vector{2, 4, 6}, got)
	}

	hits, _, _ := backend.buffers.stats()
	assert.Positive(t, hits)
}
