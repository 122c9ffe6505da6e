//go:build windows

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// maxPooledPerKey bounds how many idle buffers are kept per size and usage.
const maxPooledPerKey = 8

type poolKey struct {
	size  uint64
	usage wgpu.BufferUsage
}

// bufferPool reuses result and staging buffers across dispatches. Network
// passes repeat the same handful of vector lengths, so buffers are matched
// by exact size and usage.
type bufferPool struct {
	device *wgpu.Device

	mu   sync.Mutex
	idle map[poolKey][]*wgpu.Buffer

	hits   uint64
	misses uint64
}

func newBufferPool(device *wgpu.Device) *bufferPool {
	return &bufferPool{
		device: device,
		idle:   make(map[poolKey][]*wgpu.Buffer),
	}
}

// acquire returns an idle buffer of exactly size bytes and the given usage,
// creating one if none is available.
func (p *bufferPool) acquire(size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := poolKey{size, usage}
	if free := p.idle[key]; len(free) > 0 {
		buf := free[len(free)-1]
		p.idle[key] = free[:len(free)-1]
		p.hits++
		return buf
	}

	p.misses++
	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  size,
	})
}

// release hands buf back to the pool, or frees it when the pool is full.
func (p *bufferPool) release(buf *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := poolKey{size, usage}
	if len(p.idle[key]) >= maxPooledPerKey {
		buf.Release()
		return
	}
	p.idle[key] = append(p.idle[key], buf)
}

// clear frees every idle buffer.
func (p *bufferPool) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, free := range p.idle {
		for _, buf := range free {
			buf.Release()
		}
		delete(p.idle, key)
	}
}

// stats reports pool hits, misses and the number of idle buffers.
func (p *bufferPool) stats() (hits, misses uint64, idle int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, free := range p.idle {
		idle += len(free)
	}
	return p.hits, p.misses, idle
}
