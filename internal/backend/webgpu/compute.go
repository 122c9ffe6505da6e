//go:build windows

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
)

// dispatch describes one kernel launch. Storage inputs are bound at 0..n-1,
// the result at n, and the uniform parameters at n+1.
type dispatch struct {
	kernel    kernel
	inputs    [][]float32
	resultLen int
	params    []byte
	threads   int
}

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached when pipeline caching is enabled.
func (b *Backend) compileShader(k kernel) *wgpu.ShaderModule {
	if b.cachePipelines {
		if shader, ok := b.shaders[k.name]; ok {
			return shader
		}
	}

	shader := b.device.CreateShaderModuleWGSL(k.code)
	b.logger.Debug("webgpu shader compiled", "kernel", k.name)

	if b.cachePipelines {
		b.shaders[k.name] = shader
	}
	return shader
}

// acquirePipeline returns the compute pipeline for k and a release func that
// frees it when caching is disabled.
func (b *Backend) acquirePipeline(k kernel) (*wgpu.ComputePipeline, func()) {
	if b.cachePipelines {
		if pipeline, ok := b.pipelines[k.name]; ok {
			return pipeline, func() {}
		}
	}

	shader := b.compileShader(k)
	// Create compute pipeline with auto layout (nil layout)
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	if b.cachePipelines {
		b.pipelines[k.name] = pipeline
		return pipeline, func() {}
	}
	return pipeline, func() {
		pipeline.Release()
		shader.Release()
	}
}

// createBuffer creates a GPU buffer and uploads initial data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer padded to 16 bytes.
func (b *Backend) createUniformBuffer(data []byte) (*wgpu.Buffer, uint64) {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15

	padded := make([]byte, alignedSize)
	copy(padded, data)
	return b.createBuffer(padded, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst), alignedSize
}

// readBuffer reads data back from a GPU buffer to CPU memory.
// Uses a staging buffer since storage buffers can't be mapped directly.
// MapAsync blocks until the queue has drained up to the copy.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingUsage := wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst
	stagingBuffer := b.buffers.acquire(size, stagingUsage)

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	if err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		stagingBuffer.Release()
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)

	stagingBuffer.Unmap()
	b.buffers.release(stagingBuffer, size, stagingUsage)

	return result, nil
}

// run executes d and returns the result buffer as float32 values.
func (b *Backend) run(d dispatch) ([]float32, error) {
	b.dispatchMu.Lock()
	defer b.dispatchMu.Unlock()

	if b.device == nil {
		return nil, fmt.Errorf("webgpu: %s: backend released", d.kernel.name)
	}

	pipeline, releasePipeline := b.acquirePipeline(d.kernel)
	defer releasePipeline()

	entries := make([]wgpu.BindGroupEntry, 0, len(d.inputs)+2)
	for i, in := range d.inputs {
		data := float32Bytes(in)
		buf := b.createBuffer(data, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		defer buf.Release()
		//nolint:gosec // G115: binding indices are small.
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), buf, 0, uint64(len(data))))
	}

	//nolint:gosec // G115: result length is non-negative.
	resultSize := uint64(d.resultLen * 4)
	resultUsage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
	bufferResult := b.buffers.acquire(resultSize, resultUsage)
	defer b.buffers.release(bufferResult, resultSize, resultUsage)
	//nolint:gosec // G115: binding indices are small.
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(d.inputs)), bufferResult, 0, resultSize))

	bufferParams, paramsSize := b.createUniformBuffer(d.params)
	defer bufferParams.Release()
	//nolint:gosec // G115: binding indices are small.
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(d.inputs)+1), bufferParams, 0, paramsSize))

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, entries)
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(workgroups(d.threads), 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	raw, err := b.readBuffer(bufferResult, resultSize)
	if err != nil {
		return nil, fmt.Errorf("webgpu: %s: %w", d.kernel.name, err)
	}
	return bytesFloat32(raw), nil
}

func float32Bytes(v []float32) []byte {
	out := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

func bytesFloat32(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

// uniforms packs u32 and f32 fields into a little-endian params block.
func uniforms(fields ...any) []byte {
	out := make([]byte, 0, 16)
	for _, f := range fields {
		switch v := f.(type) {
		case int:
			//nolint:gosec // G115: dimensions are non-negative and small.
			out = binary.LittleEndian.AppendUint32(out, uint32(v))
		case float32:
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
		default:
			panic(fmt.Sprintf("webgpu: unsupported uniform field %T", f))
		}
	}
	return out
}
