// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/birdbrain/internal/activation"
	"github.com/born-ml/birdbrain/internal/backend/webgpu"
	"github.com/born-ml/birdbrain/internal/compute"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

// gpuTolerance is the maximum allowed CPU/GPU difference for network outputs.
const gpuTolerance = 1e-4

func newGPUBackend(t *testing.T) *webgpu.Backend {
	t.Helper()
	gpu, err := webgpu.New()
	if err != nil {
		require.ErrorIs(t, err, compute.ErrUnavailable)
		t.Skipf("WebGPU not available on this system: %v", err)
	}
	t.Cleanup(gpu.Release)
	return gpu
}

func TestFeedforward_BackendEquivalence(t *testing.T) {
	gpu := newGPUBackend(t)

	host := newTestFeedforward(t, []int{3, 5, 2}, activation.Sigmoid, 21)
	dev := newTestFeedforward(t, []int{3, 5, 2}, activation.Sigmoid, 21)
	require.NoError(t, dev.SetBackend(gpu))

	input := vecmath.Vector{0.1, -0.4, 0.8}
	target := vecmath.Vector{1, 0}

	want, err := host.Output(input)
	require.NoError(t, err)
	got, err := dev.Output(input)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, got, gpuTolerance)

	require.NoError(t, host.Backpropagate(input, target, 0.5))
	require.NoError(t, dev.Backpropagate(input, target, 0.5))
	for l, w := range host.Weights() {
		assert.InDeltaSlice(t, w.Data, dev.Weights()[l].Data, gpuTolerance, "layer %d", l)
	}
}

func TestRecurrent_BackendEquivalence(t *testing.T) {
	gpu := newGPUBackend(t)

	host := newTestRecurrent(t, 3, 4, activation.Tanh, 22)
	dev := newTestRecurrent(t, 3, 4, activation.Tanh, 22)
	require.NoError(t, dev.SetBackend(gpu))

	seq := oneHotSequence(3, 0, 1, 2, 1)
	targets := []int{1, 2, 1, 0}

	want, err := host.Gradients(seq, targets)
	require.NoError(t, err)
	got, err := dev.Gradients(seq, targets)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want.Whx.Data, got.Whx.Data, gpuTolerance)
	assert.InDeltaSlice(t, want.Why.Data, got.Why.Data, gpuTolerance)
	assert.InDeltaSlice(t, want.Whh.Data, got.Whh.Data, gpuTolerance)
}

func TestLSTM_BackendEquivalence(t *testing.T) {
	gpu := newGPUBackend(t)

	host := newTestLSTM(t, 3, 3, 23)
	dev := newTestLSTM(t, 3, 3, 23)
	require.NoError(t, dev.SetBackend(gpu))

	seq := oneHotSequence(3, 2, 0, 1)
	want, err := host.Feedforward(seq)
	require.NoError(t, err)
	got, err := dev.Feedforward(seq)
	require.NoError(t, err)
	for step := range want.Probs {
		assert.InDeltaSlice(t, want.Hidden[step], got.Hidden[step], gpuTolerance)
		assert.InDeltaSlice(t, want.Probs[step], got.Probs[step], gpuTolerance)
	}
}
