// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/birdbrain/internal/activation"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

// Central differences in float32 are only accurate to a few 1e-3.
const (
	fdStep      = 1e-2
	fdTolerance = 1e-2
)

func newTestFeedforward(t *testing.T, sizes []int, act activation.Activation, seed int64) *Feedforward {
	t.Helper()
	net, err := NewFeedforward(FeedforwardConfig{
		Sizes:      sizes,
		Activation: act,
		Rand:       NewRand(seed),
	})
	require.NoError(t, err)
	return net
}

func TestNewFeedforward_Shapes(t *testing.T) {
	net := newTestFeedforward(t, []int{2, 3, 1}, activation.Sigmoid, 1)

	assert.Equal(t, []int{2, 3, 1}, net.Sizes())
	assert.Equal(t, 3, net.NumLayers())
	assert.Equal(t, "CPU", net.Backend().Name())

	weights := net.Weights()
	require.Len(t, weights, 2)
	assert.Equal(t, 3, weights[0].Rows)
	assert.Equal(t, 2, weights[0].Cols)
	assert.Equal(t, 1, weights[1].Rows)
	assert.Equal(t, 3, weights[1].Cols)

	for _, b := range net.Biases() {
		for _, v := range b {
			assert.Zero(t, v)
		}
	}

	// Fan-in scaled: every weight within ±1/sqrt(fanIn).
	for _, v := range weights[0].Data {
		assert.LessOrEqual(t, float64(v), 0.7072)
		assert.GreaterOrEqual(t, float64(v), -0.7072)
	}
}

func TestNewFeedforward_InvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   FeedforwardConfig
		field string
	}{
		{"single layer", FeedforwardConfig{Sizes: []int{5}, Activation: activation.Sigmoid}, "Sizes"},
		{"no layers", FeedforwardConfig{Activation: activation.Sigmoid}, "Sizes"},
		{"zero size", FeedforwardConfig{Sizes: []int{2, 0, 1}, Activation: activation.Sigmoid}, "Sizes"},
		{"missing activation", FeedforwardConfig{Sizes: []int{2, 1}}, "Activation"},
		{"unknown init", FeedforwardConfig{Sizes: []int{2, 1}, Activation: activation.Tanh, Init: WeightInit(9)}, "Init"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := NewFeedforward(tt.cfg)
			require.Error(t, err)
			assert.Nil(t, net)
			assert.ErrorIs(t, err, ErrConfiguration)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	_, err := NewFeedforward(FeedforwardConfig{Sizes: []int{2, 1}})
	assert.ErrorIs(t, err, activation.ErrUnknownActivation)
}

func TestFeedforward_Forward(t *testing.T) {
	net := newTestFeedforward(t, []int{2, 3, 1}, activation.Sigmoid, 2)

	activations, err := net.Feedforward(vecmath.Vector{0.5, -1})
	require.NoError(t, err)
	require.Len(t, activations, 2)
	assert.Len(t, activations[0], 3)
	assert.Len(t, activations[1], 1)
	assert.Greater(t, activations[1][0], float32(0))
	assert.Less(t, activations[1][0], float32(1))

	out, err := net.Output(vecmath.Vector{0.5, -1})
	require.NoError(t, err)
	assert.Equal(t, activations[1], out)

	_, err = net.Feedforward(vecmath.Vector{1, 2, 3})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestFeedforward_KnownWeights(t *testing.T) {
	net := newTestFeedforward(t, []int{2, 1}, activation.ReLU, 3)

	w, err := vecmath.NewMatrix(vecmath.Vector{2, -1}, 1, 2)
	require.NoError(t, err)
	require.NoError(t, net.SetWeights([]vecmath.Matrix{w}))
	require.NoError(t, net.SetBiases([]vecmath.Vector{{0.5}}))

	out, err := net.Output(vecmath.Vector{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, out[0], 1e-6)

	out, err = net.Output(vecmath.Vector{0, 3})
	require.NoError(t, err)
	assert.Zero(t, out[0])
}

func TestFeedforward_SetWeightsShape(t *testing.T) {
	net := newTestFeedforward(t, []int{2, 3, 1}, activation.Tanh, 4)

	err := net.SetWeights([]vecmath.Matrix{vecmath.ZeroMatrix(3, 2)})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	err = net.SetWeights([]vecmath.Matrix{vecmath.ZeroMatrix(2, 3), vecmath.ZeroMatrix(1, 3)})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	err = net.SetBiases([]vecmath.Vector{{0, 0}, {0}})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	// Stored weights are copies.
	weights := net.Weights()
	weights[0].Data[0] = 42
	assert.NotEqual(t, float32(42), net.Weights()[0].Data[0])
}

func TestFeedforward_BackpropagateReducesLoss(t *testing.T) {
	for _, act := range []activation.Activation{activation.Sigmoid, activation.Tanh} {
		t.Run(act.String(), func(t *testing.T) {
			net := newTestFeedforward(t, []int{3, 4, 2}, act, 5)
			input := vecmath.Vector{0.3, -0.2, 0.9}
			target := vecmath.Vector{0.8, 0.1}

			before, err := net.MSELoss(input, target)
			require.NoError(t, err)

			for range 5 {
				require.NoError(t, net.Backpropagate(input, target, 0.1))
			}

			after, err := net.MSELoss(input, target)
			require.NoError(t, err)
			assert.Less(t, after, before)
		})
	}
}

func TestFeedforward_GradientsMatchFiniteDifferences(t *testing.T) {
	net := newTestFeedforward(t, []int{3, 4, 2}, activation.Tanh, 6)
	input := vecmath.Vector{0.4, -0.7, 0.2}
	target := vecmath.Vector{0.5, -0.3}

	gradW, gradB, err := net.Gradients(input, target)
	require.NoError(t, err)

	// The backpropagated cost is ½Σ(o-t)², which is n·MSE.
	cost := func() float64 {
		loss, err := net.MSELoss(input, target)
		require.NoError(t, err)
		return float64(loss) * float64(len(target))
	}

	for l := range gradW {
		for i := range gradW[l].Data {
			weights := net.Weights()
			numeric := numericDerivative(t, float64(weights[l].Data[i]), func(v float32) {
				weights[l].Data[i] = v
				require.NoError(t, net.SetWeights(weights))
			}, cost)
			assert.InDelta(t, numeric, gradW[l].Data[i], fdTolerance, "layer %d weight %d", l, i)
		}

		for i := range gradB[l] {
			biases := net.Biases()
			numeric := numericDerivative(t, float64(biases[l][i]), func(v float32) {
				biases[l][i] = v
				require.NoError(t, net.SetBiases(biases))
			}, cost)
			assert.InDelta(t, numeric, gradB[l][i], fdTolerance, "layer %d bias %d", l, i)
		}
	}
}

// numericDerivative estimates d cost / d param by central differences around
// orig, then restores the parameter.
func numericDerivative(t *testing.T, orig float64, set func(float32), cost func() float64) float64 {
	t.Helper()
	d := fd.Derivative(func(v float64) float64 {
		set(float32(v))
		return cost()
	}, orig, &fd.Settings{Formula: fd.Central, Step: fdStep})
	set(float32(orig))
	return d
}

func TestFeedforward_GradientShapes(t *testing.T) {
	net := newTestFeedforward(t, []int{4, 3, 2}, activation.Sigmoid, 7)

	gradW, gradB, err := net.Gradients(vecmath.Vector{1, 0, 0, 1}, vecmath.Vector{1, 0})
	require.NoError(t, err)
	for l, w := range net.Weights() {
		assert.True(t, w.SameShape(gradW[l]), "layer %d", l)
		assert.Len(t, gradB[l], w.Rows)
	}

	_, _, err = net.Gradients(vecmath.Vector{1, 0, 0, 1}, vecmath.Vector{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestFeedforward_Losses(t *testing.T) {
	net := newTestFeedforward(t, []int{2, 2}, activation.Sigmoid, 8)
	require.NoError(t, net.SetWeights([]vecmath.Matrix{vecmath.ZeroMatrix(2, 2)}))

	// Zero weights and biases give sigmoid(0) = 0.5 on every output.
	mse, err := net.MSELoss(vecmath.Vector{1, 1}, vecmath.Vector{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.125, mse, 1e-6)

	ce, err := net.CrossEntropyLoss(vecmath.Vector{1, 1}, vecmath.Vector{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.6931472, ce, 1e-5)

	_, err = net.MSELoss(vecmath.Vector{1, 1}, vecmath.Vector{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestFeedforward_Combine(t *testing.T) {
	a := newTestFeedforward(t, []int{2, 3, 1}, activation.Sigmoid, 9)
	b := newTestFeedforward(t, []int{2, 3, 1}, activation.Sigmoid, 10)
	require.NoError(t, b.SetBiases([]vecmath.Vector{{1, 1, 1}, {1}}))

	c, err := a.Combine(b)
	require.NoError(t, err)

	wa, wb, wc := a.Weights(), b.Weights(), c.Weights()
	for l := range wc {
		for i := range wc[l].Data {
			assert.InDelta(t, (wa[l].Data[i]+wb[l].Data[i])/2, wc[l].Data[i], 1e-6)
		}
	}
	// Biases come from the receiver.
	assert.Equal(t, a.Biases(), c.Biases())

	// Inputs are untouched.
	assert.Equal(t, wa, a.Weights())

	other := newTestFeedforward(t, []int{2, 4, 1}, activation.Sigmoid, 11)
	_, err = a.Combine(other)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = a.Combine(nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestFeedforward_SetBackend(t *testing.T) {
	net := newTestFeedforward(t, []int{2, 1}, activation.Sigmoid, 12)
	err := net.SetBackend(nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}
