// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"
	"slices"

	"github.com/born-ml/birdbrain/internal/activation"
	"github.com/born-ml/birdbrain/internal/compute"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

// Feedforward is a layered dense network.
//
// Layer l (1-based over sizes) computes z = W·a + b and a' = act(z), with
// W of shape sizes[l] x sizes[l-1]. Training is plain gradient descent on
// one example at a time.
//
// A Feedforward is not safe for concurrent use.
//
// Example:
//
//	net, err := nn.NewFeedforward(nn.FeedforwardConfig{
//	    Sizes:      []int{2, 3, 1},
//	    Activation: activation.Sigmoid,
//	})
//	activations, err := net.Feedforward(vecmath.Vector{0, 1})
type Feedforward struct {
	sizes   []int
	weights []vecmath.Matrix // weights[l-1] is sizes[l] x sizes[l-1]
	biases  []vecmath.Vector // biases[l-1] has sizes[l] entries
	act     activation.Activation
	backend compute.Backend
}

// feedforwardTrace keeps every pre-activation and activation of one pass.
// activations[0] is the input.
type feedforwardTrace struct {
	zs          []vecmath.Vector
	activations []vecmath.Vector
}

// NewFeedforward creates a feedforward network.
//
// Biases start at zero; weights use the configured initializer with the
// previous layer size as fan-in.
func NewFeedforward(cfg FeedforwardConfig) (*Feedforward, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := randOrDefault(cfg.Rand)

	n := &Feedforward{
		sizes:   slices.Clone(cfg.Sizes),
		act:     cfg.Activation,
		backend: backendOrDefault(cfg.Backend),
	}
	for l := 1; l < len(cfg.Sizes); l++ {
		in, out := cfg.Sizes[l-1], cfg.Sizes[l]
		n.weights = append(n.weights, newWeights(r, cfg.Init, out, in, in))
		n.biases = append(n.biases, vecmath.Zeros(out))
	}
	return n, nil
}

// Sizes returns a copy of the layer sizes.
func (n *Feedforward) Sizes() []int {
	return slices.Clone(n.sizes)
}

// NumLayers returns the number of layers including the input layer.
func (n *Feedforward) NumLayers() int {
	return len(n.sizes)
}

// Activation returns the network's nonlinearity.
func (n *Feedforward) Activation() activation.Activation {
	return n.act
}

// Backend returns the execution target.
func (n *Feedforward) Backend() compute.Backend {
	return n.backend
}

// SetBackend switches the execution target for subsequent calls.
func (n *Feedforward) SetBackend(b compute.Backend) error {
	if b == nil {
		return configErr("Backend", "must not be nil")
	}
	n.backend = b
	return nil
}

// Weights returns a deep copy of the weight matrices, one per layer after the input.
func (n *Feedforward) Weights() []vecmath.Matrix {
	return cloneMatrices(n.weights)
}

// Biases returns a deep copy of the bias vectors.
func (n *Feedforward) Biases() []vecmath.Vector {
	return cloneVectors(n.biases)
}

// SetWeights replaces the weights. Every matrix must match the existing shape.
func (n *Feedforward) SetWeights(weights []vecmath.Matrix) error {
	if err := vecmath.CheckLen("set weights", len(n.weights), len(weights)); err != nil {
		return err
	}
	for l, w := range weights {
		if !w.SameShape(n.weights[l]) || len(w.Data) != w.Rows*w.Cols {
			return fmt.Errorf("set weights: layer %d: want %dx%d, got %dx%d: %w",
				l+1, n.weights[l].Rows, n.weights[l].Cols, w.Rows, w.Cols, ErrShapeMismatch)
		}
	}
	n.weights = cloneMatrices(weights)
	return nil
}

// SetBiases replaces the biases. Every vector must match the existing length.
func (n *Feedforward) SetBiases(biases []vecmath.Vector) error {
	if err := vecmath.CheckLen("set biases", len(n.biases), len(biases)); err != nil {
		return err
	}
	for l, b := range biases {
		if err := checkDim(fmt.Sprintf("set biases: layer %d", l+1), len(n.biases[l]), b); err != nil {
			return err
		}
	}
	n.biases = cloneVectors(biases)
	return nil
}

// Feedforward runs a forward pass and returns the activation of every layer
// after the input, in order. The last entry is the network output.
func (n *Feedforward) Feedforward(input vecmath.Vector) ([]vecmath.Vector, error) {
	tr, err := n.forward(input)
	if err != nil {
		return nil, err
	}
	return tr.activations[1:], nil
}

// Output runs a forward pass and returns only the output layer.
func (n *Feedforward) Output(input vecmath.Vector) (vecmath.Vector, error) {
	activations, err := n.Feedforward(input)
	if err != nil {
		return nil, err
	}
	return activations[len(activations)-1], nil
}

func (n *Feedforward) forward(input vecmath.Vector) (*feedforwardTrace, error) {
	if err := checkDim("feedforward input", n.sizes[0], input); err != nil {
		return nil, err
	}

	tr := &feedforwardTrace{
		zs:          make([]vecmath.Vector, 0, len(n.weights)),
		activations: make([]vecmath.Vector, 0, len(n.sizes)),
	}
	tr.activations = append(tr.activations, input)

	a := input
	for l, w := range n.weights {
		z, err := affine(n.backend, w, a, n.biases[l])
		if err != nil {
			return nil, fmt.Errorf("feedforward: layer %d: %w", l+1, err)
		}
		a, err = n.backend.Activate(n.act, z)
		if err != nil {
			return nil, fmt.Errorf("feedforward: layer %d: %w", l+1, err)
		}
		tr.zs = append(tr.zs, z)
		tr.activations = append(tr.activations, a)
	}
	return tr, nil
}

// Gradients computes the weight and bias gradients of the squared error
// cost for one example without updating the network.
//
// The output delta is (a_L - target) ⊙ act'(z_L); earlier deltas are
// δ_l = (W_{l+1}ᵀ·δ_{l+1}) ⊙ act'(z_l). The weight gradient of layer l is
// δ_l·a_{l-1}ᵀ and the bias gradient is δ_l.
func (n *Feedforward) Gradients(input, target vecmath.Vector) ([]vecmath.Matrix, []vecmath.Vector, error) {
	if err := checkDim("backpropagate target", n.sizes[len(n.sizes)-1], target); err != nil {
		return nil, nil, err
	}
	tr, err := n.forward(input)
	if err != nil {
		return nil, nil, err
	}

	last := len(n.weights) - 1
	gradW := make([]vecmath.Matrix, len(n.weights))
	gradB := make([]vecmath.Vector, len(n.biases))

	cost, err := n.backend.Sub(tr.activations[last+1], target)
	if err != nil {
		return nil, nil, err
	}
	d, err := delta(n.backend, n.act, cost, tr.zs[last])
	if err != nil {
		return nil, nil, fmt.Errorf("backpropagate: output layer: %w", err)
	}

	for l := last; l >= 0; l-- {
		if l < last {
			partial, err := n.backend.MVMul(vecmath.Transpose(n.weights[l+1]), d)
			if err != nil {
				return nil, nil, fmt.Errorf("backpropagate: layer %d: %w", l+1, err)
			}
			d, err = delta(n.backend, n.act, partial, tr.zs[l])
			if err != nil {
				return nil, nil, fmt.Errorf("backpropagate: layer %d: %w", l+1, err)
			}
		}

		gradB[l] = d
		gradW[l], err = n.backend.Outer(d, tr.activations[l])
		if err != nil {
			return nil, nil, fmt.Errorf("backpropagate: layer %d: %w", l+1, err)
		}
	}
	return gradW, gradB, nil
}

// Backpropagate performs one gradient descent step on a single example.
// All gradients are computed before any layer is updated.
func (n *Feedforward) Backpropagate(input, target vecmath.Vector, learningRate float32) error {
	gradW, gradB, err := n.Gradients(input, target)
	if err != nil {
		return err
	}
	for l := range n.weights {
		n.weights[l].AddScaledInPlace(-learningRate, gradW[l])
		vecmath.AddScaledInPlace(n.biases[l], -learningRate, gradB[l])
	}
	return nil
}

// MSELoss returns 1/(2n) Σ (output - target)² for one example.
func (n *Feedforward) MSELoss(input, target vecmath.Vector) (float32, error) {
	out, err := n.lossOutput(input, target)
	if err != nil {
		return 0, err
	}
	return activation.MSE(out, target), nil
}

// CrossEntropyLoss returns -Σ target·log(output) for one example.
func (n *Feedforward) CrossEntropyLoss(input, target vecmath.Vector) (float32, error) {
	out, err := n.lossOutput(input, target)
	if err != nil {
		return 0, err
	}
	return activation.CrossEntropy(out, target), nil
}

func (n *Feedforward) lossOutput(input, target vecmath.Vector) (vecmath.Vector, error) {
	if err := checkDim("loss target", n.sizes[len(n.sizes)-1], target); err != nil {
		return nil, err
	}
	return n.Output(input)
}

// Combine returns a new network whose weights are the elementwise average of
// n and other. Biases, activation and backend are taken from n. Both networks
// must have identical layer sizes.
func (n *Feedforward) Combine(other *Feedforward) (*Feedforward, error) {
	if other == nil || !slices.Equal(n.sizes, other.sizes) {
		var otherSizes []int
		if other != nil {
			otherSizes = other.sizes
		}
		return nil, fmt.Errorf("combine: sizes %v and %v: %w", n.sizes, otherSizes, ErrShapeMismatch)
	}

	combined := &Feedforward{
		sizes:   slices.Clone(n.sizes),
		weights: make([]vecmath.Matrix, len(n.weights)),
		biases:  cloneVectors(n.biases),
		act:     n.act,
		backend: n.backend,
	}
	for l, w := range n.weights {
		sum, err := n.backend.Add(w.Data, other.weights[l].Data)
		if err != nil {
			return nil, fmt.Errorf("combine: layer %d: %w", l+1, err)
		}
		avg, err := n.backend.DivScalar(sum, 2)
		if err != nil {
			return nil, fmt.Errorf("combine: layer %d: %w", l+1, err)
		}
		combined.weights[l], err = vecmath.NewMatrix(avg, w.Rows, w.Cols)
		if err != nil {
			return nil, fmt.Errorf("combine: layer %d: %w", l+1, err)
		}
	}
	return combined, nil
}
