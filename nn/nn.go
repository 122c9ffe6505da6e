// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/birdbrain/internal/activation"
	"github.com/born-ml/birdbrain/internal/compute"
	"github.com/born-ml/birdbrain/internal/nn"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

// Math

// Vector is a flat sequence of float32 values.
type Vector = vecmath.Vector

// Matrix is a row-major float32 matrix.
type Matrix = vecmath.Matrix

// NewMatrix wraps data as a rows x cols matrix.
// Returns an error wrapping ErrShapeMismatch unless len(data) == rows*cols.
func NewMatrix(data Vector, rows, cols int) (Matrix, error) {
	return vecmath.NewMatrix(data, rows, cols)
}

// ZeroMatrix returns a rows x cols matrix of zeros.
func ZeroMatrix(rows, cols int) Matrix {
	return vecmath.ZeroMatrix(rows, cols)
}

// OneHot returns a vector of length n with a single 1 at index k.
func OneHot(n, k int) Vector {
	return vecmath.OneHot(n, k)
}

// Backends

// Backend is the execution target of network primitives.
type Backend = compute.Backend

// BackendKind identifies a backend family.
type BackendKind = compute.Kind

// Backend kinds.
const (
	CPU = compute.CPU
	GPU = compute.GPU
)

// Activations

// Activation selects an elementwise nonlinearity.
type Activation = activation.Activation

// Supported activations.
const (
	Sigmoid = activation.Sigmoid
	Tanh    = activation.Tanh
	ReLU    = activation.ReLU
)

// ParseActivation resolves an activation by name ("sigmoid", "tanh", "relu").
func ParseActivation(name string) (Activation, error) {
	return activation.Parse(name)
}

// Softmax returns a numerically stable softmax of z.
func Softmax(z Vector) Vector {
	return activation.Softmax(z)
}

// Initialization

// Rand is the random source used for weight initialization.
type Rand = nn.Rand

// NewRand returns a deterministic source for the given seed.
func NewRand(seed int64) *Rand {
	return nn.NewRand(seed)
}

// WeightInit selects how weight matrices are initialized.
type WeightInit = nn.WeightInit

// Weight initializers.
const (
	InitFanIn    = nn.InitFanIn
	InitGaussian = nn.InitGaussian
)

// Networks

// Feedforward is a layered dense network trained by backpropagation.
type Feedforward = nn.Feedforward

// FeedforwardConfig holds configuration for a feedforward network.
type FeedforwardConfig = nn.FeedforwardConfig

// NewFeedforward creates a feedforward network.
//
// Example:
//
//	net, err := nn.NewFeedforward(nn.FeedforwardConfig{
//	    Sizes:      []int{2, 3, 1},
//	    Activation: nn.Sigmoid,
//	})
//	err = net.Backpropagate(nn.Vector{0, 1}, nn.Vector{1}, 0.5)
func NewFeedforward(cfg FeedforwardConfig) (*Feedforward, error) {
	return nn.NewFeedforward(cfg)
}

// Recurrent is a single-hidden-layer recurrent network trained by
// backpropagation through time.
type Recurrent = nn.Recurrent

// RecurrentConfig holds configuration for a recurrent network.
type RecurrentConfig = nn.RecurrentConfig

// RecurrentTrace holds the hidden states and outputs of one forward pass.
type RecurrentTrace = nn.RecurrentTrace

// RecurrentWeights holds the weights (or gradients) of a recurrent network.
type RecurrentWeights = nn.RecurrentWeights

// NewRecurrent creates a recurrent network.
//
// Example:
//
//	net, err := nn.NewRecurrent(nn.RecurrentConfig{
//	    InputDim:   vocab.Size(),
//	    HiddenDim:  32,
//	    Activation: nn.Tanh,
//	})
//	err = net.Backprop(seq.Inputs, seq.Targets, 0.01)
func NewRecurrent(cfg RecurrentConfig) (*Recurrent, error) {
	return nn.NewRecurrent(cfg)
}

// LSTM is a gated memory-cell network (forward pass only).
type LSTM = nn.LSTM

// LSTMConfig holds configuration for an LSTM network.
type LSTMConfig = nn.LSTMConfig

// LSTMTrace holds every gate, cell and output value of one forward pass.
type LSTMTrace = nn.LSTMTrace

// NewLSTM creates an LSTM network.
func NewLSTM(cfg LSTMConfig) (*LSTM, error) {
	return nn.NewLSTM(cfg)
}

// Errors

// ConfigError reports a rejected configuration field.
type ConfigError = nn.ConfigError

var (
	// ErrConfiguration is matched by every invalid network construction.
	ErrConfiguration = nn.ErrConfiguration

	// ErrShapeMismatch is matched by operand or network shape violations.
	ErrShapeMismatch = nn.ErrShapeMismatch

	// ErrUnknownActivation is returned for unsupported activations.
	ErrUnknownActivation = activation.ErrUnknownActivation

	// ErrBackendUnavailable is returned when a backend cannot be created.
	ErrBackendUnavailable = compute.ErrUnavailable
)
