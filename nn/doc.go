// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides small neural networks with hand-derived gradients.
//
// # Overview
//
// This package contains:
//   - Feedforward: layered dense network, trained one example at a time
//   - Recurrent: single-hidden-layer RNN with full backpropagation through time
//   - LSTM: gated memory-cell network (forward pass only)
//   - Activations: Sigmoid, Tanh, ReLU, Softmax
//   - Initialization: fan-in scaled uniform, Gaussian
//
// Every network runs its primitives on a Backend chosen at construction
// (CPU by default) and switchable with SetBackend.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/birdbrain/backend/cpu"
//	    "github.com/born-ml/birdbrain/nn"
//	)
//
//	func main() {
//	    net, err := nn.NewFeedforward(nn.FeedforwardConfig{
//	        Sizes:      []int{2, 4, 1},
//	        Activation: nn.Sigmoid,
//	        Backend:    cpu.New(),
//	        Rand:       nn.NewRand(1),
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    for range 1000 {
//	        _ = net.Backpropagate(nn.Vector{1, 0}, nn.Vector{1}, 0.5)
//	    }
//	}
//
// # Recurrent networks
//
// Recurrent networks read one-hot inputs and predict the next class at every
// step. The sequence package builds such inputs from text:
//
//	seq, err := vocab.Sequence(ids)
//	net, err := nn.NewRecurrent(nn.RecurrentConfig{
//	    InputDim:   vocab.Size(),
//	    HiddenDim:  16,
//	    Activation: nn.Tanh,
//	})
//	err = net.Backprop(seq.Inputs, seq.Targets, 0.01)
//	loss, err := net.Loss(seq.Inputs, seq.Targets)
//
// # Thread Safety
//
// Networks are not safe for concurrent use. Callers must serialize forward
// and backward calls on a single instance.
package nn
