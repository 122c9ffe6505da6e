// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/born-ml/birdbrain/internal/activation"
	"github.com/born-ml/birdbrain/internal/compute"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

// LSTM is a gated memory-cell recurrent network. It supports inference only.
//
// Per step, with h_{-1} = 0 and s_{-1} = 0:
//
//	g_t = tanh(Wgx·x_t + Wgh·h_{t-1})     candidate
//	i_t = sigmoid(Wix·x_t + Wih·h_{t-1})  input gate
//	f_t = sigmoid(Wfx·x_t + Wfh·h_{t-1})  forget gate
//	o_t = sigmoid(Wox·x_t + Woh·h_{t-1})  output gate
//	s_t = g_t⊙i_t + s_{t-1}⊙f_t           cell state
//	h_t = s_t⊙o_t                         hidden state
//	p_t = softmax(s_t)                    output distribution
//
// The output distribution is taken over the cell state.
type LSTM struct {
	inputDim int
	cells    int

	gates   [numGates]lstmGate
	backend compute.Backend
}

type gateKind int

const (
	gateCandidate gateKind = iota
	gateInput
	gateForget
	gateOutput
	numGates
)

// lstmGate holds the input-to-hidden (cells x inputDim) and
// hidden-to-hidden (cells x cells) weights of one gate.
type lstmGate struct {
	wx  vecmath.Matrix
	wh  vecmath.Matrix
	act activation.Activation
}

// LSTMTrace holds every per-step value of one forward pass.
type LSTMTrace struct {
	Candidate []vecmath.Vector // g_t
	Input     []vecmath.Vector // i_t
	Forget    []vecmath.Vector // f_t
	Output    []vecmath.Vector // o_t
	Cell      []vecmath.Vector // s_t
	Hidden    []vecmath.Vector // h_t
	Probs     []vecmath.Vector // p_t
}

// NewLSTM creates an LSTM network.
func NewLSTM(cfg LSTMConfig) (*LSTM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := randOrDefault(cfg.Rand)

	n := &LSTM{
		inputDim: cfg.InputDim,
		cells:    cfg.MemCellCount,
		backend:  backendOrDefault(cfg.Backend),
	}
	for g := range numGates {
		act := activation.Sigmoid
		if g == gateCandidate {
			act = activation.Tanh
		}
		n.gates[g] = lstmGate{
			wx:  newWeights(r, cfg.Init, n.cells, n.inputDim, n.inputDim),
			wh:  newWeights(r, cfg.Init, n.cells, n.cells, n.cells),
			act: act,
		}
	}
	return n, nil
}

// InputDim returns the input dimension.
func (n *LSTM) InputDim() int { return n.inputDim }

// MemCellCount returns the number of memory cells.
func (n *LSTM) MemCellCount() int { return n.cells }

// Backend returns the execution target.
func (n *LSTM) Backend() compute.Backend { return n.backend }

// SetBackend switches the execution target for subsequent calls.
func (n *LSTM) SetBackend(b compute.Backend) error {
	if b == nil {
		return configErr("Backend", "must not be nil")
	}
	n.backend = b
	return nil
}

// Feedforward runs the network over seq.
func (n *LSTM) Feedforward(seq []vecmath.Vector) (*LSTMTrace, error) {
	if err := checkSequence("lstm input", n.inputDim, seq); err != nil {
		return nil, err
	}

	tr := &LSTMTrace{}
	h := vecmath.Zeros(n.cells)
	s := vecmath.Zeros(n.cells)
	for t, x := range seq {
		var vals [numGates]vecmath.Vector
		for g := range numGates {
			gt := n.gates[g]
			v, err := gate(n.backend, gt.act, gt.wx, x, gt.wh, h)
			if err != nil {
				return nil, fmt.Errorf("lstm: step %d: gate %d: %w", t, g, err)
			}
			vals[g] = v
		}

		next, err := n.cellStep(vals, s)
		if err != nil {
			return nil, fmt.Errorf("lstm: step %d: %w", t, err)
		}
		hidden, err := n.backend.Mul(next, vals[gateOutput])
		if err != nil {
			return nil, fmt.Errorf("lstm: step %d: %w", t, err)
		}
		probs, err := n.backend.Softmax(next)
		if err != nil {
			return nil, fmt.Errorf("lstm: step %d: %w", t, err)
		}

		tr.Candidate = append(tr.Candidate, vals[gateCandidate])
		tr.Input = append(tr.Input, vals[gateInput])
		tr.Forget = append(tr.Forget, vals[gateForget])
		tr.Output = append(tr.Output, vals[gateOutput])
		tr.Cell = append(tr.Cell, next)
		tr.Hidden = append(tr.Hidden, hidden)
		tr.Probs = append(tr.Probs, probs)

		h, s = hidden, next
	}
	return tr, nil
}

// cellStep returns g⊙i + prev⊙f.
func (n *LSTM) cellStep(vals [numGates]vecmath.Vector, prev vecmath.Vector) (vecmath.Vector, error) {
	written, err := n.backend.Mul(vals[gateCandidate], vals[gateInput])
	if err != nil {
		return nil, err
	}
	kept, err := n.backend.Mul(prev, vals[gateForget])
	if err != nil {
		return nil, err
	}
	return n.backend.Add(written, kept)
}

// Loss returns the mean cross-entropy of the output distributions against
// targets, one class index per step.
func (n *LSTM) Loss(seq []vecmath.Vector, targets []int) (float32, error) {
	if err := checkTargets("lstm loss", n.cells, seq, targets); err != nil {
		return 0, err
	}
	tr, err := n.Feedforward(seq)
	if err != nil {
		return 0, err
	}
	return sequenceLoss(tr.Probs, targets), nil
}
