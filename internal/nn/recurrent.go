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

// Recurrent is a single-hidden-layer recurrent network.
//
// At every step t the hidden state is s_t = act(Whx·x_t + Whh·s_{t-1}) with
// s_{-1} = 0, and the output distribution is o_t = softmax(Why·s_t). Inputs
// and outputs share the same dimension, so a trained network predicts the
// next one-hot symbol of a sequence.
//
// A Recurrent is not safe for concurrent use.
type Recurrent struct {
	inputDim  int
	hiddenDim int

	whx vecmath.Matrix // hiddenDim x inputDim
	why vecmath.Matrix // inputDim x hiddenDim
	whh vecmath.Matrix // hiddenDim x hiddenDim

	act     activation.Activation
	backend compute.Backend
}

// RecurrentWeights holds the three weight matrices of a Recurrent network.
// It is also the shape of the gradients returned by Recurrent.Gradients.
type RecurrentWeights struct {
	Whx vecmath.Matrix
	Why vecmath.Matrix
	Whh vecmath.Matrix
}

// RecurrentTrace is the result of one forward pass over a sequence.
type RecurrentTrace struct {
	States  []vecmath.Vector // Hidden state s_t per step
	Outputs []vecmath.Vector // Output distribution o_t per step

	zs []vecmath.Vector // Hidden pre-activations, kept for BPTT
}

// NewRecurrent creates a recurrent network.
func NewRecurrent(cfg RecurrentConfig) (*Recurrent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := randOrDefault(cfg.Rand)

	in, hid := cfg.InputDim, cfg.HiddenDim
	return &Recurrent{
		inputDim:  in,
		hiddenDim: hid,
		whx:       newWeights(r, cfg.Init, hid, in, in),
		why:       newWeights(r, cfg.Init, in, hid, hid),
		whh:       newWeights(r, cfg.Init, hid, hid, hid),
		act:       cfg.Activation,
		backend:   backendOrDefault(cfg.Backend),
	}, nil
}

// InputDim returns the input and output dimension.
func (n *Recurrent) InputDim() int { return n.inputDim }

// HiddenDim returns the hidden state dimension.
func (n *Recurrent) HiddenDim() int { return n.hiddenDim }

// Activation returns the hidden state nonlinearity.
func (n *Recurrent) Activation() activation.Activation { return n.act }

// Backend returns the execution target.
func (n *Recurrent) Backend() compute.Backend { return n.backend }

// SetBackend switches the execution target for subsequent calls.
func (n *Recurrent) SetBackend(b compute.Backend) error {
	if b == nil {
		return configErr("Backend", "must not be nil")
	}
	n.backend = b
	return nil
}

// Weights returns a deep copy of the weight matrices.
func (n *Recurrent) Weights() RecurrentWeights {
	return RecurrentWeights{
		Whx: n.whx.Clone(),
		Why: n.why.Clone(),
		Whh: n.whh.Clone(),
	}
}

// SetWeights replaces the weight matrices. Shapes must match the network.
func (n *Recurrent) SetWeights(w RecurrentWeights) error {
	for _, c := range []struct {
		name      string
		have, got vecmath.Matrix
	}{
		{"Whx", n.whx, w.Whx},
		{"Why", n.why, w.Why},
		{"Whh", n.whh, w.Whh},
	} {
		if !c.have.SameShape(c.got) || len(c.got.Data) != c.got.Rows*c.got.Cols {
			return fmt.Errorf("set weights: %s: want %dx%d, got %dx%d: %w",
				c.name, c.have.Rows, c.have.Cols, c.got.Rows, c.got.Cols, ErrShapeMismatch)
		}
	}
	n.whx, n.why, n.whh = w.Whx.Clone(), w.Why.Clone(), w.Whh.Clone()
	return nil
}

// Feedforward runs the network over seq and returns every hidden state and
// output distribution. An empty sequence yields an empty trace.
func (n *Recurrent) Feedforward(seq []vecmath.Vector) (*RecurrentTrace, error) {
	if err := checkSequence("recurrent input", n.inputDim, seq); err != nil {
		return nil, err
	}

	tr := &RecurrentTrace{
		States:  make([]vecmath.Vector, 0, len(seq)),
		Outputs: make([]vecmath.Vector, 0, len(seq)),
		zs:      make([]vecmath.Vector, 0, len(seq)),
	}
	prev := vecmath.Zeros(n.hiddenDim)
	for t, x := range seq {
		z, err := combined(n.backend, n.whx, x, n.whh, prev)
		if err != nil {
			return nil, fmt.Errorf("recurrent: step %d: %w", t, err)
		}
		s, err := n.backend.Activate(n.act, z)
		if err != nil {
			return nil, fmt.Errorf("recurrent: step %d: %w", t, err)
		}
		logits, err := n.backend.MVMul(n.why, s)
		if err != nil {
			return nil, fmt.Errorf("recurrent: step %d: %w", t, err)
		}
		o, err := n.backend.Softmax(logits)
		if err != nil {
			return nil, fmt.Errorf("recurrent: step %d: %w", t, err)
		}

		tr.zs = append(tr.zs, z)
		tr.States = append(tr.States, s)
		tr.Outputs = append(tr.Outputs, o)
		prev = s
	}
	return tr, nil
}

// Predict returns the most probable output class at every step.
func (n *Recurrent) Predict(seq []vecmath.Vector) ([]int, error) {
	tr, err := n.Feedforward(seq)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(tr.Outputs))
	for t, o := range tr.Outputs {
		out[t] = o.Argmax()
	}
	return out, nil
}

// Loss returns the mean cross-entropy -1/T Σ_t log o_t[targets[t]].
func (n *Recurrent) Loss(seq []vecmath.Vector, targets []int) (float32, error) {
	if err := checkTargets("recurrent loss", n.inputDim, seq, targets); err != nil {
		return 0, err
	}
	tr, err := n.Feedforward(seq)
	if err != nil {
		return 0, err
	}
	return sequenceLoss(tr.Outputs, targets), nil
}

// TotalLoss returns the cross-entropy averaged over every target of every
// sequence. Sequences and target lists are paired by index.
func (n *Recurrent) TotalLoss(seqs [][]vecmath.Vector, targets [][]int) (float32, error) {
	if err := vecmath.CheckLen("recurrent total loss", len(seqs), len(targets)); err != nil {
		return 0, err
	}
	var sum float32
	var count int
	for i, seq := range seqs {
		loss, err := n.Loss(seq, targets[i])
		if err != nil {
			return 0, fmt.Errorf("sequence %d: %w", i, err)
		}
		sum += loss * float32(len(targets[i]))
		count += len(targets[i])
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float32(count), nil
}

// Gradients runs full backpropagation through time and returns the summed
// weight gradients of Σ_t -log o_t[targets[t]] without updating the network.
func (n *Recurrent) Gradients(seq []vecmath.Vector, targets []int) (RecurrentWeights, error) {
	if err := checkTargets("recurrent backprop", n.inputDim, seq, targets); err != nil {
		return RecurrentWeights{}, err
	}
	tr, err := n.Feedforward(seq)
	if err != nil {
		return RecurrentWeights{}, err
	}

	grad := RecurrentWeights{
		Whx: vecmath.ZeroMatrix(n.hiddenDim, n.inputDim),
		Why: vecmath.ZeroMatrix(n.inputDim, n.hiddenDim),
		Whh: vecmath.ZeroMatrix(n.hiddenDim, n.hiddenDim),
	}
	whyT := vecmath.Transpose(n.why)
	whhT := vecmath.Transpose(n.whh)
	dhNext := vecmath.Zeros(n.hiddenDim)

	for t := len(seq) - 1; t >= 0; t-- {
		if err := n.bpttStep(tr, seq, targets, t, whyT, whhT, &dhNext, grad); err != nil {
			return RecurrentWeights{}, fmt.Errorf("recurrent backprop: step %d: %w", t, err)
		}
	}
	return grad, nil
}

// bpttStep accumulates the contribution of step t into grad and replaces
// dhNext with the gradient flowing into s_{t-1}. That gradient is
// Whhᵀ·dh_raw, the transpose of the forward Whh·s_{t-1}, not Whh·dh_raw.
func (n *Recurrent) bpttStep(tr *RecurrentTrace, seq []vecmath.Vector, targets []int, t int,
	whyT, whhT vecmath.Matrix, dhNext *vecmath.Vector, grad RecurrentWeights,
) error {
	be := n.backend

	dOut, err := be.Sub(tr.Outputs[t], vecmath.OneHot(n.inputDim, targets[t]))
	if err != nil {
		return err
	}
	if err := accumulateOuter(be, grad.Why, dOut, tr.States[t]); err != nil {
		return err
	}

	dh, err := be.MVMul(whyT, dOut)
	if err != nil {
		return err
	}
	if dh, err = be.Add(dh, *dhNext); err != nil {
		return err
	}
	dhRaw, err := delta(be, n.act, dh, tr.zs[t])
	if err != nil {
		return err
	}

	if err := accumulateOuter(be, grad.Whx, dhRaw, seq[t]); err != nil {
		return err
	}
	prev := vecmath.Zeros(n.hiddenDim)
	if t > 0 {
		prev = tr.States[t-1]
	}
	if err := accumulateOuter(be, grad.Whh, dhRaw, prev); err != nil {
		return err
	}

	next, err := be.MVMul(whhT, dhRaw)
	if err != nil {
		return err
	}
	*dhNext = next
	return nil
}

// Backprop performs one gradient descent step over seq using full
// backpropagation through time. Weights are updated once, after the sweep.
func (n *Recurrent) Backprop(seq []vecmath.Vector, targets []int, learningRate float32) error {
	grad, err := n.Gradients(seq, targets)
	if err != nil {
		return err
	}
	n.whx.AddScaledInPlace(-learningRate, grad.Whx)
	n.why.AddScaledInPlace(-learningRate, grad.Why)
	n.whh.AddScaledInPlace(-learningRate, grad.Whh)
	return nil
}
