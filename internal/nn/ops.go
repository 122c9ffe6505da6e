// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/birdbrain/internal/activation"
	"github.com/born-ml/birdbrain/internal/compute"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

// affine returns w·x + b.
func affine(be compute.Backend, w vecmath.Matrix, x, b vecmath.Vector) (vecmath.Vector, error) {
	wx, err := be.MVMul(w, x)
	if err != nil {
		return nil, err
	}
	return be.Add(wx, b)
}

// combined returns wx·x + wh·h, the pre-activation of a recurrent unit.
func combined(be compute.Backend, wx vecmath.Matrix, x vecmath.Vector, wh vecmath.Matrix, h vecmath.Vector) (vecmath.Vector, error) {
	hh, err := be.MVMul(wh, h)
	if err != nil {
		return nil, err
	}
	return affine(be, wx, x, hh)
}

// gate returns act(wx·x + wh·h).
func gate(be compute.Backend, act activation.Activation, wx vecmath.Matrix, x vecmath.Vector, wh vecmath.Matrix, h vecmath.Vector) (vecmath.Vector, error) {
	z, err := combined(be, wx, x, wh, h)
	if err != nil {
		return nil, err
	}
	return be.Activate(act, z)
}

// delta returns upstream ⊙ act'(z).
func delta(be compute.Backend, act activation.Activation, upstream, z vecmath.Vector) (vecmath.Vector, error) {
	prime, err := be.ActivatePrime(act, z)
	if err != nil {
		return nil, err
	}
	return be.Mul(upstream, prime)
}

// accumulateOuter performs dst += x·yᵀ.
func accumulateOuter(be compute.Backend, dst vecmath.Matrix, x, y vecmath.Vector) error {
	o, err := be.Outer(x, y)
	if err != nil {
		return err
	}
	dst.AddScaledInPlace(1, o)
	return nil
}

// sequenceLoss returns -1/T Σ_t log p_t[target_t].
func sequenceLoss(probs []vecmath.Vector, targets []int) float32 {
	if len(targets) == 0 {
		return 0
	}
	var loss float32
	for t, k := range targets {
		loss += activation.CrossEntropyIndex(probs[t], k)
	}
	return loss / float32(len(targets))
}

func cloneMatrices(ms []vecmath.Matrix) []vecmath.Matrix {
	out := make([]vecmath.Matrix, len(ms))
	for i, m := range ms {
		out[i] = m.Clone()
	}
	return out
}

func cloneVectors(vs []vecmath.Vector) []vecmath.Vector {
	out := make([]vecmath.Vector, len(vs))
	for i, v := range vs {
		out[i] = v.Clone()
	}
	return out
}
